package ast

import "github.com/openshading/oslc/internal/types"

// Stmt is any statement node. All variants carry their own source span.
type Stmt interface {
	stmtNode()
	Span() types.Span
}

// ExprStmt wraps an expression used as a statement (typically a call or an
// assignment).
type ExprStmt struct {
	X  Expr
	Sp types.Span
}

func (*ExprStmt) stmtNode()          {}
func (s *ExprStmt) Span() types.Span { return s.Sp }

// VarDeclStmt declares a local variable, with an optional initializer.
type VarDeclStmt struct {
	Type Type
	Name Ident
	Init Expr // nil if no initializer
	Sp   types.Span
}

func (*VarDeclStmt) stmtNode()          {}
func (s *VarDeclStmt) Span() types.Span { return s.Sp }

// BlockStmt is a brace-delimited sequence of statements introducing a new
// scope.
type BlockStmt struct {
	Stmts []Stmt
	Sp    types.Span
}

func (*BlockStmt) stmtNode()          {}
func (s *BlockStmt) Span() types.Span { return s.Sp }

// IfStmt is an if/else statement. Else is nil when there is no else clause.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
	Sp   types.Span
}

func (*IfStmt) stmtNode()          {}
func (s *IfStmt) Span() types.Span { return s.Sp }

// WhileStmt is a while loop.
type WhileStmt struct {
	Cond Expr
	Body Stmt
	Sp   types.Span
}

func (*WhileStmt) stmtNode()          {}
func (s *WhileStmt) Span() types.Span { return s.Sp }

// ForStmt is a for loop. Init, Cond, and Post are each optional (nil when
// omitted); Init is a statement so it can introduce a loop variable.
type ForStmt struct {
	Init Stmt
	Cond Expr
	Post Expr
	Body Stmt
	Sp   types.Span
}

func (*ForStmt) stmtNode()          {}
func (s *ForStmt) Span() types.Span { return s.Sp }

// ReturnStmt returns from the enclosing function. Value is nil for a
// value-less return.
type ReturnStmt struct {
	Value Expr
	Sp    types.Span
}

func (*ReturnStmt) stmtNode()          {}
func (s *ReturnStmt) Span() types.Span { return s.Sp }

// Param is a single formal parameter of a function or shader.
type Param struct {
	Type     Type
	Name     Ident
	Default  Expr // nil if the parameter has no default
	IsOutput bool
	Sp       types.Span
}

// FunctionDecl is a top-level function definition.
type FunctionDecl struct {
	Public     bool
	ReturnType Type
	Name       Ident
	Params     []Param
	Body       *BlockStmt
	Sp         types.Span
}

func (*FunctionDecl) stmtNode()          {}
func (s *FunctionDecl) Span() types.Span { return s.Sp }

// ShaderDecl is a top-level shader definition: surface, displacement,
// light, volume, or the generic shader kind.
type ShaderDecl struct {
	Kind   ShaderType
	Name   Ident
	Params []Param
	Body   *BlockStmt
	Sp     types.Span
}

func (*ShaderDecl) stmtNode()          {}
func (s *ShaderDecl) Span() types.Span { return s.Sp }

// Program is the root of a parsed OSL source file: zero or more function
// declarations plus exactly one shader declaration (checked at the
// type-checker driver level, not by the grammar itself).
type Program struct {
	Functions []*FunctionDecl
	Shaders   []*ShaderDecl
	Sp        types.Span
}
