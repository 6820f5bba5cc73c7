package ast

import "github.com/openshading/oslc/internal/types"

// Expr is any expression node. All variants carry their own source span.
type Expr interface {
	exprNode()
	Span() types.Span
}

// IntLit is an integer literal, e.g. 42 or 0x2A.
type IntLit struct {
	Value int64
	Sp    types.Span
}

func (*IntLit) exprNode()          {}
func (e *IntLit) Span() types.Span { return e.Sp }

// FloatLit is a floating-point literal, e.g. 1.5 or .25.
type FloatLit struct {
	Value float64
	Sp    types.Span
}

func (*FloatLit) exprNode()          {}
func (e *FloatLit) Span() types.Span { return e.Sp }

// StringLit is a string literal with quotes stripped and escapes resolved.
type StringLit struct {
	Value string
	Sp    types.Span
}

func (*StringLit) exprNode()          {}
func (e *StringLit) Span() types.Span { return e.Sp }

// IdentExpr references a variable, shader parameter, or predeclared global
// by name. Resolved against the symbol table during type checking.
type IdentExpr struct {
	Name Ident
}

func (*IdentExpr) exprNode()          {}
func (e *IdentExpr) Span() types.Span { return e.Name.Span }

// UnaryExpr is a prefix or postfix unary operation: -x, !x, ~x, ++x, x++,
// etc.
type UnaryExpr struct {
	Op       Operator
	Operand  Expr
	IsPostfix bool
	Sp       types.Span
}

func (*UnaryExpr) exprNode()          {}
func (e *UnaryExpr) Span() types.Span { return e.Sp }

// BinaryExpr is a binary operation: x + y, x && y, x << y, etc.
type BinaryExpr struct {
	Op    Operator
	Left  Expr
	Right Expr
	Sp    types.Span
}

func (*BinaryExpr) exprNode()          {}
func (e *BinaryExpr) Span() types.Span { return e.Sp }

// AssignExpr is a simple or compound assignment: x = y, x += y, etc.
type AssignExpr struct {
	Op     Operator
	Target Expr
	Value  Expr
	Sp     types.Span
}

func (*AssignExpr) exprNode()          {}
func (e *AssignExpr) Span() types.Span { return e.Sp }

// CallExpr is a function call: f(a, b, c).
type CallExpr struct {
	Callee Ident
	Args   []Expr
	Sp     types.Span
}

func (*CallExpr) exprNode()          {}
func (e *CallExpr) Span() types.Span { return e.Sp }

// ConstructorExpr builds a geometric or color value from its components:
// color(1, 0, 0), point(x, y, z), matrix(...), or a single-argument
// broadcast form like color(0.5).
type ConstructorExpr struct {
	Type Type
	Args []Expr
	Sp   types.Span
}

func (*ConstructorExpr) exprNode()          {}
func (e *ConstructorExpr) Span() types.Span { return e.Sp }

// AccessExpr is component/member access: P.x, P[0].
type AccessExpr struct {
	Base Expr
	// Component is the field name for dot access ("x", "y", "z"); empty
	// when Index is used instead.
	Component string
	// Index is the subscript expression for bracket access; nil when
	// Component is used instead.
	Index Expr
	Sp    types.Span
}

func (*AccessExpr) exprNode()          {}
func (e *AccessExpr) Span() types.Span { return e.Sp }
