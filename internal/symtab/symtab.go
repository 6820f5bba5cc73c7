// Package symtab builds a bitmask-scoped symbol table from a parsed OSL
// program.
//
// Scopes are identified by a uint64 bitmask rather than a tree of nested
// maps: entering a scope ORs in a fresh single bit, and a symbol declared in
// scope S is visible to any reference whose own scope mask is a superset of
// S (`ref | S == ref`). This makes visibility a single AND/OR test instead of
// a walk up a parent chain, at the cost of a limit of 63 scopes entered over
// the whole file: scope bits are never reused once a scope is left.
package symtab

import (
	"log/slog"

	"github.com/openshading/oslc/internal/ast"
	"github.com/openshading/oslc/internal/types"
)

// SymbolKind identifies which declaration shape a Symbol carries.
type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymFunction
	SymShader
)

// Symbol is a single declaration recorded in the symbol table. Fields not
// relevant to Kind are left zero.
type Symbol struct {
	Kind SymbolKind
	Name string
	Span types.Span
	Scope uint64

	VarType ast.Type // SymVariable
	Output  bool     // SymVariable

	RetType  ast.Type   // SymFunction
	ArgTypes []ast.Type // SymFunction
	Public   bool       // SymFunction

	ShaderKind ast.ShaderType // SymShader
}

// globalScope is the bit set for file scope; variables may not be declared
// there, matching a plain top-level OSL file having no global statements.
const globalScope uint64 = 1

// SymbolTable is a bitmask-scoped table of variable, function, and shader
// declarations, plus a byte-offset scope map used to test visibility of a
// reference against the scope it was declared in.
type SymbolTable struct {
	symbols   map[string][]*Symbol
	curScope  uint64
	nextScope uint64
	scopeStack []uint64
	scopes    []uint64 // indexed by byte offset

	NVariables int
	NFunctions int
	NShaders   int

	types.Logger
}

// New creates an empty symbol table sized for a source file of sourceLen
// bytes. Every offset starts at global scope until Build pushes scopes over
// it.
func New(sourceLen int, logger *slog.Logger) *SymbolTable {
	scopes := make([]uint64, sourceLen)
	for i := range scopes {
		scopes[i] = globalScope
	}
	return &SymbolTable{
		symbols:   make(map[string][]*Symbol),
		curScope:  globalScope,
		nextScope: 2,
		scopes:    scopes,
		Logger:    types.Logger{L: logger},
	}
}

// CurScope returns the active scope mask.
func (st *SymbolTable) CurScope() uint64 {
	return st.curScope
}

// AddVariable declares a variable in the current scope. It is an error to
// declare a variable at global scope, or to redeclare a name already
// present in the same scope.
func (st *SymbolTable) AddVariable(varType ast.Type, name string, span types.Span, output bool) *types.Diagnostic {
	if st.curScope == globalScope {
		d := types.NewError(span, "Variable cannot be created in the global scope")
		d.Labels[0].Message = "variable " + name + " is in the global scope"
		return &d
	}
	if existing, found := st.duplicateInScope(name, st.curScope); found {
		return st.existingVariableDiag(existing, name, span)
	}
	sym := &Symbol{Kind: SymVariable, Name: name, Span: span, Scope: st.curScope, VarType: varType, Output: output}
	st.symbols[name] = append(st.symbols[name], sym)
	st.NVariables++
	st.Trace("added variable", slog.String("name", name), slog.String("type", varType.String()))
	return nil
}

// AddFunction declares a function in the current scope. Functions may be
// declared at global scope (that is how top-level function declarations
// register themselves).
func (st *SymbolTable) AddFunction(retType ast.Type, name string, argTypes []ast.Type, span types.Span, public bool) *types.Diagnostic {
	if existing, found := st.duplicateInScope(name, st.curScope); found {
		return st.existingVariableDiag(existing, name, span)
	}
	sym := &Symbol{Kind: SymFunction, Name: name, Span: span, Scope: st.curScope, RetType: retType, ArgTypes: argTypes, Public: public}
	st.symbols[name] = append(st.symbols[name], sym)
	st.NFunctions++
	st.Trace("added function", slog.String("name", name), slog.Int("args", len(argTypes)))
	return nil
}

// AddShader declares a shader in the current scope.
func (st *SymbolTable) AddShader(kind ast.ShaderType, name string, span types.Span) *types.Diagnostic {
	if existing, found := st.duplicateInScope(name, st.curScope); found {
		return st.existingVariableDiag(existing, name, span)
	}
	sym := &Symbol{Kind: SymShader, Name: name, Span: span, Scope: st.curScope, ShaderKind: kind}
	st.symbols[name] = append(st.symbols[name], sym)
	st.NShaders++
	st.Trace("added shader", slog.String("name", name), slog.String("kind", kind.String()))
	return nil
}

func (st *SymbolTable) duplicateInScope(name string, scope uint64) (*Symbol, bool) {
	for _, sym := range st.symbols[name] {
		if sym.Scope == scope {
			return sym, true
		}
	}
	return nil, false
}

func (st *SymbolTable) existingVariableDiag(existing *Symbol, name string, span types.Span) *types.Diagnostic {
	d := types.NewError(span, "Cannot declare variable twice in same scope").
		WithSecondary(existing.Span, "original declaration for "+name)
	d.Labels[0].Message = "new declaration for " + name
	return &d
}

// UpScope pushes a fresh scope bit and records it over the byte range
// [span.Start, span.End), typically a block statement's braces.
func (st *SymbolTable) UpScope(span types.Span) {
	st.scopeStack = append(st.scopeStack, st.curScope)
	st.curScope |= st.nextScope
	st.nextScope <<= 1

	for i := span.Start; i < span.End && int(i) < len(st.scopes); i++ {
		st.scopes[i] = st.curScope
	}
}

// DownScope restores the scope active before the most recent UpScope.
func (st *SymbolTable) DownScope() {
	n := len(st.scopeStack)
	st.curScope = st.scopeStack[n-1]
	st.scopeStack = st.scopeStack[:n-1]
}

// ScopeAt returns the scope mask recorded at a byte offset.
func (st *SymbolTable) ScopeAt(offset types.ByteOffset) uint64 {
	if int(offset) >= len(st.scopes) {
		return globalScope
	}
	return st.scopes[offset]
}

// CheckAccess verifies that destIdent is visible from originSpan: some
// declaration of that name must have a scope that is a submask of the
// scope active at originSpan.
func (st *SymbolTable) CheckAccess(originSpan types.Span, destIdent string) *types.Diagnostic {
	scope := st.ScopeAt(originSpan.Start)
	symbols, ok := st.symbols[destIdent]
	if !ok {
		d := types.NewError(originSpan, "Reference to non-existent symbol")
		d.Labels[0].Message = "symbol " + destIdent + " does not exist"
		return &d
	}

	for _, sym := range symbols {
		if scope|sym.Scope == scope {
			return nil
		}
	}

	d := types.NewError(originSpan, "Reference to an out of scope symbol")
	d.Labels[0].Message = "referenced here"
	for _, sym := range symbols {
		d = d.WithSecondary(sym.Span, "declared here")
	}
	return &d
}

// Resolve returns the declaration of destIdent visible from span that is
// scoped closest to it (fewest scope bits away), matching the innermost
// shadowing declaration a reader would expect.
func (st *SymbolTable) Resolve(span types.Span, destIdent string) (*Symbol, bool) {
	symbols, ok := st.symbols[destIdent]
	if !ok || len(symbols) == 0 {
		return nil, false
	}
	scope := st.ScopeAt(span.Start)

	var closest *Symbol
	var closestDistance int
	for _, sym := range symbols {
		if scope|sym.Scope != scope {
			continue
		}
		d := distance(scope, sym.Scope)
		if closest == nil || d < closestDistance {
			closest = sym
			closestDistance = d
		}
	}
	return closest, closest != nil
}

// distance is the difference in popcount between two scope masks, used to
// prefer the declaration whose scope is nearest the reference.
func distance(a, b uint64) int {
	return popcount(a) - popcount(b)
}

func popcount(mask uint64) int {
	count := 0
	for mask != 0 {
		count += int(mask & 1)
		mask >>= 1
	}
	return count
}
