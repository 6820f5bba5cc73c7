package typecheck

import (
	"github.com/openshading/oslc/internal/ast"
	"github.com/openshading/oslc/internal/lexer"
	"github.com/openshading/oslc/internal/symtab"
	"github.com/openshading/oslc/internal/types"
)

// checkTokenAccess re-scans the raw token stream, rather than the AST, and
// verifies that every identifier token resolves to a symbol visible at its
// position. This is needed because the statement walk in Check never visits
// some identifiers at all: a parameter's default-value expression sits
// before the body it's scoped into, and a constructor call's type keyword
// flattens its argument identifiers out of the AST shape Check descends
// into. Predeclared globals are skipped since they are never registered in
// the symbol table.
func checkTokenAccess(tokens []lexer.Token, source []byte, st *symtab.SymbolTable) *types.Diagnostic {
	for _, tok := range tokens {
		if tok.Kind != lexer.TokIdent {
			continue
		}
		name := string(source[tok.Span.Start:tok.Span.End])
		if _, ok := ast.LookupGlobal(name); ok {
			continue
		}
		if d := st.CheckAccess(tok.Span, name); d != nil {
			return d
		}
	}
	return nil
}
