// Package ast provides Abstract Syntax Tree types for parsed OSL shader
// source.
//
// The AST captures syntactic structure as-written, preserving source
// locations for diagnostics. Semantic analysis (scope resolution, type
// checking) happens in later phases (internal/symtab, internal/typecheck).
package ast

import (
	"github.com/openshading/oslc/internal/types"
)

// Ident is an identifier with source location.
type Ident struct {
	Name string
	Span types.Span
}

// NewIdent creates a new identifier.
func NewIdent(name string, span types.Span) Ident {
	return Ident{Name: name, Span: span}
}
