// Package stdlib seeds a symbol table with OSL's built-in shading-language
// functions before a user program's own declarations are registered.
package stdlib

import (
	"log/slog"

	"github.com/openshading/oslc/internal/ast"
	"github.com/openshading/oslc/internal/symtab"
	"github.com/openshading/oslc/internal/types"
)

// builtin describes one free function seeded into global scope.
type builtin struct {
	name    string
	retType ast.Type
	args    []ast.Type
}

// builtins is the common OSL standard-library surface this front-end
// recognizes. color() is seeded at the sentinel span with no arguments,
// matching the one builtin the reference implementation populated; the rest
// fill out the surface a real shader commonly calls.
var builtins = []builtin{ //nolint:gochecknoglobals
	{"color", ast.TypeColor, nil},
	{"sin", ast.TypeFloat, []ast.Type{ast.TypeFloat}},
	{"cos", ast.TypeFloat, []ast.Type{ast.TypeFloat}},
	{"sqrt", ast.TypeFloat, []ast.Type{ast.TypeFloat}},
	{"pow", ast.TypeFloat, []ast.Type{ast.TypeFloat, ast.TypeFloat}},
	{"abs", ast.TypeFloat, []ast.Type{ast.TypeFloat}},
	{"mix", ast.TypeFloat, []ast.Type{ast.TypeFloat, ast.TypeFloat, ast.TypeFloat}},
	{"clamp", ast.TypeFloat, []ast.Type{ast.TypeFloat, ast.TypeFloat, ast.TypeFloat}},
	{"mod", ast.TypeFloat, []ast.Type{ast.TypeFloat, ast.TypeFloat}},
	{"length", ast.TypeFloat, []ast.Type{ast.TypeVector}},
	{"normalize", ast.TypeVector, []ast.Type{ast.TypeVector}},
	{"dot", ast.TypeFloat, []ast.Type{ast.TypeVector, ast.TypeVector}},
	{"cross", ast.TypeVector, []ast.Type{ast.TypeVector, ast.TypeVector}},
	{"luminance", ast.TypeFloat, []ast.Type{ast.TypeColor}},
	{"transform", ast.TypePoint, []ast.Type{ast.TypeString, ast.TypePoint}},
	{"noise", ast.TypeFloat, []ast.Type{ast.TypePoint}},
	{"printf", ast.TypeVoid, []ast.Type{ast.TypeString}},
}

// Seed registers every builtin function into st's current scope. It must be
// called before the user program is built, while st is still at global
// scope (functions, unlike variables, may be declared there).
func Seed(st *symtab.SymbolTable, logger *slog.Logger) *types.Diagnostic {
	l := types.Logger{L: logger}
	l.Log(slog.LevelDebug, "seeding standard library", slog.Int("count", len(builtins)))
	for _, b := range builtins {
		if d := st.AddFunction(b.retType, b.name, b.args, types.Synthetic, true); d != nil {
			return d
		}
	}
	return nil
}

// Lookup returns the declared signature of a builtin by name, or
// (ast.TypeUnknown, nil, false) if name is not part of the standard library
// surface. It reads the builtin list directly, without a symbol table.
func Lookup(name string) (retType ast.Type, args []ast.Type, ok bool) {
	for _, b := range builtins {
		if b.name == name {
			return b.retType, b.args, true
		}
	}
	return ast.TypeUnknown, nil, false
}
