// Package oslc compiles Open Shading Language source text.
//
// Call [Compile] with source bytes to run the Lexer -> Parser -> SymbolTable
// -> TypeChecker pipeline and get back either a [Result] holding the parsed
// program and its resolved symbol table, or an [ErrCompile] carrying the
// first diagnostic raised. An [Option] such as [WithBackend] can additionally hand the compiled
// program to a code generator.
package oslc

import (
	"fmt"
	"log/slog"

	"github.com/openshading/oslc/internal/ast"
	"github.com/openshading/oslc/internal/backend"
	"github.com/openshading/oslc/internal/parser"
	"github.com/openshading/oslc/internal/stdlib"
	"github.com/openshading/oslc/internal/symtab"
	"github.com/openshading/oslc/internal/typecheck"
)

// ErrCompile is returned when any compile phase (lexing, parsing, symbol
// table construction, or type checking) fails. The underlying Diagnostic is
// available on the returned error via errors.As.
type ErrCompile struct {
	Diagnostic Diagnostic
}

func (e *ErrCompile) Error() string {
	return e.Diagnostic.String()
}

// Option configures Compile.
type Option func(*compileConfig)

type compileConfig struct {
	logger     *slog.Logger
	backend    backend.Backend
	genBackend bool
}

// WithLogger sets the logger used for phase-level debug and trace output.
// If not set, no logging occurs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *compileConfig) { c.logger = logger }
}

// WithBackend requests that Compile additionally run the named back-end
// target's Generator against the compiled program on success, populating
// Result.Object. Omit to skip code generation entirely.
func WithBackend(target Backend) Option {
	return func(c *compileConfig) {
		c.backend = target
		c.genBackend = true
	}
}

// Result is the output of a successful Compile.
type Result struct {
	Program     *ast.Program
	SymbolTable *symtab.SymbolTable
	Object      []byte // nil unless WithBackend was given
}

// Compile runs the full pipeline over source: lexing, parsing, standard
// library seeding, symbol table construction, and type checking. It returns
// the first diagnostic encountered as an *ErrCompile; the pipeline stops at
// the first error rather than continuing to collect more.
func Compile(source []byte, opts ...Option) (*Result, error) {
	cfg := compileConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := parser.New(source, cfg.logger)
	prog, diags := p.ParseProgram()
	if len(diags) > 0 {
		// Lexer diagnostics precede any parse error, and fail the compile
		// even when the parse itself succeeded.
		return nil, &ErrCompile{Diagnostic: diags[0]}
	}
	if prog == nil {
		return nil, &ErrCompile{Diagnostic: lastOrSynthetic(diags)}
	}

	st := symtab.New(len(source), cfg.logger)
	if d := stdlib.Seed(st, cfg.logger); d != nil {
		return nil, &ErrCompile{Diagnostic: *d}
	}
	if d := symtab.Build(prog, st); d != nil {
		return nil, &ErrCompile{Diagnostic: *d}
	}
	if d := typecheck.Check(prog, p.Tokens(), source, st, cfg.logger); d != nil {
		return nil, &ErrCompile{Diagnostic: *d}
	}

	result := &Result{Program: prog, SymbolTable: st}

	if cfg.genBackend {
		gen := backend.New()
		obj, err := gen.Generate(prog, st, cfg.backend)
		if err != nil {
			return nil, fmt.Errorf("oslc: backend generation failed: %w", err)
		}
		result.Object = obj
	}

	return result, nil
}

// lastOrSynthetic returns the most recent diagnostic from a failed parse
// (the fatal error is always appended last), or a placeholder if the parser
// somehow returned no diagnostics at all.
func lastOrSynthetic(diags []Diagnostic) Diagnostic {
	if len(diags) > 0 {
		return diags[len(diags)-1]
	}
	return Diagnostic{Message: "parse failed with no diagnostic"}
}
