// Package backend defines the hand-off contract between the front-end and
// an external code generator. No target actually emits machine or bytecode
// output here; the one stub generator produces a textual object format so
// a caller has something observable to do with a compiled program.
package backend

import (
	"fmt"

	"github.com/openshading/oslc/internal/ast"
	"github.com/openshading/oslc/internal/symtab"
)

// Backend names a code generation target. Only OSO has a generator; LLVM
// and SPIRV are declared so callers can select them and receive
// ErrUnsupportedBackend rather than a compile-time absence of the option.
type Backend int

const (
	OSO Backend = iota
	LLVM
	SPIRV
)

func (b Backend) String() string {
	switch b {
	case OSO:
		return "OSO"
	case LLVM:
		return "LLVM"
	case SPIRV:
		return "SPIRV"
	default:
		return "unknown"
	}
}

// Generator turns a type-checked program and its symbol table into target
// bytes.
type Generator interface {
	Generate(prog *ast.Program, st *symtab.SymbolTable, target Backend) ([]byte, error)
}

// ErrUnsupportedBackend is returned by a Generator asked to produce a
// target it doesn't implement.
type ErrUnsupportedBackend struct {
	Target Backend
}

func (e *ErrUnsupportedBackend) Error() string {
	return fmt.Sprintf("backend: unsupported target %s", e.Target)
}

// New returns the Generator this front-end ships: a stub that only
// understands OSO. Asking it to Generate against LLVM or SPIRV fails with
// ErrUnsupportedBackend.
func New() Generator {
	return osoGenerator{}
}
