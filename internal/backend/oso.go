package backend

import (
	"fmt"
	"strings"

	"github.com/openshading/oslc/internal/ast"
	"github.com/openshading/oslc/internal/symtab"
)

// osoGenerator serializes a compiled program as a minimal textual object
// format: an object name line, the shader's kind, and one line per
// parameter. It does not attempt to reproduce the real OSO bytecode format;
// it exists so a caller has a concrete success artifact to print or write.
type osoGenerator struct{}

func (osoGenerator) Generate(prog *ast.Program, st *symtab.SymbolTable, target Backend) ([]byte, error) {
	if target != OSO {
		return nil, &ErrUnsupportedBackend{Target: target}
	}
	if len(prog.Shaders) == 0 {
		return nil, fmt.Errorf("backend: program has no shader to generate")
	}
	sh := prog.Shaders[0]

	var b strings.Builder
	fmt.Fprintf(&b, "OSO 1.00\n")
	fmt.Fprintf(&b, "shader %s %s\n", sh.Kind, sh.Name.Name)
	for _, p := range sh.Params {
		kind := "param"
		if p.IsOutput {
			kind = "oparam"
		}
		fmt.Fprintf(&b, "%s %s %s\n", kind, p.Type, p.Name.Name)
	}
	fmt.Fprintf(&b, "code %s\n", sh.Name.Name)
	fmt.Fprintf(&b, "end\n")

	return []byte(b.String()), nil
}
