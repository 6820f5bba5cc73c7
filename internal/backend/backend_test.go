package backend

import (
	"testing"

	"github.com/openshading/oslc/internal/parser"
	"github.com/openshading/oslc/internal/stdlib"
	"github.com/openshading/oslc/internal/symtab"
	"github.com/openshading/oslc/internal/testutil"
)

func TestBackendString(t *testing.T) {
	testutil.Equal(t, "OSO", OSO.String(), "OSO")
	testutil.Equal(t, "LLVM", LLVM.String(), "LLVM")
	testutil.Equal(t, "SPIRV", SPIRV.String(), "SPIRV")
}

func TestOSOGeneratorEmitsShaderAndParams(t *testing.T) {
	source := `surface plastic(float Kd = 0.5, output color Ci = 0) { Ci = color(Kd, Kd, Kd); }`
	p := parser.New([]byte(source), nil)
	prog, diags := p.ParseProgram()
	testutil.NotNil(t, prog, "parse failed: %v", diags)

	st := symtab.New(len(source), nil)
	testutil.Nil(t, stdlib.Seed(st, nil), "seed failed")
	testutil.Nil(t, symtab.Build(prog, st), "build failed")

	gen := New()
	out, err := gen.Generate(prog, st, OSO)
	testutil.NoError(t, err, "generate failed")
	testutil.Contains(t, string(out), "shader surface plastic", "object header")
	testutil.Contains(t, string(out), "param float Kd", "input param")
	testutil.Contains(t, string(out), "oparam color Ci", "output param")
}

func TestOSOGeneratorRejectsOtherBackends(t *testing.T) {
	source := `surface s() { Ci = 0; }`
	p := parser.New([]byte(source), nil)
	prog, _ := p.ParseProgram()
	st := symtab.New(len(source), nil)
	testutil.Nil(t, stdlib.Seed(st, nil), "seed failed")
	testutil.Nil(t, symtab.Build(prog, st), "build failed")

	gen := New()
	_, err := gen.Generate(prog, st, LLVM)
	testutil.Error(t, err, "expected unsupported backend error")
}

func TestOSOGeneratorRejectsProgramWithoutShader(t *testing.T) {
	source := `float f() { return 1; }`
	p := parser.New([]byte(source), nil)
	prog, _ := p.ParseProgram()
	st := symtab.New(len(source), nil)
	testutil.Nil(t, stdlib.Seed(st, nil), "seed failed")
	testutil.Nil(t, symtab.Build(prog, st), "build failed")

	gen := New()
	_, err := gen.Generate(prog, st, OSO)
	testutil.Error(t, err, "expected no-shader error")
}
