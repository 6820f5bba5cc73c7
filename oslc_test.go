package oslc

import (
	"errors"
	"testing"

	"github.com/openshading/oslc/internal/testutil"
)

func TestCompileValidShader(t *testing.T) {
	res, err := Compile([]byte(`surface plastic(float Kd = 0.5) { color c = color(Kd, Kd, Kd); }`))
	testutil.NoError(t, err, "compile should succeed")
	testutil.NotNil(t, res, "result")
	testutil.Equal(t, 1, len(res.Program.Shaders), "shaders")
	testutil.Nil(t, res.Object, "no backend requested")
}

func TestCompileParseErrorReturnsErrCompile(t *testing.T) {
	_, err := Compile([]byte(`surface s() { float x = }`))
	testutil.Error(t, err, "expected a parse error")
	var compileErr *ErrCompile
	testutil.True(t, errors.As(err, &compileErr), "error should be an *ErrCompile")
}

func TestCompileMissingShaderIsError(t *testing.T) {
	_, err := Compile([]byte(`float f() { return 1; }`))
	testutil.Error(t, err, "expected a missing-shader error")
}

func TestCompileWithBackendPopulatesObject(t *testing.T) {
	res, err := Compile(
		[]byte(`surface plastic(float Kd = 0.5) { color c = color(Kd, Kd, Kd); }`),
		WithBackend(OSO),
	)
	testutil.NoError(t, err, "compile should succeed")
	testutil.NotNil(t, res.Object, "object bytes")
	testutil.Contains(t, string(res.Object), "shader surface plastic", "object content")
}

func TestCompileWithUnsupportedBackendIsError(t *testing.T) {
	_, err := Compile(
		[]byte(`surface plastic() { color c = color(1, 1, 1); }`),
		WithBackend(LLVM),
	)
	testutil.Error(t, err, "expected unsupported backend error")
}
