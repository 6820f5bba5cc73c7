// Package integration exercises the full Lexer -> Parser -> SymbolTable ->
// TypeChecker pipeline end to end against fixtures in ../testdata, the way
// a user would invoke the compiler: one source file in, one Result or
// Diagnostic out. Unit tests for each phase live beside that phase's
// package; these only check the seams between phases.
package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openshading/oslc"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, name string) []byte {
	t.Helper()
	source, err := os.ReadFile(filepath.Join("..", "testdata", name))
	require.NoError(t, err, "reading fixture %s", name)
	return source
}

// TestValidShaderCompilesCleanly covers the golden path: a shader with
// parameters, local variables, a builtin call, and a conditional all
// type-check with no diagnostics.
func TestValidShaderCompilesCleanly(t *testing.T) {
	res, err := oslc.Compile(load(t, "valid_plastic.osl"))
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Program.Shaders, 1)
	require.Equal(t, "plastic", res.Program.Shaders[0].Name.Name)
}

// TestReservedKeywordFailsLexing covers a lexical error propagating all
// the way through Compile as a failure, even though the keyword appears
// deep inside a shader body.
func TestReservedKeywordFailsLexing(t *testing.T) {
	_, err := oslc.Compile(load(t, "reserved_keyword.osl"))
	require.Error(t, err)
}

// TestMissingSemicolonFailsParsing covers the parser's fatal-on-first-error
// behavior: a single missing terminator stops the whole compile.
func TestMissingSemicolonFailsParsing(t *testing.T) {
	_, err := oslc.Compile(load(t, "missing_semicolon.osl"))
	require.Error(t, err)
}

// TestOutOfScopeReferenceFailsSymbolResolution covers the bitmask scope
// test rejecting a reference to a variable declared in a sibling block.
func TestOutOfScopeReferenceFailsSymbolResolution(t *testing.T) {
	_, err := oslc.Compile(load(t, "out_of_scope.osl"))
	require.Error(t, err)
}

// TestMismatchedAssignmentFailsTypeChecking covers the type checker
// rejecting an incompatible initializer.
func TestMismatchedAssignmentFailsTypeChecking(t *testing.T) {
	_, err := oslc.Compile(load(t, "type_mismatch.osl"))
	require.Error(t, err)
}

// TestMissingShaderFailsDriverCheck covers the driver-level invariant that
// exactly one shader function must be present, independent of whether
// every individual declaration type-checks on its own.
func TestMissingShaderFailsDriverCheck(t *testing.T) {
	_, err := oslc.Compile(load(t, "missing_shader.osl"))
	require.Error(t, err)
}

// TestValidShaderGeneratesOSOObject covers the full pipeline including the
// backend hand-off: a clean compile plus WithBackend produces non-empty
// object bytes describing the shader.
func TestValidShaderGeneratesOSOObject(t *testing.T) {
	res, err := oslc.Compile(load(t, "valid_plastic.osl"), oslc.WithBackend(oslc.OSO))
	require.NoError(t, err)
	require.NotEmpty(t, res.Object)
	require.Contains(t, string(res.Object), "shader surface plastic")
}
