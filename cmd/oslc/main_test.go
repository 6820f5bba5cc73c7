package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openshading/oslc/internal/testutil"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shader.osl")
	testutil.NoError(t, os.WriteFile(path, []byte(content), 0o644), "write fixture")
	return path
}

func TestRunCompilesValidShader(t *testing.T) {
	path := writeSource(t, `surface plastic(float Kd = 0.5) { color c = color(Kd, Kd, Kd); }`)
	code := run([]string{path})
	testutil.Equal(t, exitOK, code, "exit code")
}

func TestRunReportsCompileError(t *testing.T) {
	path := writeSource(t, `float f() { return 1; }`)
	code := run([]string{path})
	testutil.Equal(t, exitError, code, "exit code")
}

func TestRunReportsMissingFile(t *testing.T) {
	code := run([]string{filepath.Join(t.TempDir(), "does-not-exist.osl")})
	testutil.Equal(t, exitUsage, code, "exit code")
}

func TestRunRequiresExactlyOneArg(t *testing.T) {
	code := run(nil)
	testutil.Equal(t, exitUsage, code, "exit code")
}
