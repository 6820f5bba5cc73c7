package stdlib

import (
	"testing"

	"github.com/openshading/oslc/internal/ast"
	"github.com/openshading/oslc/internal/symtab"
	"github.com/openshading/oslc/internal/testutil"
	"github.com/openshading/oslc/internal/types"
)

func TestSeedRegistersColor(t *testing.T) {
	st := symtab.New(0, nil)
	d := Seed(st, nil)
	testutil.Nil(t, d, "seed error")
	testutil.Equal(t, len(builtins), st.NFunctions, "function count")
}

func TestSeedIsVisibleFromGlobalScope(t *testing.T) {
	st := symtab.New(10, nil)
	testutil.Nil(t, Seed(st, nil), "seed error")
	d := st.CheckAccess(types.NewSpan(0, 1, 1), "sin")
	testutil.Nil(t, d, "builtin should be visible everywhere")
}

func TestLookupKnownBuiltin(t *testing.T) {
	ret, args, ok := Lookup("pow")
	testutil.True(t, ok, "pow should be found")
	testutil.Equal(t, ast.TypeFloat, ret, "return type")
	testutil.Len(t, args, 2, "arg count")
}

func TestLookupUnknownName(t *testing.T) {
	_, _, ok := Lookup("not_a_builtin")
	testutil.False(t, ok, "unknown name should not be found")
}
