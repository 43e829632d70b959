package symtab_test

import (
	"testing"

	"github.com/hdlc/hdlc/lang/symtab"
	"github.com/hdlc/hdlc/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndLookup(t *testing.T) {
	tbl := symtab.New(4)

	require.NoError(t, tbl.Add(&symtab.Symbol{Name: "a", Type: symtab.Type{Specifier: symtab.In, Width: 1}}))
	require.NoError(t, tbl.Add(&symtab.Symbol{Name: "b", Type: symtab.Type{Specifier: symtab.Out, Width: 1}}))

	sym, ok := tbl.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, symtab.In, sym.Type.Specifier)

	_, ok = tbl.Lookup("missing")
	assert.False(t, ok)
}

func TestAddDuplicateFails(t *testing.T) {
	tbl := symtab.New(1)
	require.NoError(t, tbl.Add(&symtab.Symbol{Name: "clk", Pos: token.MakePos(1, 1)}))

	err := tbl.Add(&symtab.Symbol{Name: "clk", Pos: token.MakePos(2, 1)})
	require.Error(t, err)
	var exists *symtab.ErrSymbolExists
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, "clk", exists.Name)
}

func TestIterationFollowsInsertionOrder(t *testing.T) {
	tbl := symtab.New(3)
	names := []string{"c", "a", "b"}
	for _, n := range names {
		require.NoError(t, tbl.Add(&symtab.Symbol{Name: n}))
	}

	require.Equal(t, len(names), tbl.Len())
	for i, n := range names {
		assert.Equal(t, n, tbl.At(i).Name)
	}

	all := tbl.All()
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].Name)
}
