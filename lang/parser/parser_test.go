package parser_test

import (
	"testing"

	"github.com/hdlc/hdlc/lang/ast"
	"github.com/hdlc/hdlc/lang/parser"
	"github.com/hdlc/hdlc/lang/symtab"
	"github.com/hdlc/hdlc/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIncludeAndBlock(t *testing.T) {
	src := `include "defs.hdl";

block and2 {
	in a, b;
	out q;

	q = a & b;
}
`
	root, err := parser.ParseFile("and2.hdl", []byte(src))
	require.NoError(t, err)
	require.Len(t, root.Includes, 1)
	assert.Equal(t, "defs.hdl", root.Includes[0].Name)

	require.Len(t, root.Blocks, 1)
	blk := root.Blocks[0]
	assert.Equal(t, "and2", blk.Name)
	assert.False(t, blk.IsSequential)
	require.Len(t, blk.Decls, 2)
	assert.Equal(t, symtab.In, blk.Decls[0].Type.Specifier)
	assert.Equal(t, []string{"a", "b"}, blk.Decls[0].Names)
	assert.Equal(t, symtab.Out, blk.Decls[1].Type.Specifier)

	require.Len(t, blk.Stmts, 1)
	stmt := blk.Stmts[0]
	assert.Equal(t, "q", stmt.Target.Name)
	bin, ok := stmt.Source.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.AMPERSAND, bin.Op)
}

func TestParseSequentialBlockWithClock(t *testing.T) {
	src := `sequential block reg1 {
	clock(rising_edge) clk;
	in d;
	out q;

	q = d;
}
`
	root, err := parser.ParseFile("reg1.hdl", []byte(src))
	require.NoError(t, err)
	require.Len(t, root.Blocks, 1)
	blk := root.Blocks[0]
	assert.True(t, blk.IsSequential)

	require.Len(t, blk.Decls, 3)
	clk := blk.Decls[0].Type
	assert.Equal(t, symtab.Clock, clk.Specifier)
	assert.Equal(t, token.RISING_EDGE, clk.Edge)
}

func TestParseBlockReference(t *testing.T) {
	src := `block top {
	block and2 gate1;
	in a, b;
	out q;

	gate1.a = a;
	gate1.b = b;
	q = gate1.q;
}
`
	root, err := parser.ParseFile("top.hdl", []byte(src))
	require.NoError(t, err)
	blk := root.Blocks[0]
	require.Len(t, blk.Decls, 3)
	assert.Equal(t, symtab.BlockRef, blk.Decls[0].Type.Specifier)
	assert.Equal(t, "and2", blk.Decls[0].Type.BlockName)
	assert.Equal(t, []string{"gate1"}, blk.Decls[0].Names)

	require.Len(t, blk.Stmts, 3)
	assert.True(t, blk.Stmts[0].Target.HasProperty)
	assert.Equal(t, "gate1", blk.Stmts[0].Target.Name)
	assert.Equal(t, "a", blk.Stmts[0].Target.Property)
}

func TestParseSubscriptAndConcat(t *testing.T) {
	src := `block splitter {
	in a[4];
	out hi[2], lo[2];

	hi = a[3:2];
	lo = a[1:0];
}
`
	root, err := parser.ParseFile("splitter.hdl", []byte(src))
	require.NoError(t, err)
	blk := root.Blocks[0]
	require.Len(t, blk.Stmts, 2)

	src2 := `block joiner {
	in hi[2], lo[2];
	out a[4];

	a = hi $ lo;
}
`
	root2, err := parser.ParseFile("joiner.hdl", []byte(src2))
	require.NoError(t, err)
	blk2 := root2.Blocks[0]
	bin, ok := blk2.Stmts[0].Source.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.DOLLAR, bin.Op)
}

func TestParseExprPrecedence(t *testing.T) {
	// `|` binds loosest, `$` binds tightest among binary operators, `~`
	// binds tighter than any binary operator.
	src := `block prec {
	in a, b, c;
	out q;

	q = a | b & c;
}
`
	root, err := parser.ParseFile("prec.hdl", []byte(src))
	require.NoError(t, err)
	top, ok := root.Blocks[0].Stmts[0].Source.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.PIPE, top.Op)

	_, leftIsVar := top.Left.(*ast.VariableExpr)
	assert.True(t, leftIsVar)
	right, ok := top.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.AMPERSAND, right.Op)
}

func TestParseErrorRecoveryContinuesAfterBadStatement(t *testing.T) {
	src := `block bad {
	in a;
	out q;

	q = ;
	q = a;
}
`
	root, err := parser.ParseFile("bad.hdl", []byte(src))
	require.Error(t, err)
	require.Len(t, root.Blocks, 1)
	// the malformed statement is dropped, but parsing continues and recovers
	// the following valid one.
	require.Len(t, root.Blocks[0].Stmts, 1)
	assert.Equal(t, "q", root.Blocks[0].Stmts[0].Target.Name)
}

func TestParseNumberLiteralWithWidth(t *testing.T) {
	src := `block constblock {
	out q[4];

	q = 5#4;
}
`
	root, err := parser.ParseFile("constblock.hdl", []byte(src))
	require.NoError(t, err)
	c, ok := root.Blocks[0].Stmts[0].Source.(*ast.ConstExpr)
	require.True(t, ok)
	assert.Equal(t, uint64(5), c.Value)
	assert.True(t, c.HasWidth)
	assert.Equal(t, uint64(4), c.Width)
}
