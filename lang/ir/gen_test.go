package ir_test

import (
	"testing"

	"github.com/hdlc/hdlc/lang/ast"
	"github.com/hdlc/hdlc/lang/ir"
	"github.com/hdlc/hdlc/lang/parser"
	"github.com/hdlc/hdlc/lang/sema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBuild(t *testing.T, filename, src string, includes []*ast.Root) *ast.Root {
	t.Helper()
	root, err := parser.ParseFile(filename, []byte(src))
	require.NoError(t, err)
	require.NoError(t, sema.AnalyzeFile(root, includes))
	return root
}

func countOps(b *ir.Block, op ir.Op) int {
	n := 0
	for _, s := range b.Statements {
		if s.Op == op {
			n++
		}
	}
	return n
}

func TestGenerateAndGate(t *testing.T) {
	root := mustBuild(t, "and.hdl", `block m { in a; in b; out q; q = a & b; }`, nil)
	irv, err := ir.GenerateFile(root, nil, false)
	require.NoError(t, err)

	require.Len(t, irv.Blocks, 1)
	b := irv.Blocks[0]
	assert.Equal(t, uint32(2), b.InputSignalCount)
	assert.Equal(t, uint32(1), b.OutputSignalCount)
	assert.Equal(t, 1, countOps(b, ir.AND))
	assert.Equal(t, 1, countOps(b, ir.Connect))
}

func TestGenerateBroadcast(t *testing.T) {
	root := mustBuild(t, "m.hdl", `block m { in s; in v[4]; out q[4]; q = s & v; }`, nil)
	irv, err := ir.GenerateFile(root, nil, false)
	require.NoError(t, err)

	b := irv.Blocks[0]
	assert.Equal(t, 4, countOps(b, ir.AND))

	sSym, _ := root.Blocks[0].Symbols.Lookup("s")
	for _, stmt := range b.Statements {
		if stmt.Op == ir.AND {
			assert.Contains(t, stmt.Inputs, sSym.BaseSignalID)
		}
	}
}

func TestGenerateSequentialRisingEdge(t *testing.T) {
	root := mustBuild(t, "reg.hdl", `sequential block m { clock(rising_edge) clk; in d; out q; q = d; }`, nil)
	irv, err := ir.GenerateFile(root, nil, false)
	require.NoError(t, err)

	b := irv.Blocks[0]
	assert.Equal(t, 1, countOps(b, ir.FlipFlop))
	assert.Equal(t, 0, countOps(b, ir.NOT))
}

func TestGenerateSequentialFallingEdge(t *testing.T) {
	root := mustBuild(t, "reg.hdl", `sequential block m { clock(falling_edge) clk; in d; out q; q = d; }`, nil)
	irv, err := ir.GenerateFile(root, nil, false)
	require.NoError(t, err)

	b := irv.Blocks[0]
	assert.Equal(t, 1, countOps(b, ir.FlipFlop))
	assert.Equal(t, 1, countOps(b, ir.NOT))

	var ff ir.Statement
	for _, s := range b.Statements {
		if s.Op == ir.FlipFlop {
			ff = s
		}
	}
	var not ir.Statement
	for _, s := range b.Statements {
		if s.Op == ir.NOT {
			not = s
		}
	}
	assert.Equal(t, not.Outputs[0], ff.Inputs[0])
}

func TestGenerateAdder(t *testing.T) {
	root := mustBuild(t, "add.hdl", `block m { in a[3]; in b[3]; out s[3]; s = a + b; }`, nil)
	irv, err := ir.GenerateFile(root, nil, false)
	require.NoError(t, err)

	b := irv.Blocks[0]
	adds := 0
	for _, s := range b.Statements {
		if s.Op == ir.Add {
			adds++
		}
	}
	assert.Equal(t, 3, adds)
}

func TestGenerateConcat(t *testing.T) {
	root := mustBuild(t, "cat.hdl", `block m { in hi[2]; in lo[2]; out a[4]; a = hi $ lo; }`, nil)
	irv, err := ir.GenerateFile(root, nil, false)
	require.NoError(t, err)

	b := irv.Blocks[0]
	// 4 Connects lowering the concatenation, plus 4 lowering the assignment.
	assert.Equal(t, 8, countOps(b, ir.Connect))
}

func TestGenerateSubblockComposition(t *testing.T) {
	and2 := mustBuild(t, "and2.hdl", `block and2 { in a; in b; out q; q = a & b; }`, nil)
	top := mustBuild(t, "top.hdl", `block top {
		block and2 u;
		in a, b;
		out q;

		u.a = a;
		u.b = b;
		q = u.q;
	}`, []*ast.Root{and2})

	and2IR, err := ir.GenerateFile(and2, nil, false)
	require.NoError(t, err)

	topIR, err := ir.GenerateFile(top, []*ir.IR{and2IR}, false)
	require.NoError(t, err)

	b := topIR.Blocks[0]
	require.Len(t, b.Blocks, 1)
	assert.Equal(t, uint32(2), b.Blocks[0].InCount)
	assert.Equal(t, uint32(1), b.Blocks[0].OutCount)
	// a, b connected into the sub-block region; its output connected to q.
	assert.GreaterOrEqual(t, countOps(b, ir.Connect), 3)
}

func TestGenerateRejectsDuplicateBlockNames(t *testing.T) {
	a, err := parser.ParseFile("dup.hdl", []byte(`
block a { in x; out y; y = x; }
block a { in x; out y; y = x; }
`))
	require.NoError(t, err)
	// sema already rejects this at the DuplicateBlock check; confirm the IR
	// layer's own AddBlock guard independently rejects the same shape.
	b1 := ir.NewBlock(a.Blocks[0].Name)
	out := ir.NewIR()
	_, err = out.AddBlock(b1)
	require.NoError(t, err)
	_, err = out.AddBlock(ir.NewBlock(a.Blocks[1].Name))
	require.Error(t, err)
}
