package ir_test

import (
	"testing"

	"github.com/hdlc/hdlc/lang/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizeCoalescesThroughAWire(t *testing.T) {
	b := ir.NewBlock("m")
	a, err := b.AllocateInputSignals(1, []string{"a"})
	require.NoError(t, err)
	q, err := b.AllocateOutputSignals(1, []string{"q"})
	require.NoError(t, err)
	wire := b.AllocateSignals(1)

	require.NoError(t, b.AddStatement(ir.Connect, 1, a, wire))
	require.NoError(t, b.AddStatement(ir.Connect, 1, wire, q))

	ir.Optimize(b)

	require.Len(t, b.Statements, 1)
	assert.Equal(t, ir.Connect, b.Statements[0].Op)
	assert.Equal(t, a[0], b.Statements[0].Inputs[0])
	assert.Equal(t, q[0], b.Statements[0].Outputs[0])
}

func TestOptimizeKeepsDistinctReservedSignalsUnmerged(t *testing.T) {
	b := ir.NewBlock("m")
	a, err := b.AllocateInputSignals(1, []string{"a"})
	require.NoError(t, err)
	q, err := b.AllocateOutputSignals(1, []string{"q"})
	require.NoError(t, err)

	require.NoError(t, b.AddStatement(ir.Connect, 1, a, q))

	ir.Optimize(b)

	require.Len(t, b.Statements, 1)
	assert.Equal(t, a[0], b.Statements[0].Inputs[0])
	assert.Equal(t, q[0], b.Statements[0].Outputs[0])
}

func TestOptimizeDropsTrailingConnectIntoReservedOutput(t *testing.T) {
	b := ir.NewBlock("m")
	a, err := b.AllocateInputSignals(1, []string{"a"})
	require.NoError(t, err)
	q, err := b.AllocateOutputSignals(1, []string{"q"})
	require.NoError(t, err)
	mid := b.AllocateSignals(2)

	require.NoError(t, b.AddStatement(ir.NOT, 1, a, mid[:1]))
	require.NoError(t, b.AddStatement(ir.NOT, 1, mid[:1], mid[1:]))
	require.NoError(t, b.AddStatement(ir.Connect, 1, mid[1:], q))

	ir.Optimize(b)

	require.Len(t, b.Statements, 2)
	assert.Equal(t, ir.NOT, b.Statements[0].Op)
	assert.Equal(t, ir.NOT, b.Statements[1].Op)
	assert.Equal(t, q[0], b.Statements[1].Outputs[0])
}
