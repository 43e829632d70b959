package ir_test

import (
	"bytes"
	"testing"

	"github.com/hdlc/hdlc/lang/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRoundTrip(t *testing.T) {
	b := ir.NewBlock("m")
	a, err := b.AllocateInputSignals(2, []string{"a[0]", "a[1]"})
	require.NoError(t, err)
	q, err := b.AllocateOutputSignals(1, []string{"q"})
	require.NoError(t, err)
	require.NoError(t, b.AddStatement(ir.AND, 2, a, q))

	in := ir.NewIR()
	_, err = in.AddBlock(b)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ir.WriteText(&buf, in))

	out, err := ir.ReadText(&buf)
	require.NoError(t, err)

	require.Len(t, out.Blocks, 1)
	got := out.Blocks[0]
	assert.Equal(t, "m", got.Name)
	assert.Equal(t, uint32(2), got.InputSignalCount)
	assert.Equal(t, uint32(1), got.OutputSignalCount)
	require.Len(t, got.Statements, 1)
	assert.Equal(t, ir.AND, got.Statements[0].Op)
	assert.Equal(t, a, got.Statements[0].Inputs)
	assert.Equal(t, q, got.Statements[0].Outputs)
}
