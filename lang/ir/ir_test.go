package ir_test

import (
	"testing"

	"github.com/hdlc/hdlc/lang/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateInputThenOutputThenStatement(t *testing.T) {
	b := ir.NewBlock("m")

	ins, err := b.AllocateInputSignals(2, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1}, ins)

	outs, err := b.AllocateOutputSignals(1, []string{"q"})
	require.NoError(t, err)
	assert.Equal(t, []uint32{2}, outs)

	require.NoError(t, b.AddStatement(ir.AND, 2, []uint32{ins[0], ins[1]}, []uint32{outs[0]}))
	assert.Len(t, b.Statements, 1)
}

func TestAllocateInputAfterOutputFails(t *testing.T) {
	b := ir.NewBlock("m")
	_, err := b.AllocateOutputSignals(1, []string{"q"})
	require.NoError(t, err)

	_, err = b.AllocateInputSignals(1, []string{"a"})
	require.Error(t, err)
	var irErr *ir.Error
	require.ErrorAs(t, err, &irErr)
	assert.Equal(t, ir.NoMoreInputSignals, irErr.Kind)
}

func TestAllocateOutputAfterBlockFails(t *testing.T) {
	b := ir.NewBlock("m")
	_, err := b.AddBlockRef(0, "sub", 1, 1)
	require.NoError(t, err)

	_, err = b.AllocateOutputSignals(1, []string{"q"})
	require.Error(t, err)
	var irErr *ir.Error
	require.ErrorAs(t, err, &irErr)
	assert.Equal(t, ir.NoMoreOutputSignals, irErr.Kind)
}

func TestAddBlockRefAfterStatementFails(t *testing.T) {
	b := ir.NewBlock("m")
	ins, _ := b.AllocateInputSignals(1, []string{"a"})
	require.NoError(t, b.AddStatement(ir.NOT, 1, ins, ins))

	_, err := b.AddBlockRef(0, "sub", 1, 1)
	require.Error(t, err)
	var irErr *ir.Error
	require.ErrorAs(t, err, &irErr)
	assert.Equal(t, ir.NoMoreBlocks, irErr.Kind)
}

func TestAddStatementRejectsBadArity(t *testing.T) {
	b := ir.NewBlock("m")
	ins, _ := b.AllocateInputSignals(2, []string{"a", "b"})
	err := b.AddStatement(ir.NOT, 1, ins, ins[:1])
	require.Error(t, err)
	var irErr *ir.Error
	require.ErrorAs(t, err, &irErr)
	assert.Equal(t, ir.StatementSizeInvalid, irErr.Kind)
}

func TestReservedSignalCountIncludesNestedBlocks(t *testing.T) {
	b := ir.NewBlock("m")
	ins, _ := b.AllocateInputSignals(1, []string{"a"})
	outs, _ := b.AllocateOutputSignals(1, []string{"q"})
	_, err := b.AddBlockRef(0, "sub", 2, 1)
	require.NoError(t, err)
	_ = ins
	_ = outs

	assert.Equal(t, uint32(1+1+2+1), b.ReservedSignalCount())
}

func TestMergeRejectsDuplicateBlockNames(t *testing.T) {
	a := ir.NewIR()
	_, err := a.AddBlock(ir.NewBlock("m"))
	require.NoError(t, err)

	other := ir.NewIR()
	_, err = other.AddBlock(ir.NewBlock("m"))
	require.NoError(t, err)

	_, err = ir.Merge(a, other)
	require.Error(t, err)
	var irErr *ir.Error
	require.ErrorAs(t, err, &irErr)
	assert.Equal(t, ir.DuplicateBlock, irErr.Kind)
}

func TestMergeConcatenatesInFileOrder(t *testing.T) {
	a := ir.NewIR()
	_, err := a.AddBlock(ir.NewBlock("m1"))
	require.NoError(t, err)

	b := ir.NewIR()
	_, err = b.AddBlock(ir.NewBlock("m2"))
	require.NoError(t, err)

	merged, err := ir.Merge(a, b)
	require.NoError(t, err)
	require.Len(t, merged.Blocks, 2)
	assert.Equal(t, "m1", merged.Blocks[0].Name)
	assert.Equal(t, "m2", merged.Blocks[1].Name)
}
