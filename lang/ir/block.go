package ir

import "fmt"

// Statement is a single IR instruction: an operation over input signal ids
// producing output signal ids.
type Statement struct {
	Op      Op
	Size    uint16
	Inputs  []uint32
	Outputs []uint32
}

// NestedBlockRef is a weak reference from an enclosing Block to a nested
// block instantiation: an index into the owning IR's Blocks slice (rather
// than a shared pointer, since this implementation has no reference
// counting) plus the signal region reserved for that instance's interface.
type NestedBlockRef struct {
	Index    int
	Name     string
	Base     uint32
	InCount  uint32
	OutCount uint32
}

// Block is a single gate-level netlist block: ports, nested instantiations
// and statements, with a monotonic signal-id counter. Its zero value is
// ready to allocate signals into.
type Block struct {
	Name string

	InputSignalCount  uint32
	OutputSignalCount uint32
	InputSignalNames  []string
	OutputSignalNames []string

	Blocks     []NestedBlockRef
	Statements []Statement

	NextSignalID uint32

	outputsStarted   bool
	blocksStarted    bool
	statementsStarted bool
}

// NewBlock creates an empty Block named name.
func NewBlock(name string) *Block { return &Block{Name: name} }

func (b *Block) err(kind ErrorKind, msg string) error {
	return &Error{Kind: kind, Block: b.Name, Msg: msg}
}

// AllocateInputSignals allocates n fresh input signal ids, in order, naming
// them from names (len(names) must equal n). It fails once any output,
// nested block or statement has been added.
func (b *Block) AllocateInputSignals(n uint32, names []string) ([]uint32, error) {
	if b.outputsStarted || b.blocksStarted || b.statementsStarted {
		return nil, b.err(NoMoreInputSignals, "input signals must be allocated before outputs, blocks or statements")
	}
	ids := b.allocate(n)
	b.InputSignalCount += n
	b.InputSignalNames = append(b.InputSignalNames, names...)
	return ids, nil
}

// AllocateOutputSignals allocates n fresh output signal ids. It fails once
// any nested block or statement has been added.
func (b *Block) AllocateOutputSignals(n uint32, names []string) ([]uint32, error) {
	if b.blocksStarted || b.statementsStarted {
		return nil, b.err(NoMoreOutputSignals, "output signals must be allocated before blocks or statements")
	}
	b.outputsStarted = true
	ids := b.allocate(n)
	b.OutputSignalCount += n
	b.OutputSignalNames = append(b.OutputSignalNames, names...)
	return ids, nil
}

// AddBlockRef reserves a signal region for a nested block instantiation
// (inCount input signals followed by outCount output signals) and records
// ref. It fails once any statement has been added.
func (b *Block) AddBlockRef(index int, name string, inCount, outCount uint32) (NestedBlockRef, error) {
	if b.statementsStarted {
		return NestedBlockRef{}, b.err(NoMoreBlocks, "nested blocks must be added before statements")
	}
	b.blocksStarted = true
	base := b.NextSignalID
	b.NextSignalID += inCount + outCount
	ref := NestedBlockRef{Index: index, Name: name, Base: base, InCount: inCount, OutCount: outCount}
	b.Blocks = append(b.Blocks, ref)
	return ref, nil
}

// AllocateSignals allocates n fresh internal signal ids, unrestricted by
// the phase of construction (used for wires and intermediate values).
func (b *Block) AllocateSignals(n uint32) []uint32 { return b.allocate(n) }

func (b *Block) allocate(n uint32) []uint32 {
	ids := make([]uint32, n)
	for i := range ids {
		ids[i] = b.NextSignalID
		b.NextSignalID++
	}
	return ids
}

// AddStatement appends a validated statement. It fails if size is invalid
// for op, or if the given input/output counts do not match op's arity for
// that size.
func (b *Block) AddStatement(op Op, size uint16, inputs, outputs []uint32) error {
	nin, nout, ok := arity(op, size)
	if !ok || len(inputs) != nin || len(outputs) != nout {
		return &Error{
			Kind:  StatementSizeInvalid,
			Block: b.Name,
			Op:    op,
			Size:  size,
			Msg:   fmt.Sprintf("expected %d input(s) and %d output(s)", nin, nout),
		}
	}
	b.statementsStarted = true
	b.Statements = append(b.Statements, Statement{Op: op, Size: size, Inputs: inputs, Outputs: outputs})
	return nil
}

// ReservedSignalCount returns the number of signal ids that form this
// block's public interface: its own inputs and outputs, plus the
// inputs+outputs of every nested block instantiation. These ids must
// survive connection coalescing unrenamed.
func (b *Block) ReservedSignalCount() uint32 {
	n := b.InputSignalCount + b.OutputSignalCount
	for _, ref := range b.Blocks {
		n += ref.InCount + ref.OutCount
	}
	return n
}
