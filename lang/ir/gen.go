package ir

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/hdlc/hdlc/lang/ast"
	"github.com/hdlc/hdlc/lang/symtab"
	"github.com/hdlc/hdlc/lang/token"
)

// GenerateFile lowers every block of a semantically analyzed root into IR,
// in declaration order, returning one IR holding all of this file's
// blocks. includeIRs supplies the already-generated IR of each direct
// include, consulted only to resolve the IR index of a Block-typed symbol
// naming a block declared in another file; when it isn't found there the
// reference carries Index -1 and is resolved by name alone downstream.
func GenerateFile(root *ast.Root, includeIRs []*IR, optimize bool) (*IR, error) {
	out := NewIR()

	// Reserve an (empty) IR block for every AST block up front, so a
	// same-file forward block reference resolves to a live index before
	// its body has been generated.
	for _, b := range root.Blocks {
		idx, err := out.AddBlock(NewBlock(b.Name))
		if err != nil {
			return nil, err
		}
		b.IRBlockIndex = idx
	}

	g := &generator{root: root, includeIRs: includeIRs}
	for _, b := range root.Blocks {
		if err := g.generateBlock(out.Blocks[b.IRBlockIndex], b); err != nil {
			return nil, err
		}
		if optimize {
			Optimize(out.Blocks[b.IRBlockIndex])
		}
	}
	return out, nil
}

type generator struct {
	root       *ast.Root
	includeIRs []*IR
}

func (g *generator) lookupIRIndex(blockName string) int {
	if b := g.root.BlockByName(blockName); b != nil {
		return b.IRBlockIndex
	}
	for _, inc := range g.includeIRs {
		if _, idx, ok := inc.BlockByName(blockName); ok {
			return idx
		}
	}
	return -1
}

func (g *generator) generateBlock(irb *Block, b *ast.Block) error {
	glog.V(2).Infof("lowering block %s (sequential=%v)", b.Name, b.IsSequential)
	syms := b.Symbols.All()

	var clockSym *symtab.Symbol
	for _, sym := range syms {
		if sym.Type.Specifier != symtab.Clock {
			continue
		}
		ids, err := irb.AllocateInputSignals(uint32(sym.Type.Width), signalNames(sym.Name, sym.Type.Width))
		if err != nil {
			return err
		}
		sym.BaseSignalID = ids[0]
		sym.OutputBaseSignalID = ids[0]
		clockSym = sym
	}

	for _, sym := range syms {
		if sym.Type.Specifier != symtab.In {
			continue
		}
		ids, err := irb.AllocateInputSignals(uint32(sym.Type.Width), signalNames(sym.Name, sym.Type.Width))
		if err != nil {
			return err
		}
		sym.BaseSignalID = ids[0]
		sym.OutputBaseSignalID = ids[0]
	}

	for _, sym := range syms {
		if sym.Type.Specifier != symtab.Out {
			continue
		}
		ids, err := irb.AllocateOutputSignals(uint32(sym.Type.Width), signalNames(sym.Name, sym.Type.Width))
		if err != nil {
			return err
		}
		sym.OutputBaseSignalID = ids[0]
		if !b.IsSequential {
			sym.BaseSignalID = ids[0]
		}
	}

	for _, sym := range syms {
		if sym.Type.Specifier != symtab.BlockRef {
			continue
		}
		inCount, outCount := portCounts(sym.Type.RefBlock)
		ref, err := irb.AddBlockRef(g.lookupIRIndex(sym.Type.BlockName), sym.Type.BlockName, inCount, outCount)
		if err != nil {
			return err
		}
		sym.BaseSignalID = ref.Base
	}

	for _, sym := range syms {
		if sym.Type.Specifier != symtab.Wire {
			continue
		}
		ids := irb.AllocateSignals(uint32(sym.Type.Width))
		sym.BaseSignalID = ids[0]
		sym.OutputBaseSignalID = ids[0]
	}

	if b.IsSequential {
		if err := g.generateFlipFlops(irb, clockSym, syms); err != nil {
			return err
		}
	}

	gb := &blockGen{irb: irb}
	for _, stmt := range b.Stmts {
		if err := gb.lowerStmt(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (g *generator) generateFlipFlops(irb *Block, clockSym *symtab.Symbol, syms []*symtab.Symbol) error {
	effectiveClock := clockSym.OutputBaseSignalID
	if clockSym.Type.Edge == token.FALLING_EDGE {
		inv := irb.AllocateSignals(1)
		if err := irb.AddStatement(NOT, 1, []uint32{clockSym.OutputBaseSignalID}, []uint32{inv[0]}); err != nil {
			return err
		}
		effectiveClock = inv[0]
	}

	for _, sym := range syms {
		if sym.Type.Specifier != symtab.Out {
			continue
		}
		width := uint32(sym.Type.Width)
		d := irb.AllocateSignals(width)
		sym.BaseSignalID = d[0]
		for j := uint32(0); j < width; j++ {
			if err := irb.AddStatement(FlipFlop, 1, []uint32{effectiveClock, d[j]}, []uint32{sym.OutputBaseSignalID + j}); err != nil {
				return err
			}
		}
	}
	return nil
}

func portCounts(t *symtab.Table) (in, out uint32) {
	if t == nil {
		return 0, 0
	}
	for _, sym := range t.All() {
		switch sym.Type.Specifier {
		case symtab.In:
			in += uint32(sym.Type.Width)
		case symtab.Out:
			out += uint32(sym.Type.Width)
		}
	}
	return in, out
}

// portOffset finds name's offset into its block's reserved region: input
// ports occupy offsets [0, inTotal) in their own declaration order, output
// ports occupy [inTotal, inTotal+outTotal) in theirs - matching the order
// a parent block reserves the region in via AddBlockRef.
func portOffset(t *symtab.Table, name string) uint32 {
	inTotal, _ := portCounts(t)
	var inCum, outCum uint32
	for _, sym := range t.All() {
		switch sym.Type.Specifier {
		case symtab.In:
			if sym.Name == name {
				return inCum
			}
			inCum += uint32(sym.Type.Width)
		case symtab.Out:
			if sym.Name == name {
				return inTotal + outCum
			}
			outCum += uint32(sym.Type.Width)
		}
	}
	return 0
}

func signalNames(name string, width uint64) []string {
	if width == 1 {
		return []string{name}
	}
	names := make([]string, width)
	for i := range names {
		names[i] = fmt.Sprintf("%s[%d]", name, i)
	}
	return names
}
