package sema

import (
	"github.com/hdlc/hdlc/lang/ast"
)

// analyzer carries the state threaded through analysis of a single file.
type analyzer struct {
	root     *ast.Root
	includes []*ast.Root
	errs     ErrorList
}

// AnalyzeFile runs semantic analysis on root, resolving Block(name)
// references against root's own blocks and the direct (non-transitive)
// blocks of includes, which must already have completed analysis -
// their Symbols tables fully populated - before this call.
func AnalyzeFile(root *ast.Root, includes []*ast.Root) error {
	a := &analyzer{root: root, includes: includes}

	a.checkDuplicateBlockNames()

	// Pass 1: create every block's symbol table up front, so a Block(name)
	// reference to a block declared later in the same file still resolves
	// to a live (if not yet populated) table.
	for _, b := range root.Blocks {
		if b.Symbols == nil {
			b.Symbols = newTable(b)
		}
	}

	// Pass 2: populate each table from its declarations, then analyze its
	// statements.
	for _, b := range root.Blocks {
		a.analyzeBlock(b)
	}

	return a.errs.Err()
}

func (a *analyzer) checkDuplicateBlockNames() {
	seen := make(map[string]bool, len(a.root.Blocks))
	for _, b := range a.root.Blocks {
		if seen[b.Name] {
			a.errs.add(DuplicateBlock, a.pos(b.NamePos), "block \""+b.Name+"\" already declared in this file")
			continue
		}
		seen[b.Name] = true
	}
}

// blockLookup finds the block named name, searching root's own blocks
// first, then the direct blocks of each included root, in include order.
func (a *analyzer) blockLookup(name string) *ast.Block {
	if b := a.root.BlockByName(name); b != nil {
		return b
	}
	for _, inc := range a.includes {
		if b := inc.BlockByName(name); b != nil {
			return b
		}
	}
	return nil
}
