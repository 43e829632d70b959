package sema

import (
	"github.com/hdlc/hdlc/lang/ast"
	"github.com/hdlc/hdlc/lang/symtab"
	"github.com/hdlc/hdlc/lang/token"
)

func (a *analyzer) pos(p token.Pos) token.Position {
	return token.Position{Filename: a.root.Filename, Pos: p}
}

func newTable(b *ast.Block) *symtab.Table {
	n := 0
	for _, d := range b.Decls {
		n += len(d.Names)
	}
	return symtab.New(n)
}

func (a *analyzer) analyzeBlock(b *ast.Block) {
	a.buildSymbols(b)
	a.checkClocks(b)
	for _, stmt := range b.Stmts {
		a.analyzeStmt(b, stmt)
	}
}

func (a *analyzer) buildSymbols(b *ast.Block) {
	for _, decl := range b.Decls {
		typ := a.resolveType(decl.Type)
		for i, name := range decl.Names {
			sym := &symtab.Symbol{Name: name, Pos: decl.NamePos[i], Type: typ}
			if err := b.Symbols.Add(sym); err != nil {
				a.errs.addCause(AddSymbol, a.pos(decl.NamePos[i]), err.Error(), err)
			}
		}
	}
}

func (a *analyzer) resolveType(t *ast.Type) symtab.Type {
	width := t.Width
	if !t.HasWidth {
		width = 1
	} else if width == 0 {
		a.errs.add(ZeroWidth, a.pos(t.WidthPos), "declared width cannot be zero")
	}

	st := symtab.Type{Specifier: t.Specifier, Width: width}

	switch t.Specifier {
	case symtab.Clock:
		st.Edge = t.Edge
		if width != 1 {
			a.errs.add(ClockTooWide, a.pos(t.WidthPos), "clock must have width 1")
		}
	case symtab.BlockRef:
		st.BlockName = t.BlockName
		ref := a.blockLookup(t.BlockName)
		if ref == nil {
			a.errs.add(UndeclaredIdentifier, a.pos(t.BlockNamePos), "undeclared block \""+t.BlockName+"\"")
			break
		}
		if ref.Symbols == nil {
			ref.Symbols = newTable(ref)
		}
		st.RefBlock = ref.Symbols
	}

	return st
}

func (a *analyzer) checkClocks(b *ast.Block) {
	count := 0
	for _, sym := range b.Symbols.All() {
		if sym.Type.Specifier == symtab.Clock {
			count++
		}
	}

	switch {
	case b.IsSequential && count == 0:
		a.errs.add(MissingClock, a.pos(b.NamePos), "sequential block \""+b.Name+"\" declares no clock")
	case b.IsSequential && count > 1:
		a.errs.add(TooManyClocks, a.pos(b.NamePos), "sequential block \""+b.Name+"\" declares more than one clock")
	case !b.IsSequential && count > 0:
		a.errs.add(ClockInCombinationalBlock, a.pos(b.NamePos), "combinational block \""+b.Name+"\" declares a clock")
	}
}
