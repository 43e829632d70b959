// Package ast defines the abstract syntax tree produced by the parser for
// the hardware description language. Declarations, behaviour statements and
// expressions are annotated in place by the semantic analyzer: the parser
// builds a plain tree, lang/sema fills in the exported Typ/Symbols/
// Resolved fields afterwards, and lang/ir sets Block.IRBlockIndex when it
// generates the block. This sidesteps Go's lack of an ergonomic
// RefCell: rather than interior mutability, the tree is built once and then
// annotated in a second pass.
package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hdlc/hdlc/lang/symtab"
	"github.com/hdlc/hdlc/lang/token"
)

// Node represents any node in the AST. Every Node implements fmt.Formatter
// so it can print a description of itself for the 'v'/'s' verbs; '#' adds
// child counts.
type Node interface {
	fmt.Formatter

	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)

	// Walk enters each child node, to implement the Visitor pattern.
	Walk(v Visitor)
}

// Expr represents an expression node.
type Expr interface {
	Node
	expr()

	// Type returns the expression's cached ExpressionType, populated by
	// semantic analysis. It is the zero value before analysis runs.
	Type() ExpressionType
	// SetType stores the ExpressionType computed by semantic analysis.
	SetType(ExpressionType)
}

// ExpressionType is the cached type of an expression or identifier.
type ExpressionType struct {
	Readable bool
	Writable bool
	Width    uint64
}

// Root is the top-level AST of a single source file: an ordered list of
// includes and an ordered list of blocks, plus a name index for fast local
// lookup.
type Root struct {
	Filename   string
	Includes   []*Include
	Blocks     []*Block
	blockIndex map[string]int

	EOF token.Pos
}

// NewRoot builds a Root and its block name index.
func NewRoot(filename string, includes []*Include, blocks []*Block, eof token.Pos) *Root {
	r := &Root{Filename: filename, Includes: includes, Blocks: blocks, EOF: eof}
	r.blockIndex = make(map[string]int, len(blocks))
	for i, b := range blocks {
		r.blockIndex[b.Name] = i
	}
	return r
}

// BlockByName returns the block named name declared directly in this file,
// or nil if there is none.
func (r *Root) BlockByName(name string) *Block {
	if i, ok := r.blockIndex[name]; ok {
		return r.Blocks[i]
	}
	return nil
}

func (n *Root) Format(f fmt.State, verb rune) {
	format(f, verb, n, "root", map[string]int{"includes": len(n.Includes), "blocks": len(n.Blocks)})
}
func (n *Root) Span() (start, end token.Pos) { return token.Pos(0), n.EOF }
func (n *Root) Walk(v Visitor) {
	for _, inc := range n.Includes {
		Walk(v, inc)
	}
	for _, b := range n.Blocks {
		Walk(v, b)
	}
}

// Include represents a single `include "path";` directive.
type Include struct {
	IncludePos   token.Pos
	NamePos      token.Pos
	Name         string // as written in the source, unresolved
	Semi         token.Pos
	ResolvedPath string // filled in by the include driver
}

func (n *Include) Format(f fmt.State, verb rune) { format(f, verb, n, "include "+n.Name, nil) }
func (n *Include) Span() (start, end token.Pos)  { return n.IncludePos, n.Semi }
func (n *Include) Walk(_ Visitor)                {}

// Block represents a `block`/`sequential block` declaration.
type Block struct {
	SequentialPos token.Pos // 0 if not sequential
	IsSequential  bool
	BlockPos      token.Pos
	NamePos       token.Pos
	Name          string
	LBrace        token.Pos
	Decls         []*Declaration
	Stmts         []*BehaviourStmt
	RBrace        token.Pos

	// Symbols is populated by semantic analysis.
	Symbols *symtab.Table

	// IRBlockIndex is a weak back-reference to the generated IR block
	// (index into the owning IR's Blocks slice); -1 until the IR generator
	// has run on this block.
	IRBlockIndex int
}

// NewBlock creates a Block with no IR back-reference yet.
func NewBlock() *Block { return &Block{IRBlockIndex: -1} }

func (n *Block) Format(f fmt.State, verb rune) {
	lbl := "block " + n.Name
	if n.IsSequential {
		lbl = "sequential " + lbl
	}
	format(f, verb, n, lbl, map[string]int{"decls": len(n.Decls), "stmts": len(n.Stmts)})
}
func (n *Block) Span() (start, end token.Pos) {
	if n.IsSequential {
		return n.SequentialPos, n.RBrace
	}
	return n.BlockPos, n.RBrace
}
func (n *Block) Walk(v Visitor) {
	for _, d := range n.Decls {
		Walk(v, d)
	}
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}

func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	label = strings.ReplaceAll(label, "\r\n", "⏎")
	label = strings.ReplaceAll(label, "\n", "⏎")
	label = strings.ReplaceAll(label, "\t", "⭾")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		switch {
		case len(runes) >= w:
			runes = runes[:w]
		case minus:
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		case !plus:
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}
