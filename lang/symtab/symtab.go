// Package symtab implements the per-block symbol table: an ordered,
// name-keyed container populated by semantic analysis and iterated in
// declaration order by IR generation.
//
// The table is self-contained (it never imports the ast or ir packages) so
// that both can depend on it without a cycle: a Block-typed symbol's weak
// reference to the referenced block is represented as a pointer to that
// block's own Table, which is all IR generation and semantic analysis ever
// need from it (property lookups resolve against the referenced block's
// symbols, not its AST).
package symtab

import (
	"fmt"

	"github.com/dolthub/swiss"
	"github.com/hdlc/hdlc/lang/token"
)

// Specifier is the resolved kind of a symbol or declared type.
type Specifier int

const (
	_ Specifier = iota
	In
	Out
	Wire
	Clock
	BlockRef
)

func (s Specifier) String() string {
	switch s {
	case In:
		return "in"
	case Out:
		return "out"
	case Wire:
		return "wire"
	case Clock:
		return "clock"
	case BlockRef:
		return "block"
	default:
		return "unknown"
	}
}

// Type describes the resolved type of a symbol: its specifier, bit width,
// clock edge (when Specifier == Clock) and referenced block's symbol table
// (when Specifier == BlockRef).
type Type struct {
	Specifier    Specifier
	Width        uint64
	Edge         token.Token // token.RISING_EDGE or token.FALLING_EDGE, when Specifier == Clock
	BlockName    string      // name of the referenced block, when Specifier == BlockRef
	RefBlock     *Table      // the referenced block's own symbol table, when Specifier == BlockRef
}

// Symbol is a single declared name in a block.
type Symbol struct {
	Name string
	Pos  token.Pos
	Type Type

	// BaseSignalID is the writable side's first signal id; OutputBaseSignalID
	// is the readable side's. They differ only for the combinational outputs
	// of sequential blocks: Base is the flip-flop's D-input,
	// OutputBase is its Q output.
	BaseSignalID       uint32
	OutputBaseSignalID uint32
}

// ErrSymbolExists is returned by Add when name is already present.
type ErrSymbolExists struct {
	Name string
	Pos  token.Pos
}

func (e *ErrSymbolExists) Error() string {
	return fmt.Sprintf("%s: symbol %q already declared in this block", e.Pos, e.Name)
}

// Table is an ordered, append-only, name-indexed symbol container.
// Iteration follows insertion (declaration) order; lookup is O(1) via a
// swiss-table hash index mapping name to position in the order slice,
// paired with an order slice because, unlike a bare hash map, IR
// generation depends on declaration order.
type Table struct {
	order []*Symbol
	index *swiss.Map[string, int]
}

// New creates an empty symbol table with initial capacity for size symbols.
func New(size int) *Table {
	if size < 1 {
		size = 1
	}
	return &Table{index: swiss.NewMap[string, int](uint32(size))}
}

// Add inserts sym, failing with *ErrSymbolExists if its name is already
// present.
func (t *Table) Add(sym *Symbol) error {
	if _, ok := t.index.Get(sym.Name); ok {
		return &ErrSymbolExists{Name: sym.Name, Pos: sym.Pos}
	}
	t.index.Put(sym.Name, len(t.order))
	t.order = append(t.order, sym)
	return nil
}

// Lookup returns the symbol named name and true, or nil and false.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	i, ok := t.index.Get(name)
	if !ok {
		return nil, false
	}
	return t.order[i], true
}

// Len returns the number of symbols in the table.
func (t *Table) Len() int { return len(t.order) }

// At returns the i'th symbol in declaration order.
func (t *Table) At(i int) *Symbol { return t.order[i] }

// All returns the symbols in declaration order. The returned slice must not
// be mutated by the caller.
func (t *Table) All() []*Symbol { return t.order }
