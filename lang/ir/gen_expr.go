package ir

import (
	"github.com/hdlc/hdlc/lang/ast"
	"github.com/hdlc/hdlc/lang/token"
)

// blockGen carries the IR block under construction while lowering a single
// AST block's behaviour statements.
type blockGen struct {
	irb *Block
}

func (g *blockGen) lowerStmt(stmt *ast.BehaviourStmt) error {
	src := g.lowerExpr(stmt.Source)
	target := g.signalBase(stmt.Target, true)
	for j := uint32(0); j < uint32(stmt.Typ.Width); j++ {
		if err := g.irb.AddStatement(Connect, 1, []uint32{src[j]}, []uint32{target + j}); err != nil {
			return err
		}
	}
	return nil
}

// signalBase returns the signal id of id's lowest-index bit, accounting
// for property access (an offset into the referenced block's own port
// numbering) and a subscript (an offset into id's own width).
func (g *blockGen) signalBase(id *ast.BehaviourIdentifier, forWrite bool) uint32 {
	sym := id.Resolved
	base := sym.OutputBaseSignalID
	if forWrite {
		base = sym.BaseSignalID
	}

	if id.HasProperty {
		base = sym.BaseSignalID + portOffset(sym.Type.RefBlock, id.Property)
	}

	if id.Sub != nil {
		base += uint32(id.Sub.Lower)
	}
	return base
}

// lowerExpr lowers e to a slice of signal ids, one per bit, lowest bit
// first.
func (g *blockGen) lowerExpr(e ast.Expr) []uint32 {
	switch n := e.(type) {
	case *ast.ConstExpr:
		return g.lowerConst(n)
	case *ast.VariableExpr:
		return g.lowerVariable(n)
	case *ast.UnaryExpr:
		return g.lowerUnary(n)
	case *ast.BinaryExpr:
		return g.lowerBinary(n)
	default:
		panic("ir: unhandled expression type")
	}
}

func (g *blockGen) lowerConst(n *ast.ConstExpr) []uint32 {
	width := n.Type().Width
	ids := make([]uint32, width)
	for i := range ids {
		op := Const0
		if (n.Value>>uint(i))&1 == 1 {
			op = Const1
		}
		out := g.irb.AllocateSignals(1)
		g.mustAdd(op, 0, nil, out)
		ids[i] = out[0]
	}
	return ids
}

func (g *blockGen) lowerVariable(n *ast.VariableExpr) []uint32 {
	base := g.signalBase(n.Ident, false)
	ids := make([]uint32, n.Type().Width)
	for i := range ids {
		ids[i] = base + uint32(i)
	}
	return ids
}

func (g *blockGen) lowerUnary(n *ast.UnaryExpr) []uint32 {
	operand := g.lowerExpr(n.Operand)
	ids := make([]uint32, len(operand))
	for i, in := range operand {
		out := g.irb.AllocateSignals(1)
		g.mustAdd(NOT, 1, []uint32{in}, out)
		ids[i] = out[0]
	}
	return ids
}

func (g *blockGen) lowerBinary(n *ast.BinaryExpr) []uint32 {
	switch n.Op {
	case token.AMPERSAND:
		return g.lowerBitwise(n, AND)
	case token.PIPE:
		return g.lowerBitwise(n, OR)
	case token.CIRCUMFLEX:
		return g.lowerBitwise(n, XOR)
	case token.PLUS:
		return g.lowerAdd(n)
	case token.DOLLAR:
		return g.lowerConcat(n)
	default:
		panic("ir: unhandled binary operator")
	}
}

// lowerBitwise lowers AND/OR/XOR, broadcasting a width-1 operand by
// repeating its single signal id.
func (g *blockGen) lowerBitwise(n *ast.BinaryExpr, op Op) []uint32 {
	left := g.lowerExpr(n.Left)
	right := g.lowerExpr(n.Right)
	width := int(n.Type().Width)
	ids := make([]uint32, width)
	for i := 0; i < width; i++ {
		l, r := left[bitIndex(left, i)], right[bitIndex(right, i)]
		out := g.irb.AllocateSignals(1)
		g.mustAdd(op, 2, []uint32{l, r}, out)
		ids[i] = out[0]
	}
	return ids
}

func bitIndex(bits []uint32, i int) int {
	if len(bits) == 1 {
		return 0
	}
	return i
}

// lowerAdd lowers Add as a half adder for bit 0 followed by a ripple of
// full adders, carrying the carry-out into the next bit and discarding
// the final carry-out (result width equals operand width).
func (g *blockGen) lowerAdd(n *ast.BinaryExpr) []uint32 {
	left := g.lowerExpr(n.Left)
	right := g.lowerExpr(n.Right)
	width := len(left)
	ids := make([]uint32, width)

	out := g.irb.AllocateSignals(2)
	g.mustAdd(Add, 2, []uint32{left[0], right[0]}, out)
	ids[0], carry := out[0], out[1]

	for i := 1; i < width; i++ {
		out := g.irb.AllocateSignals(2)
		g.mustAdd(Add, 3, []uint32{left[i], right[i], carry}, out)
		ids[i], carry = out[0], out[1]
	}

	return ids
}

// lowerConcat lowers `left $ right`: the right operand occupies the
// low-order bits, the left operand the high-order bits, implemented as
// one Connect per bit (no dedicated concatenation op).
func (g *blockGen) lowerConcat(n *ast.BinaryExpr) []uint32 {
	left := g.lowerExpr(n.Left)
	right := g.lowerExpr(n.Right)
	ids := make([]uint32, len(left)+len(right))

	for i, src := range right {
		out := g.irb.AllocateSignals(1)
		g.mustAdd(Connect, 1, []uint32{src}, out)
		ids[i] = out[0]
	}
	for i, src := range left {
		out := g.irb.AllocateSignals(1)
		g.mustAdd(Connect, 1, []uint32{src}, out)
		ids[len(right)+i] = out[0]
	}
	return ids
}

// mustAdd adds a statement whose arity is guaranteed correct by
// construction; a failure here is an IR generator bug, not a user error.
func (g *blockGen) mustAdd(op Op, size uint16, inputs, outputs []uint32) {
	if err := g.irb.AddStatement(op, size, inputs, outputs); err != nil {
		panic(err)
	}
}
