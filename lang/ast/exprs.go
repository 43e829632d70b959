package ast

import (
	"fmt"

	"github.com/hdlc/hdlc/lang/token"
)

// BinaryExpr represents `left OP right`. Op is one of token.AMPERSAND,
// token.PIPE, token.CIRCUMFLEX, token.PLUS or token.DOLLAR (concatenation).
type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	OpPos token.Pos
	Right Expr
	Typ   ExpressionType
}

func (n *BinaryExpr) expr() {}
func (n *BinaryExpr) Type() ExpressionType      { return n.Typ }
func (n *BinaryExpr) SetType(t ExpressionType)  { n.Typ = t }
func (n *BinaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binary "+n.Op.GoString(), nil)
}
func (n *BinaryExpr) Span() (start, end token.Pos) {
	s, _ := n.Left.Span()
	_, e := n.Right.Span()
	return s, e
}
func (n *BinaryExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}

// UnaryExpr represents `~operand`. Op is always token.TILDE.
type UnaryExpr struct {
	Op      token.Token
	OpPos   token.Pos
	Operand Expr
	Typ     ExpressionType
}

func (n *UnaryExpr) expr() {}
func (n *UnaryExpr) Type() ExpressionType     { return n.Typ }
func (n *UnaryExpr) SetType(t ExpressionType) { n.Typ = t }
func (n *UnaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unary "+n.Op.GoString(), nil)
}
func (n *UnaryExpr) Span() (start, end token.Pos) {
	_, e := n.Operand.Span()
	return n.OpPos, e
}
func (n *UnaryExpr) Walk(v Visitor) { Walk(v, n.Operand) }

// VariableExpr represents a BehaviourIdentifier used as a value.
type VariableExpr struct {
	Ident *BehaviourIdentifier
	Typ   ExpressionType
}

func (n *VariableExpr) expr() {}
func (n *VariableExpr) Type() ExpressionType     { return n.Typ }
func (n *VariableExpr) SetType(t ExpressionType) { n.Typ = t }
func (n *VariableExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "var "+n.Ident.String(), nil)
}
func (n *VariableExpr) Span() (start, end token.Pos) { return n.Ident.Span() }
func (n *VariableExpr) Walk(_ Visitor)                {}

// ConstExpr represents a numeric literal used as a value. HasWidth mirrors
// token.Value.HasWidth: a literal without an explicit `#width` carries no
// width of its own, which semantic analysis rejects - every Const must
// carry an explicit width.
type ConstExpr struct {
	Pos      token.Pos
	Value    uint64
	HasWidth bool
	Width    uint64
	Typ      ExpressionType
}

func (n *ConstExpr) expr() {}
func (n *ConstExpr) Type() ExpressionType     { return n.Typ }
func (n *ConstExpr) SetType(t ExpressionType) { n.Typ = t }
func (n *ConstExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, fmt.Sprintf("const %d", n.Value), nil)
}
func (n *ConstExpr) Span() (start, end token.Pos) { return n.Pos, n.Pos }
func (n *ConstExpr) Walk(_ Visitor)                {}
