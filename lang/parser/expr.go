package parser

import (
	"github.com/hdlc/hdlc/lang/ast"
	"github.com/hdlc/hdlc/lang/token"
)

// parseExpr parses the full expr production: a cascade of left-associative
// binary operator levels (or, xor, and, add, concat) bottoming out at unary
// negation and primaries. Each level is its own function rather than a
// single precedence-climbing loop, mirroring the grammar's own layering.
func (p *parser) parseExpr() ast.Expr { return p.parseOrExpr() }

func (p *parser) parseOrExpr() ast.Expr {
	left := p.parseXorExpr()
	for p.tok == token.PIPE {
		opPos := p.expect(token.PIPE)
		right := p.parseXorExpr()
		left = &ast.BinaryExpr{Left: left, Op: token.PIPE, OpPos: opPos, Right: right}
	}
	return left
}

func (p *parser) parseXorExpr() ast.Expr {
	left := p.parseAndExpr()
	for p.tok == token.CIRCUMFLEX {
		opPos := p.expect(token.CIRCUMFLEX)
		right := p.parseAndExpr()
		left = &ast.BinaryExpr{Left: left, Op: token.CIRCUMFLEX, OpPos: opPos, Right: right}
	}
	return left
}

func (p *parser) parseAndExpr() ast.Expr {
	left := p.parseAddExpr()
	for p.tok == token.AMPERSAND {
		opPos := p.expect(token.AMPERSAND)
		right := p.parseAddExpr()
		left = &ast.BinaryExpr{Left: left, Op: token.AMPERSAND, OpPos: opPos, Right: right}
	}
	return left
}

func (p *parser) parseAddExpr() ast.Expr {
	left := p.parseConcatExpr()
	for p.tok == token.PLUS {
		opPos := p.expect(token.PLUS)
		right := p.parseConcatExpr()
		left = &ast.BinaryExpr{Left: left, Op: token.PLUS, OpPos: opPos, Right: right}
	}
	return left
}

func (p *parser) parseConcatExpr() ast.Expr {
	left := p.parseUnary()
	for p.tok == token.DOLLAR {
		opPos := p.expect(token.DOLLAR)
		right := p.parseUnary()
		left = &ast.BinaryExpr{Left: left, Op: token.DOLLAR, OpPos: opPos, Right: right}
	}
	return left
}

func (p *parser) parseUnary() ast.Expr {
	if p.tok == token.TILDE {
		opPos := p.expect(token.TILDE)
		operand := p.parseUnary()
		return &ast.UnaryExpr{Op: token.TILDE, OpPos: opPos, Operand: operand}
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() ast.Expr {
	switch p.tok {
	case token.LPAREN:
		p.advance()
		e := p.parseExpr()
		p.expect(token.RPAREN)
		return e

	case token.NUMBER:
		c := &ast.ConstExpr{
			Pos:      p.val.Pos,
			Value:    p.val.Int,
			HasWidth: p.val.HasWidth,
			Width:    p.val.Width,
		}
		p.advance()
		return c

	case token.IDENT:
		return &ast.VariableExpr{Ident: p.parseBehaviourIdentifier()}

	default:
		p.errorExpected(p.val.Pos, "expression")
		panic(errPanicMode)
	}
}
