package parser

import (
	"github.com/hdlc/hdlc/lang/ast"
	"github.com/hdlc/hdlc/lang/token"
)

func (p *parser) parseBehaviourStmt() (stmt *ast.BehaviourStmt) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			p.syncTo(token.SEMI, token.RBRACE)
			if p.tok == token.SEMI {
				p.advance()
			}
			stmt = nil
		}
	}()

	target := p.parseBehaviourIdentifier()
	eq := p.expect(token.EQ)
	src := p.parseExpr()
	semi := p.expect(token.SEMI)

	return &ast.BehaviourStmt{Target: target, Eq: eq, Source: src, Semi: semi}
}

func (p *parser) parseBehaviourIdentifier() *ast.BehaviourIdentifier {
	id := &ast.BehaviourIdentifier{NamePos: p.val.Pos, Name: p.val.Raw}
	p.expect(token.IDENT)

	if p.tok == token.DOT {
		p.advance()
		id.HasProperty = true
		id.PropertyPos = p.val.Pos
		id.Property = p.val.Raw
		p.expect(token.IDENT)
	}

	if p.tok == token.LBRACK {
		id.Sub = p.parseSubscript()
	}

	return id
}

func (p *parser) parseSubscript() *ast.Subscript {
	sub := &ast.Subscript{LBrack: p.expect(token.LBRACK)}

	sub.UpperPos = p.val.Pos
	sub.Upper = p.val.Int
	p.expect(token.NUMBER)
	sub.Lower = sub.Upper
	sub.LowerPos = sub.UpperPos

	if p.tok == token.COLON {
		sub.HasRange = true
		sub.Colon = p.expect(token.COLON)
		sub.LowerPos = p.val.Pos
		sub.Lower = p.val.Int
		p.expect(token.NUMBER)
	}

	sub.RBrack = p.expect(token.RBRACK)
	return sub
}
