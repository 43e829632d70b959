package parser

import (
	"github.com/hdlc/hdlc/lang/ast"
	"github.com/hdlc/hdlc/lang/symtab"
	"github.com/hdlc/hdlc/lang/token"
)

func (p *parser) parseDeclaration() (decl *ast.Declaration) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			p.syncTo(token.SEMI, token.RBRACE)
			if p.tok == token.SEMI {
				p.advance()
			}
			decl = nil
		}
	}()

	typ := p.parseType()

	var names []string
	var namePos []token.Pos
	var commas []token.Pos

	namePos = append(namePos, p.val.Pos)
	names = append(names, p.val.Raw)
	p.expect(token.IDENT)

	for p.tok == token.COMMA {
		commas = append(commas, p.expect(token.COMMA))
		namePos = append(namePos, p.val.Pos)
		names = append(names, p.val.Raw)
		p.expect(token.IDENT)
	}

	semi := p.expect(token.SEMI)

	return &ast.Declaration{
		Type:    typ,
		Names:   names,
		NamePos: namePos,
		Commas:  commas,
		Semi:    semi,
	}
}

// parseType parses a type_specifier optionally followed by a `[width]`
// array suffix.
func (p *parser) parseType() *ast.Type {
	t := &ast.Type{Pos: p.val.Pos}

	switch p.tok {
	case token.IN:
		t.Specifier = symtab.In
		p.advance()
	case token.OUT:
		t.Specifier = symtab.Out
		p.advance()
	case token.WIRE:
		t.Specifier = symtab.Wire
		p.advance()
	case token.CLOCK:
		t.Specifier = symtab.Clock
		p.advance()
		p.expect(token.LPAREN)
		t.EdgePos = p.val.Pos
		switch p.tok {
		case token.RISING_EDGE, token.FALLING_EDGE:
			t.Edge = p.tok
			p.advance()
		default:
			p.errorExpected(p.val.Pos, "one of 'rising_edge', 'falling_edge'")
			panic(errPanicMode)
		}
		p.expect(token.RPAREN)
	case token.BLOCK:
		t.Specifier = symtab.BlockRef
		p.advance()
		t.BlockNamePos = p.val.Pos
		t.BlockName = p.val.Raw
		p.expect(token.IDENT)
	default:
		p.errorExpected(p.val.Pos, "type specifier")
		panic(errPanicMode)
	}

	if p.tok == token.LBRACK {
		p.advance()
		t.HasWidth = true
		t.WidthPos = p.val.Pos
		t.Width = p.val.Int
		p.expect(token.NUMBER)
		p.expect(token.RBRACK)
	}

	return t
}
