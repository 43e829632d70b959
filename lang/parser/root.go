package parser

import (
	"github.com/hdlc/hdlc/lang/ast"
	"github.com/hdlc/hdlc/lang/token"
)

func (p *parser) parseRoot() *ast.Root {
	var includes []*ast.Include
	for p.tok == token.INCLUDE {
		if inc := p.parseInclude(); inc != nil {
			includes = append(includes, inc)
		}
	}

	var blocks []*ast.Block
	for p.tok == token.BLOCK || p.tok == token.SEQUENTIAL {
		if b := p.parseBlock(); b != nil {
			blocks = append(blocks, b)
		}
	}

	eof := p.val.Pos
	return ast.NewRoot(p.filename, includes, blocks, eof)
}

func (p *parser) parseInclude() (inc *ast.Include) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			p.syncTo(token.SEMI)
			if p.tok == token.SEMI {
				p.advance()
			}
			inc = nil
		}
	}()

	includePos := p.expect(token.INCLUDE)
	namePos := p.val.Pos
	name := p.val.Str
	p.expect(token.STRING)
	semi := p.expect(token.SEMI)

	return &ast.Include{
		IncludePos: includePos,
		NamePos:    namePos,
		Name:       name,
		Semi:       semi,
	}
}

func isTypeSpecifierStart(tok token.Token) bool {
	switch tok {
	case token.IN, token.OUT, token.WIRE, token.CLOCK, token.BLOCK:
		return true
	default:
		return false
	}
}

func (p *parser) parseBlock() (blk *ast.Block) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			p.syncTo(token.RBRACE)
			if p.tok == token.RBRACE {
				p.advance()
			}
			blk = nil
		}
	}()

	b := ast.NewBlock()

	if p.tok == token.SEQUENTIAL {
		b.IsSequential = true
		b.SequentialPos = p.expect(token.SEQUENTIAL)
	}
	b.BlockPos = p.expect(token.BLOCK)
	b.NamePos = p.val.Pos
	b.Name = p.val.Raw
	p.expect(token.IDENT)
	b.LBrace = p.expect(token.LBRACE)

	for isTypeSpecifierStart(p.tok) {
		if d := p.parseDeclaration(); d != nil {
			b.Decls = append(b.Decls, d)
		}
	}
	for p.tok == token.IDENT {
		if s := p.parseBehaviourStmt(); s != nil {
			b.Stmts = append(b.Stmts, s)
		}
	}

	b.RBrace = p.expect(token.RBRACE)
	return b
}
