// Package parser implements a recursive-descent parser that turns a single
// source file's tokens into an *ast.Root.
package parser

import (
	"errors"

	"github.com/hdlc/hdlc/lang/ast"
	"github.com/hdlc/hdlc/lang/lexer"
	"github.com/hdlc/hdlc/lang/token"
)

// ParseFile tokenizes and parses a single source file. The returned error,
// if non-nil, is an ErrorList merged with any lexical errors encountered
// along the way.
func ParseFile(filename string, src []byte) (*ast.Root, error) {
	var p parser
	p.filename = filename
	p.lex = lexer.New(filename, src)
	p.advance()

	root := p.parseRoot()

	var all ErrorList
	all = append(all, p.errs...)
	for _, e := range p.lex.Errors() {
		all.Add(UnexpectedToken, e.Pos, e.Msg)
	}
	all.Sort()
	return root, all.Err()
}

type parser struct {
	filename string
	lex      *lexer.Lexer
	errs     ErrorList

	tok token.Token
	val token.Value
}

var errPanicMode = errors.New("parser: panic mode")

func (p *parser) advance() {
	p.tok, p.val = p.lex.Scan()
}

func (p *parser) position(pos token.Pos) token.Position {
	return token.Position{Filename: p.filename, Pos: pos}
}

func (p *parser) error(pos token.Pos, msg string) {
	p.errs.Add(UnexpectedToken, p.position(pos), msg)
}

func (p *parser) errorExpected(pos token.Pos, what string) {
	msg := "expected " + what
	if pos == p.val.Pos {
		switch p.tok {
		case token.IDENT, token.NUMBER, token.STRING:
			msg += ", found " + p.val.Raw
		default:
			msg += ", found " + p.tok.GoString()
		}
	}
	p.error(pos, msg)
}

// expect consumes the current token if it matches tok, otherwise records an
// error and panics with errPanicMode, unwound by the nearest recover point.
func (p *parser) expect(tok token.Token) token.Pos {
	pos := p.val.Pos
	if p.tok != tok {
		p.errorExpected(pos, tok.GoString())
		panic(errPanicMode)
	}
	p.advance()
	return pos
}

// syncTo advances past tokens until it finds one of toks (which it does not
// consume) or EOF, used to resynchronize after a panic so parsing can
// continue with the next declaration or statement.
func (p *parser) syncTo(toks ...token.Token) {
	for {
		if p.tok == token.EOF {
			return
		}
		for _, tok := range toks {
			if p.tok == tok {
				return
			}
		}
		p.advance()
	}
}
