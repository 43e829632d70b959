package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/hdlc/hdlc/lang/lexer"
	"github.com/hdlc/hdlc/lang/token"
	"github.com/mna/mainer"
)

// Tokenize runs the lexer over each file in args and prints the resulting
// tokens, one per line, to stdio.Stdout.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(stdio, args...)
}

// TokenizeFiles lexes each named file in turn, printing every token it
// produces before moving to the next file. The first lexical error, if any,
// is printed with its causal chain and returned; files after the failing
// one are not tokenized.
func TokenizeFiles(stdio mainer.Stdio, files ...string) error {
	for _, name := range files {
		src, err := os.ReadFile(name)
		if err != nil {
			printCausalChain(stdio, err)
			return err
		}

		l := lexer.New(name, src)
		for {
			tok, val := l.Scan()
			pos := token.Position{Filename: name, Pos: val.Pos}
			fmt.Fprintf(stdio.Stdout, "%s: %s", pos, tok)
			if lit := val.Raw; lit != "" {
				fmt.Fprintf(stdio.Stdout, " %s", lit)
			}
			fmt.Fprintln(stdio.Stdout)
			if tok == token.EOF {
				break
			}
		}

		if err := l.Errors().Err(); err != nil {
			printCausalChain(stdio, err)
			return err
		}
	}
	return nil
}
