package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/hdlc/hdlc/lang/ast"
	"github.com/hdlc/hdlc/lang/parser"
	"github.com/mna/mainer"
)

// Parse runs the parser over each file in args and prints the resulting AST.
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(stdio, "", args...)
}

// ParseFiles parses each named file and pretty-prints its AST to
// stdio.Stdout, using nodeFmt as the Printer's node format string (empty
// defaults to "%v"). The first parse error, if any, is printed with its
// causal chain and returned; files after the failing one are still parsed
// and printed.
func ParseFiles(stdio mainer.Stdio, nodeFmt string, files ...string) error {
	printer := ast.Printer{Output: stdio.Stdout, NodeFmt: nodeFmt}

	var firstErr error
	for _, name := range files {
		src, err := os.ReadFile(name)
		if err != nil {
			printCausalChain(stdio, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		root, err := parser.ParseFile(name, src)
		if err != nil {
			printCausalChain(stdio, err)
			if firstErr == nil {
				firstErr = err
			}
		}
		if root == nil {
			continue
		}
		for _, b := range root.Blocks {
			if err := printer.Print(b, name); err != nil {
				fmt.Fprintln(stdio.Stderr, err)
				return err
			}
		}
	}
	return firstErr
}
