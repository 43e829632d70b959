package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/hdlc/hdlc/lang/ast"
	"github.com/hdlc/hdlc/lang/parser"
	"github.com/hdlc/hdlc/lang/sema"
	"github.com/mna/mainer"
)

// Analyze runs the parser and semantic analyzer over each file in args and
// prints the resulting, symbol-annotated AST.
func (c *Cmd) Analyze(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return AnalyzeFiles(stdio, "", args...)
}

// AnalyzeFiles parses and semantically analyzes each named file
// independently (without resolving includes across files) and prints the
// resulting AST to stdio.Stdout. The first error, parse or semantic, is
// printed with its causal chain and returned.
func AnalyzeFiles(stdio mainer.Stdio, nodeFmt string, files ...string) error {
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

		root, perr := parser.ParseFile(name, src)
		if perr != nil {
			// cannot analyze an AST the parser couldn't build cleanly
			printCausalChain(stdio, perr)
			if firstErr == nil {
				firstErr = perr
			}
			continue
		}

		serr := sema.AnalyzeFile(root, nil)
		for _, b := range root.Blocks {
			if err := printer.Print(b, name); err != nil {
				fmt.Fprintln(stdio.Stderr, err)
				return err
			}
		}
		if serr != nil {
			printCausalChain(stdio, serr)
			if firstErr == nil {
				firstErr = serr
			}
		}
	}
	return firstErr
}
