package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer controls pretty-printing of AST nodes, used by the `parse` and
// `analyze` CLI commands (internal/maincmd) to dump the tree.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// WithPos prints each node's source span alongside its description.
	WithPos bool

	// NodeFmt is the format string used to print each node (verb 's' or
	// 'v', width, '#' and '-' flags supported as described on Node).
	// Defaults to "%v".
	NodeFmt string

	filename string
}

// Print pretty-prints n as an indented tree, one line per node, attributing
// positions to filename when WithPos is set.
func (p *Printer) Print(n Node, filename string) error {
	pp := &printer{w: p.Output, withPos: p.WithPos, nodeFmt: p.NodeFmt, filename: filename}
	if pp.nodeFmt == "" {
		pp.nodeFmt = "%v"
	}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w        io.Writer
	withPos  bool
	nodeFmt  string
	filename string
	depth    int
	err      error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}
	p.depth++
	p.printNode(n, p.depth-1)
	return p
}

func (p *printer) printNode(n Node, indent int) {
	if p.err != nil {
		return
	}

	format := "%s"
	args := []interface{}{strings.Repeat(". ", indent)}
	if p.withPos {
		start, end := n.Span()
		sl, sc := start.LineCol()
		el, ec := end.LineCol()
		format += fmt.Sprintf("[%s:%d:%d:%d:%d] ", p.filename, sl, sc, el, ec)
	}
	format += p.nodeFmt + "\n"
	args = append(args, n)

	_, p.err = fmt.Fprintf(p.w, format, args...)
}
