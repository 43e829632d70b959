package driver

import (
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/hdlc/hdlc/lang/ast"
	"github.com/hdlc/hdlc/lang/ir"
	"github.com/hdlc/hdlc/lang/parser"
	"github.com/hdlc/hdlc/lang/sema"
)

type fileState int

const (
	unvisited fileState = iota
	parsedState
	compiledState
)

type cacheEntry struct {
	state fileState
	root  *ast.Root
	ir    *ir.IR
}

// Driver walks the include graph of a compilation rooted at one file,
// caching each file's pipeline state so a file included from more than
// one place is only compiled once.
type Driver struct {
	Optimize bool

	cache map[string]*cacheEntry
	order []string
}

// New creates an empty Driver.
func New() *Driver {
	return &Driver{cache: make(map[string]*cacheEntry)}
}

// Compile canonicalizes path, walks its include graph, runs the full
// pipeline on every file reached, and merges the resulting per-file IRs
// (first-compiled file first).
func (d *Driver) Compile(path string) (*ir.IR, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &Error{Kind: FileOpen, Path: path, Msg: err.Error(), Cause: err}
	}

	if err := d.compileFile(abs); err != nil {
		return nil, err
	}

	irs := make([]*ir.IR, 0, len(d.order))
	for _, p := range d.order {
		irs = append(irs, d.cache[p].ir)
	}
	return ir.Merge(irs...)
}

func (d *Driver) compileFile(path string) error {
	if e, ok := d.cache[path]; ok {
		switch e.state {
		case parsedState:
			return &Error{Kind: CyclicInclude, Path: path, Msg: "include cycle detected"}
		case compiledState:
			return nil
		}
	}

	glog.V(1).Infof("compiling %s", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return &Error{Kind: FileOpen, Path: path, Msg: err.Error(), Cause: err}
	}

	root, err := parser.ParseFile(path, src)
	if err != nil {
		return err
	}

	entry := &cacheEntry{state: parsedState, root: root}
	d.cache[path] = entry

	dir := filepath.Dir(path)
	includeRoots := make([]*ast.Root, 0, len(root.Includes))
	includeIRs := make([]*ir.IR, 0, len(root.Includes))

	for _, inc := range root.Includes {
		incPath, err := filepath.Abs(filepath.Join(dir, inc.Name))
		if err != nil {
			return &Error{Kind: FileOpen, Path: inc.Name, Msg: err.Error(), Cause: err}
		}
		inc.ResolvedPath = incPath

		if err := d.compileFile(incPath); err != nil {
			return err
		}

		incEntry := d.cache[incPath]
		includeRoots = append(includeRoots, incEntry.root)
		includeIRs = append(includeIRs, incEntry.ir)
	}

	if err := sema.AnalyzeFile(root, includeRoots); err != nil {
		return err
	}

	irv, err := ir.GenerateFile(root, includeIRs, d.Optimize)
	if err != nil {
		return err
	}

	entry.ir = irv
	entry.state = compiledState
	d.order = append(d.order, path)
	return nil
}
