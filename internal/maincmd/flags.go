package maincmd

import (
	"flag"
	"io"
	"strconv"
	"strings"
)

// compileFlags holds the value-taking and repeatable flags of the compile
// command: -t, -d, -i, -b, -o, -B, -v. mna/mainer's struct-tag parsing only
// demonstrated boolean on/off switches elsewhere in this codebase, so these
// are parsed separately with the standard flag package rather than guessed
// at via an unverified mainer tag convention.
type compileFlags struct {
	Type        string
	Dump        bool
	StopAfterIR bool
	Backend     string
	Output      string
	BackendArgs []string
	Verbosity   int
}

// parseCompileFlags parses name's flags out of args, returning the parsed
// flags and the remaining positional arguments (the input file(s)).
func parseCompileFlags(name string, args []string) (*compileFlags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cf := &compileFlags{}
	var backendArgs string

	fs.StringVar(&cf.Type, "t", "", "override input file type (hdl, intermediate)")
	fs.BoolVar(&cf.Dump, "d", false, "dump intermediate file")
	fs.BoolVar(&cf.StopAfterIR, "i", false, "stop after frontend; write intermediate file")
	fs.StringVar(&cf.Backend, "b", "", "backend name")
	fs.StringVar(&cf.Output, "o", "", "output file path")
	fs.StringVar(&backendArgs, "B", "", "backend-specific arguments, comma-separated")
	fs.Var((*verbosityFlag)(&cf.Verbosity), "v", "increase verbosity (repeatable)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	if backendArgs != "" {
		cf.BackendArgs = strings.Split(backendArgs, ",")
	}
	return cf, fs.Args(), nil
}

// verbosityFlag implements flag.Value as a bare switch that increments its
// target each time it is seen, so "-v -v -v" on the command line yields 3.
type verbosityFlag int

func (v *verbosityFlag) String() string {
	if v == nil {
		return "0"
	}
	return strconv.Itoa(int(*v))
}

func (v *verbosityFlag) Set(string) error {
	*v++
	return nil
}

func (v *verbosityFlag) IsBoolFlag() bool { return true }
