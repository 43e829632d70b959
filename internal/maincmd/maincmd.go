package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "hdlc"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> <file>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> <file>
       %[1]s -h|--help
       %[1]s -V|--version

Compiler and all-in-one tool for the hardware description language.

The <command> can be one of:
       tokenize                  Run the lexer and print the resulting
                                  tokens.
       parse                     Run the parser and print the resulting
                                  abstract syntax tree (AST).
       analyze                   Run the parser and semantic analyzer and
                                  print the resulting AST with symbol
                                  resolution information.
       compile                   Run the full pipeline and write a backend
                                  artifact.

Valid flag options are:
       -h --help                 Show this help and exit.
       -V --version              Print version and exit.

Valid flag options for the <compile> command are:
       -t TYPE                   Override input file type (hdl, intermediate).
       -d                        Dump intermediate file (reserved).
       -i                        Stop after frontend; write intermediate file.
       -b BACKEND                Backend name (default: first registered).
       -o FILE                   Output file path.
       -B ARG[,ARG...]           Backend-specific arguments.
       -v...                     Increase verbosity (repeatable).

More information:
       https://github.com/hdlc/hdlc
`, binName)
)

// Cmd is the top-level CLI command, dispatching to one of the subcommands
// below by reflection via buildCmds. Flags
// declared with a `flag` tag are parsed by mna/mainer as simple on/off
// switches; value-taking and repeatable flags (-t/-b/-o/-B/-v) are not
// expressible that way and are instead parsed per-subcommand with the
// standard flag package (see flags.go).
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"V,version"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	if len(c.args[1:]) == 0 {
		return fmt.Errorf("%s: at least one file must be provided", cmdName)
	}

	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		// each command takes care of printing its errors, just return with an error code
		return mainer.Failure
	}
	return mainer.Success
}

// valid commands are those that take a mainer.Stdio and a slice of strings as
// input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		// must take 4 parameters (including receiver) and return 1
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}

		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}

// printCausalChain prints err followed by each cause in its errors.Unwrap
// chain, one per line, indented to show nesting.
func printCausalChain(stdio mainer.Stdio, err error) {
	indent := ""
	for e := err; e != nil; e = errors.Unwrap(e) {
		fmt.Fprintf(stdio.Stderr, "%s%s\n", indent, e)
		indent += "  "
	}
}
