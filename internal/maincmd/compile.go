package maincmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang/glog"
	"github.com/hdlc/hdlc/lang/backend"
	"github.com/hdlc/hdlc/lang/backend/logicsim"
	"github.com/hdlc/hdlc/lang/driver"
	"github.com/hdlc/hdlc/lang/ir"
	"github.com/mna/mainer"
)

// fileType names one of the two input kinds the compile command accepts.
type fileType string

const (
	typeHDL          fileType = "hdl"
	typeIntermediate fileType = "intermediate"
)

// defaultBackends holds the compiler's built-in backends, registered once at
// package init so Compile (and tests) can look them up by name.
var defaultBackends = func() *backend.Registry {
	r := backend.NewRegistry()
	r.Register(logicsim.Name, logicsim.Backend)
	return r
}()

// Compile runs the full pipeline (driver -> optional intermediate dump ->
// backend) over the single file named by args, per the compile command's
// CLI flags (-t, -d, -i, -b, -o, -B, -v).
func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	cf, rest, err := parseCompileFlags("compile", args)
	if err != nil {
		printCausalChain(stdio, err)
		return err
	}
	if len(rest) != 1 {
		err := fmt.Errorf("compile: exactly one input file required, got %d", len(rest))
		printCausalChain(stdio, err)
		return err
	}

	if cf.Verbosity > 0 {
		_ = flag.Set("v", strconv.Itoa(cf.Verbosity))
	}

	path := rest[0]
	typ, err := detectFileType(path, cf.Type)
	if err != nil {
		printCausalChain(stdio, err)
		return err
	}

	irv, err := loadIR(typ, path)
	if err != nil {
		printCausalChain(stdio, err)
		return err
	}

	if cf.Dump {
		glog.V(1).Infof("compile: -d dump requested for %s (reserved, diagnostic only)", path)
	}

	if cf.StopAfterIR {
		return writeIntermediate(irv, cf.Output, path)
	}

	be, ok := defaultBackends.Lookup(cf.Backend)
	if !ok {
		err := &backend.ErrUnknownBackend{Name: cf.Backend}
		printCausalChain(stdio, err)
		return err
	}

	var outputPath *string
	if cf.Output != "" {
		outputPath = &cf.Output
	}
	if err := be(outputPath, irv, cf.BackendArgs); err != nil {
		printCausalChain(stdio, err)
		return err
	}
	return nil
}

// detectFileType applies spec's file-type detection: an explicit -t wins;
// otherwise .hdl and .hdli extensions pick the frontend; stdin ("-") has no
// extension to go by and requires -t.
func detectFileType(path, override string) (fileType, error) {
	switch override {
	case string(typeHDL):
		return typeHDL, nil
	case string(typeIntermediate):
		return typeIntermediate, nil
	case "":
		// fall through to extension/stdin detection
	default:
		return "", fmt.Errorf("compile: unknown -t value %q", override)
	}

	if path == "-" {
		return "", fmt.Errorf("compile: reading from stdin requires -t")
	}

	switch filepath.Ext(path) {
	case ".hdl":
		return typeHDL, nil
	case ".hdli":
		return typeIntermediate, nil
	default:
		return "", fmt.Errorf("compile: cannot detect file type of %q, pass -t", path)
	}
}

func loadIR(typ fileType, path string) (*ir.IR, error) {
	switch typ {
	case typeHDL:
		d := driver.New()
		return d.Compile(path)
	case typeIntermediate:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ir.ReadText(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("compile: unhandled file type %q", typ)
	}
}

func writeIntermediate(irv *ir.IR, output, inputPath string) error {
	path := output
	if path == "" {
		path = inputPath[:len(inputPath)-len(filepath.Ext(inputPath))] + ".hdli"
	}

	f, err := os.Create(path)
	if err != nil {
		glog.Errorf("compile: create %s: %s", path, err)
		return err
	}
	defer f.Close()

	return ir.WriteText(f, irv)
}
