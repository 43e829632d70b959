// Package logicsim implements the reference LogicSimulator JSON backend:
// it lays one component per IR statement on a grid and writes a JSON file
// describing each circuit's components and the wire segments that route
// every signal id to its endpoints.
package logicsim

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/hdlc/hdlc/lang/ir"
)

// Name is the backend's registration name.
const Name = "logicsim"

// Schema is the top-level document written for a compilation unit.
type Schema struct {
	Version  int       `json:"version"`
	Circuits []Circuit `json:"circuits"`
}

// Circuit is one IR block rendered to a grid of components and the wire
// segments connecting them.
type Circuit struct {
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Components  []Component  `json:"components"`
	Connections []Connection `json:"connections"`
}

// Component is a single placed element: a gate, port or constant.
type Component struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Type  string `json:"type"`
	Label string `json:"label,omitempty"`
	Value int    `json:"value,omitempty"`
}

// Connection is a wire segment between two grid points.
type Connection struct {
	X1, Y1, X2, Y2 int
}

func (c Connection) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	}{c.X1, c.Y1, c.X2, c.Y2})
}

type point struct{ x, y int }

// Backend is the backend.Backend-shaped entry point, registrable under
// Name.
func Backend(outputPath *string, irv *ir.IR, args []string) error {
	schema := Schema{Version: 1}
	for _, b := range irv.Blocks {
		schema.Circuits = append(schema.Circuits, renderBlock(b))
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		glog.Errorf("logicsim: marshal JSON: %s", err)
		return &Error{Msg: "marshal JSON", Cause: err}
	}

	path := "out.json"
	if outputPath != nil && *outputPath != "" {
		path = *outputPath
	}
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		schema.Circuits[0].Label = args[0]
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		glog.Errorf("logicsim: write %s: %s", path, err)
		return &Error{Msg: "write output file", Cause: err}
	}
	return nil
}

func renderBlock(b *ir.Block) Circuit {
	c := Circuit{Name: b.Name, Label: b.Name}
	x := 0
	pos := make(map[uint32]point)

	for _, name := range b.InputSignalNames {
		c.Components = append(c.Components, Component{X: x, Y: 0, Type: "input", Label: name})
		x++
	}
	// InputSignalNames are recorded in allocation order, matching signal ids
	// 0..InputSignalCount-1.
	for i := uint32(0); i < b.InputSignalCount; i++ {
		pos[i] = point{x: i2i(i), y: 0}
	}

	y := 1
	for _, stmt := range b.Statements {
		typ := componentType(stmt)
		if typ == "" {
			// Connect has no gate of its own: the output signal simply
			// aliases the input signal's existing position.
			if p, ok := pos[stmt.Inputs[0]]; ok {
				pos[stmt.Outputs[0]] = p
			}
			continue
		}

		comp := Component{X: x, Y: y, Type: typ}
		if stmt.Op == ir.Const1 {
			comp.Value = 1
		}
		c.Components = append(c.Components, comp)

		for _, in := range stmt.Inputs {
			if p, ok := pos[in]; ok {
				c.Connections = append(c.Connections, Connection{X1: p.x, Y1: p.y, X2: x, Y2: y})
			}
		}
		for _, out := range stmt.Outputs {
			pos[out] = point{x: x, y: y}
		}

		x++
		y++
	}

	outBase := b.InputSignalCount
	for i, name := range b.OutputSignalNames {
		sig := outBase + uint32(i)
		comp := Component{X: x, Y: 0, Type: "output", Label: name}
		c.Components = append(c.Components, comp)
		if p, ok := pos[sig]; ok {
			c.Connections = append(c.Connections, Connection{X1: p.x, Y1: p.y, X2: x, Y2: 0})
		}
		x++
	}

	return c
}

func i2i(u uint32) int { return int(u) }

func componentType(stmt ir.Statement) string {
	switch stmt.Op {
	case ir.Connect:
		return ""
	case ir.Const0, ir.Const1:
		return "const"
	case ir.AND:
		return "and"
	case ir.OR:
		return "or"
	case ir.XOR:
		return "xor"
	case ir.NOT:
		return "not"
	case ir.MUX:
		return "custom"
	case ir.Add:
		if stmt.Size == 2 {
			return "halfadder"
		}
		return "fulladder"
	case ir.FlipFlop:
		return "dflipflop"
	default:
		return "custom"
	}
}

// Error is a logicsim-specific backend failure wrapping an I/O or JSON
// cause.
type Error struct {
	Msg   string
	Cause error
}

func (e *Error) Error() string { return fmt.Sprintf("logicsim: %s: %s", e.Msg, e.Cause) }
func (e *Error) Unwrap() error { return e.Cause }
