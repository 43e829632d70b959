package ir

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteText dumps irv as a minimal line-oriented intermediate format: one
// block header followed by its input names, output names and statements,
// one item per line. ReadText parses this format back.
func WriteText(w io.Writer, irv *IR) error {
	bw := bufio.NewWriter(w)
	for _, b := range irv.Blocks {
		fmt.Fprintf(bw, "block %s %d %d %d\n", b.Name, b.InputSignalCount, b.OutputSignalCount, b.NextSignalID)

		for _, name := range b.InputSignalNames {
			fmt.Fprintf(bw, "in %s\n", name)
		}
		for _, name := range b.OutputSignalNames {
			fmt.Fprintf(bw, "out %s\n", name)
		}
		for _, ref := range b.Blocks {
			fmt.Fprintf(bw, "nested %d %s %d %d %d\n", ref.Index, ref.Name, ref.Base, ref.InCount, ref.OutCount)
		}
		for _, stmt := range b.Statements {
			fmt.Fprintf(bw, "stmt %s %d %s %s\n", stmt.Op, stmt.Size, joinIDs(stmt.Inputs), joinIDs(stmt.Outputs))
		}
		fmt.Fprintln(bw, "end")
	}
	return bw.Flush()
}

func joinIDs(ids []uint32) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}

func splitIDs(s string) ([]uint32, error) {
	if s == "-" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]uint32, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("ir: malformed signal id %q: %w", p, err)
		}
		ids[i] = uint32(n)
	}
	return ids, nil
}

var opByName = map[string]Op{
	"Connect":  Connect,
	"Const0":   Const0,
	"Const1":   Const1,
	"AND":      AND,
	"OR":       OR,
	"XOR":      XOR,
	"NOT":      NOT,
	"MUX":      MUX,
	"Add":      Add,
	"FlipFlop": FlipFlop,
}

// ReadText parses the format written by WriteText.
func ReadText(r io.Reader) (*IR, error) {
	out := NewIR()
	sc := bufio.NewScanner(r)

	var cur *Block
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "block":
			if len(fields) != 5 {
				return nil, fmt.Errorf("ir: malformed block header %q", line)
			}
			nextID, err := strconv.ParseUint(fields[4], 10, 32)
			if err != nil {
				return nil, err
			}
			cur = NewBlock(fields[1])
			cur.NextSignalID = uint32(nextID)
			if _, err := out.AddBlock(cur); err != nil {
				return nil, err
			}

		case "in":
			cur.InputSignalNames = append(cur.InputSignalNames, fields[1])
			cur.InputSignalCount++

		case "out":
			cur.OutputSignalNames = append(cur.OutputSignalNames, fields[1])
			cur.OutputSignalCount++

		case "nested":
			if len(fields) != 6 {
				return nil, fmt.Errorf("ir: malformed nested-block record %q", line)
			}
			index, _ := strconv.Atoi(fields[1])
			base, _ := strconv.ParseUint(fields[3], 10, 32)
			in, _ := strconv.ParseUint(fields[4], 10, 32)
			out, _ := strconv.ParseUint(fields[5], 10, 32)
			cur.Blocks = append(cur.Blocks, NestedBlockRef{
				Index: index, Name: fields[2], Base: uint32(base), InCount: uint32(in), OutCount: uint32(out),
			})

		case "stmt":
			if len(fields) != 5 {
				return nil, fmt.Errorf("ir: malformed statement record %q", line)
			}
			op, ok := opByName[fields[1]]
			if !ok {
				return nil, fmt.Errorf("ir: unknown op %q", fields[1])
			}
			size, err := strconv.ParseUint(fields[2], 10, 16)
			if err != nil {
				return nil, err
			}
			inputs, err := splitIDs(fields[3])
			if err != nil {
				return nil, err
			}
			outputs, err := splitIDs(fields[4])
			if err != nil {
				return nil, err
			}
			cur.Statements = append(cur.Statements, Statement{Op: op, Size: uint16(size), Inputs: inputs, Outputs: outputs})

		case "end":
			cur = nil

		default:
			return nil, fmt.Errorf("ir: unknown record kind %q", fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
