package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hdlc/hdlc/lang/token"
)

// ErrorKind tags the kind of a syntax error.
type ErrorKind int

const (
	_ ErrorKind = iota
	UnexpectedToken
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	default:
		return "unknown parse error"
	}
}

// Error is a single syntax error, attributed to a source position.
type Error struct {
	Kind ErrorKind
	Pos  token.Position
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

// ErrorList collects the errors recorded while parsing a single file.
type ErrorList []*Error

func (l *ErrorList) Add(kind ErrorKind, pos token.Position, msg string) {
	*l = append(*l, &Error{Kind: kind, Pos: pos, Msg: msg})
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (and %d more errors)", l[0], len(l)-1)
	return sb.String()
}

// Sort orders the list by filename, then line, then column.
func (l ErrorList) Sort() {
	sort.Slice(l, func(i, j int) bool {
		a, b := l[i].Pos, l[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		al, ac := a.LineCol()
		bl, bc := b.LineCol()
		if al != bl {
			return al < bl
		}
		return ac < bc
	})
}

// Err returns l as an error, or nil if l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Unwrap allows errors.Is/As to see through the list.
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}
