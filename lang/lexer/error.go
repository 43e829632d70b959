package lexer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hdlc/hdlc/lang/token"
)

// ErrorKind tags the kind of a lexical error.
type ErrorKind int

const (
	_ ErrorKind = iota
	UnexpectedCharacter
	UnexpectedEndOfFile
	NumberLiteralNoWidth
	NumberLiteralWidthZero
	NumberLiteralWidthTooBig
	NumberLiteralValueTooBig
	InvalidEscape
	Read
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "unexpected character"
	case UnexpectedEndOfFile:
		return "unexpected end of file"
	case NumberLiteralNoWidth:
		return "number literal has '#' with no following width"
	case NumberLiteralWidthZero:
		return "number literal width cannot be zero"
	case NumberLiteralWidthTooBig:
		return "number literal width cannot exceed 64"
	case NumberLiteralValueTooBig:
		return "number literal value does not fit in its declared width"
	case InvalidEscape:
		return "invalid escape sequence"
	case Read:
		return "read error"
	default:
		return "lexer error"
	}
}

// Error is a single lexical error, optionally wrapping a causal error (e.g.
// an I/O failure for Read errors).
type Error struct {
	Kind  ErrorKind
	Pos   token.Position
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Pos, msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// ErrorList accumulates Errors encountered while scanning a file, so that a
// single pass can report more than one problem.
type ErrorList []*Error

// Add appends a new error to the list.
func (l *ErrorList) Add(kind ErrorKind, pos token.Position, msg string, cause error) {
	*l = append(*l, &Error{Kind: kind, Pos: pos, Msg: msg, Cause: cause})
}

// Sort orders the errors by position, stable on ties.
func (l ErrorList) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		li, lj := l[i].Pos, l[j].Pos
		if li.Filename != lj.Filename {
			return li.Filename < lj.Filename
		}
		ai, bi := li.LineCol()
		aj, bj := lj.LineCol()
		if ai != aj {
			return ai < aj
		}
		return bi < bj
	})
}

func (l ErrorList) Error() string {
	var sb strings.Builder
	for i, e := range l {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual errors so callers can use errors.Is/As over
// the whole list, matching the standard multi-error convention.
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Err returns l as an error, or nil if l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
