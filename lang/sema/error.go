// Package sema implements the semantic analyzer: symbol table construction,
// type/width checking and access validation for a parsed file. It may
// resolve Block(name) references to the symbol tables of blocks in included
// files, found through those files' already-analyzed ASTs; included files
// are not analyzed again.
package sema

import (
	"fmt"

	"github.com/hdlc/hdlc/lang/token"
)

// ErrorKind tags the kind of a semantic error.
type ErrorKind int

const (
	_ ErrorKind = iota
	DuplicateBlock
	UndeclaredIdentifier
	ClockInCombinationalBlock
	TooManyClocks
	MissingClock
	ClockTooWide
	ZeroWidth
	TargetNotWritable
	SourceNotReadable
	IncompatibleOperandTypes
	BlockAsSignal
	PropertyAccessOnSignal
	PrivateProperty
	SubscriptExceedsWidth
	SubscriptIndicesSwapped
	NoWidth
	AddSymbol
)

var kindNames = [...]string{
	DuplicateBlock:            "duplicate block",
	UndeclaredIdentifier:      "undeclared identifier",
	ClockInCombinationalBlock: "clock declared in combinational block",
	TooManyClocks:             "too many clocks",
	MissingClock:              "missing clock",
	ClockTooWide:              "clock must have width 1",
	ZeroWidth:                 "width cannot be zero",
	TargetNotWritable:         "target is not writable",
	SourceNotReadable:         "source is not readable",
	IncompatibleOperandTypes:  "incompatible operand types",
	BlockAsSignal:             "block-typed symbol used as a signal",
	PropertyAccessOnSignal:    "property access on a non-block symbol",
	PrivateProperty:           "private property",
	SubscriptExceedsWidth:     "subscript exceeds width",
	SubscriptIndicesSwapped:   "subscript indices swapped",
	NoWidth:                   "constant has no width",
	AddSymbol:                 "could not add symbol",
}

func (k ErrorKind) String() string { return kindNames[k] }

// Error is a single semantic error. Context carries the operation-specific
// detail spec'd for IncompatibleOperandTypes (e.g. "assignment", "binary");
// it is empty for every other kind. Cause wraps the underlying
// *symtab.ErrSymbolExists for AddSymbol.
type Error struct {
	Kind    ErrorKind
	Pos     token.Position
	Msg     string
	Context string
	Cause   error
}

func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s (%s): %s", e.Pos, e.Kind, e.Context, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// ErrorList collects the errors recorded while analyzing a single file.
type ErrorList []*Error

func (l *ErrorList) add(kind ErrorKind, pos token.Position, msg string) {
	*l = append(*l, &Error{Kind: kind, Pos: pos, Msg: msg})
}

func (l *ErrorList) addContext(kind ErrorKind, pos token.Position, context, msg string) {
	*l = append(*l, &Error{Kind: kind, Pos: pos, Context: context, Msg: msg})
}

func (l *ErrorList) addCause(kind ErrorKind, pos token.Position, msg string, cause error) {
	*l = append(*l, &Error{Kind: kind, Pos: pos, Msg: msg, Cause: cause})
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
	}
}

func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
