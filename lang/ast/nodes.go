package ast

import (
	"fmt"

	"github.com/hdlc/hdlc/lang/symtab"
	"github.com/hdlc/hdlc/lang/token"
)

// Type represents a parsed `type` production: a specifier plus an optional
// bit width. Width resolution (defaulting to 1, rejecting 0) and
// Block(name) resolution happen in semantic analysis; the parser only
// records what was written.
type Type struct {
	Pos          token.Pos // position of the specifier keyword
	Specifier    symtab.Specifier
	Edge         token.Token // token.RISING_EDGE or token.FALLING_EDGE, when Specifier == symtab.Clock
	EdgePos      token.Pos
	BlockName    string // unresolved name, when Specifier == symtab.BlockRef
	BlockNamePos token.Pos
	HasWidth     bool
	Width        uint64
	WidthPos     token.Pos
}

// Declaration represents a `type name, name, ...;` production.
type Declaration struct {
	Type     *Type
	Names    []string
	NamePos  []token.Pos
	Commas   []token.Pos // len(Names)-1
	Semi     token.Pos
}

func (n *Declaration) Format(f fmt.State, verb rune) {
	format(f, verb, n, "decl "+n.Type.Specifier.String(), map[string]int{"names": len(n.Names)})
}
func (n *Declaration) Span() (start, end token.Pos) { return n.Type.Pos, n.Semi }
func (n *Declaration) Walk(_ Visitor)                {}

// Subscript represents a `[lower]` or `[upper:lower]` production. For the
// single-bit form, HasRange is false and Lower is the selected bit;
// ResolvedWidth is always filled in by semantic analysis (1 for the
// single-bit form, Upper-Lower for the range form).
type Subscript struct {
	LBrack        token.Pos
	Upper         uint64
	UpperPos      token.Pos
	HasRange      bool
	Colon         token.Pos
	Lower         uint64
	LowerPos      token.Pos
	RBrack        token.Pos
	ResolvedWidth uint64
}

// BehaviourIdentifier represents a target or source identifier reference:
// `name`, `name.prop`, or either with a trailing subscript.
type BehaviourIdentifier struct {
	Name        string
	NamePos     token.Pos
	HasProperty bool
	Property    string
	PropertyPos token.Pos
	Sub         *Subscript // nil if no subscript

	// Resolved is set by semantic analysis to the symbol this identifier
	// names (the block-local symbol for a bare name or `name.prop`'s base
	// name).
	Resolved *symtab.Symbol
}

func (n *BehaviourIdentifier) String() string {
	s := n.Name
	if n.HasProperty {
		s += "." + n.Property
	}
	if n.Sub != nil {
		if n.Sub.HasRange {
			s += fmt.Sprintf("[%d:%d]", n.Sub.Upper, n.Sub.Lower)
		} else {
			s += fmt.Sprintf("[%d]", n.Sub.Lower)
		}
	}
	return s
}

func (n *BehaviourIdentifier) Span() (start, end token.Pos) {
	end = n.NamePos
	if n.HasProperty {
		end = n.PropertyPos
	}
	if n.Sub != nil {
		end = n.Sub.RBrack
	}
	return n.NamePos, end
}

// BehaviourStmt represents a `target = source;` assignment.
type BehaviourStmt struct {
	Target *BehaviourIdentifier
	Eq     token.Pos
	Source Expr
	Semi   token.Pos

	// Typ is the cached ExpressionType of the statement as a whole,
	// populated by semantic analysis.
	Typ ExpressionType
}

func (n *BehaviourStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "assign "+n.Target.String(), nil)
}
func (n *BehaviourStmt) Span() (start, end token.Pos) { return n.Target.NamePos, n.Semi }
func (n *BehaviourStmt) Walk(v Visitor)                { Walk(v, n.Source) }
