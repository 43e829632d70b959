package sema

import (
	"fmt"

	"github.com/hdlc/hdlc/lang/ast"
	"github.com/hdlc/hdlc/lang/symtab"
	"github.com/hdlc/hdlc/lang/token"
)

func (a *analyzer) analyzeStmt(b *ast.Block, stmt *ast.BehaviourStmt) {
	targetType := a.resolveIdentifier(b, stmt.Target)
	if !targetType.Writable {
		a.errs.add(TargetNotWritable, a.pos(stmt.Target.NamePos), "\""+stmt.Target.String()+"\" is not writable")
	}

	srcType := a.analyzeExpr(b, stmt.Source)

	if targetType.Width != srcType.Width {
		start, _ := stmt.Source.Span()
		a.errs.addContext(IncompatibleOperandTypes, a.pos(start), "assignment",
			fmt.Sprintf("target width %d does not match source width %d", targetType.Width, srcType.Width))
	}

	stmt.Typ = ast.ExpressionType{Readable: targetType.Readable, Writable: targetType.Writable, Width: targetType.Width}
}

// resolveIdentifier resolves id against b's symbol table (and, for
// name.prop, the referenced block's table), attaching id.Resolved and
// filling in id.Sub.ResolvedWidth when a subscript is present.
func (a *analyzer) resolveIdentifier(b *ast.Block, id *ast.BehaviourIdentifier) ast.ExpressionType {
	sym, ok := b.Symbols.Lookup(id.Name)
	if !ok {
		a.errs.add(UndeclaredIdentifier, a.pos(id.NamePos), "undeclared identifier \""+id.Name+"\"")
		return ast.ExpressionType{}
	}
	id.Resolved = sym

	var et ast.ExpressionType
	if id.HasProperty {
		et = a.resolvePropertyAccess(id, sym)
	} else {
		et = a.resolvePlainAccess(id, sym)
	}

	if id.Sub != nil {
		et.Width = a.resolveSubscript(id.Sub, et.Width)
	}
	return et
}

func (a *analyzer) resolvePropertyAccess(id *ast.BehaviourIdentifier, sym *symtab.Symbol) ast.ExpressionType {
	if sym.Type.Specifier != symtab.BlockRef {
		a.errs.add(PropertyAccessOnSignal, a.pos(id.PropertyPos), "\""+id.Name+"\" is not a block instance")
		return ast.ExpressionType{}
	}

	prop, ok := sym.Type.RefBlock.Lookup(id.Property)
	if !ok {
		a.errs.add(UndeclaredIdentifier, a.pos(id.PropertyPos), "block \""+sym.Type.BlockName+"\" has no port \""+id.Property+"\"")
		return ast.ExpressionType{}
	}

	switch prop.Type.Specifier {
	case symtab.In:
		return ast.ExpressionType{Writable: true, Width: prop.Type.Width}
	case symtab.Out:
		return ast.ExpressionType{Readable: true, Width: prop.Type.Width}
	default:
		a.errs.add(PrivateProperty, a.pos(id.PropertyPos), "\""+id.Property+"\" is not an externally visible port")
		return ast.ExpressionType{}
	}
}

func (a *analyzer) resolvePlainAccess(id *ast.BehaviourIdentifier, sym *symtab.Symbol) ast.ExpressionType {
	switch sym.Type.Specifier {
	case symtab.In:
		return ast.ExpressionType{Readable: true, Width: sym.Type.Width}
	case symtab.Out, symtab.Wire:
		return ast.ExpressionType{Readable: true, Writable: true, Width: sym.Type.Width}
	case symtab.Clock:
		return ast.ExpressionType{Readable: true, Width: sym.Type.Width}
	case symtab.BlockRef:
		a.errs.add(BlockAsSignal, a.pos(id.NamePos), "\""+id.Name+"\" is a block instance, use \".\" to access a port")
		return ast.ExpressionType{}
	default:
		return ast.ExpressionType{}
	}
}

func (a *analyzer) resolveSubscript(sub *ast.Subscript, width uint64) uint64 {
	if sub.HasRange {
		switch {
		case sub.Upper <= sub.Lower:
			a.errs.add(SubscriptIndicesSwapped, a.pos(sub.LBrack), "subscript upper index must exceed lower index")
		case sub.Upper > width:
			a.errs.add(SubscriptExceedsWidth, a.pos(sub.LBrack), "subscript exceeds symbol width")
		}
		sub.ResolvedWidth = sub.Upper - sub.Lower
		return sub.ResolvedWidth
	}

	if sub.Lower >= width {
		a.errs.add(SubscriptExceedsWidth, a.pos(sub.LBrack), "subscript exceeds symbol width")
	}
	sub.ResolvedWidth = 1
	return 1
}

func (a *analyzer) analyzeExpr(b *ast.Block, e ast.Expr) ast.ExpressionType {
	var et ast.ExpressionType

	switch n := e.(type) {
	case *ast.ConstExpr:
		if !n.HasWidth {
			a.errs.add(NoWidth, a.pos(n.Pos), "constant has no explicit width")
			et = ast.ExpressionType{Readable: true}
		} else {
			et = ast.ExpressionType{Readable: true, Width: n.Width}
		}

	case *ast.VariableExpr:
		et = a.resolveIdentifier(b, n.Ident)
		if !et.Readable {
			a.errs.add(SourceNotReadable, a.pos(n.Ident.NamePos), "\""+n.Ident.String()+"\" is not readable")
		}

	case *ast.UnaryExpr:
		operand := a.analyzeExpr(b, n.Operand)
		et = ast.ExpressionType{Readable: true, Width: operand.Width}

	case *ast.BinaryExpr:
		et = a.analyzeBinary(b, n)

	default:
		panic(fmt.Sprintf("sema: unhandled expression type %T", e))
	}

	e.SetType(et)
	return et
}

func (a *analyzer) analyzeBinary(b *ast.Block, n *ast.BinaryExpr) ast.ExpressionType {
	left := a.analyzeExpr(b, n.Left)
	right := a.analyzeExpr(b, n.Right)

	pos := func() token.Position {
		start, _ := n.Span()
		return a.pos(start)
	}

	switch n.Op {
	case token.AMPERSAND, token.PIPE, token.CIRCUMFLEX:
		width := left.Width
		switch {
		case left.Width == right.Width:
			// widths already equal
		case left.Width == 1:
			width = right.Width
		case right.Width == 1:
			width = left.Width
		default:
			a.errs.addContext(IncompatibleOperandTypes, pos(), "binary",
				fmt.Sprintf("widths %d and %d are incompatible (neither is 1)", left.Width, right.Width))
			width = max(left.Width, right.Width)
		}
		return ast.ExpressionType{Readable: true, Width: width}

	case token.PLUS:
		if left.Width != right.Width {
			a.errs.addContext(IncompatibleOperandTypes, pos(), "binary",
				fmt.Sprintf("operand widths %d and %d must match", left.Width, right.Width))
		}
		return ast.ExpressionType{Readable: true, Width: left.Width}

	case token.DOLLAR:
		return ast.ExpressionType{Readable: true, Width: left.Width + right.Width}

	default:
		panic(fmt.Sprintf("sema: unhandled binary operator %v", n.Op))
	}
}
