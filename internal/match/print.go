package match

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders an Expr back to modern-grammar source text. It is not meant
// to round-trip byte-for-byte with whatever the user typed — only to
// produce a string that reparses to a structurally equivalent tree (§8's
// parse(print(parse(E))) testable property).
func Print(e *Expr) string {
	var b strings.Builder
	printExpr(&b, e, 0)
	return b.String()
}

// precedence: xor/or (0) < and (1) < not/leaf (2)
func exprPrec(e *Expr) int {
	switch e.Kind {
	case NodeOr, NodeXor:
		return 0
	case NodeAnd:
		return 1
	default:
		return 2
	}
}

func printExpr(b *strings.Builder, e *Expr, parentPrec int) {
	if e == nil {
		return
	}
	prec := exprPrec(e)
	wrap := prec < parentPrec
	if wrap {
		b.WriteByte('(')
	}
	switch e.Kind {
	case NodeAnd:
		printExpr(b, e.L, prec)
		b.WriteString(" && ")
		printExpr(b, e.R, prec+1)
	case NodeOr:
		printExpr(b, e.L, prec)
		b.WriteString(" || ")
		printExpr(b, e.R, prec+1)
	case NodeXor:
		printExpr(b, e.L, prec)
		b.WriteString(" xor ")
		printExpr(b, e.R, prec+1)
	case NodeNot:
		b.WriteByte('!')
		printExpr(b, e.L, prec)
	case NodeLeaf:
		printLeaf(b, e.Leaf)
	}
	if wrap {
		b.WriteByte(')')
	}
}

func printLeaf(b *strings.Builder, l *Leaf) {
	if l.Negate {
		b.WriteByte('!')
	}
	b.WriteString(l.Target)
	if l.OnFrame {
		b.WriteByte('@')
	}
	if l.Predef == NotPredef && l.Index >= 0 {
		fmt.Fprintf(b, "[%d]", l.Index)
	}
	if l.Predef == NotPredef && (l.Format != 0 || l.Type != TCardinal) {
		b.WriteByte(':')
		if l.Format != 0 {
			fmt.Fprintf(b, "%d", l.Format)
		}
		b.WriteByte(typeChar(l.Type))
	}
	switch l.Qualifier {
	case QualContains:
		b.WriteByte('*')
	case QualStartsWith:
		b.WriteByte('^')
	case QualWildcard:
		b.WriteByte('%')
	case QualRegex:
		b.WriteByte('~')
	}
	if l.IgnoreCase {
		b.WriteByte('?')
	}
	switch l.Op {
	case OpEq:
		b.WriteByte('=')
	case OpGt:
		b.WriteByte('>')
	case OpGe:
		b.WriteString(">=")
	case OpLt:
		b.WriteByte('<')
	case OpLe:
		b.WriteString("<=")
	case OpExists:
		return
	}
	if l.Type == TString {
		fmt.Fprintf(b, "%q", l.StrPattern)
		return
	}
	if l.HasIntPattern {
		b.WriteString(strconv.FormatInt(l.IntPattern, 10))
	}
}

func typeChar(t ValueType) byte {
	switch t {
	case TWindow:
		return 'w'
	case TDrawable:
		return 'd'
	case TCardinal:
		return 'c'
	case TString:
		return 's'
	case TAtom:
		return 'a'
	}
	return 'c'
}
