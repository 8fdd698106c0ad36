// Package syntax parses regular expression patterns into an abstract syntax
// tree.
//
// The supported syntax is deliberately small: literals, '.', the shorthand
// classes \d \D \w \W \s \S, bracket classes with ranges and negation,
// grouping, alternation and the postfix quantifiers '*', '+' and '?'.
// There are no anchors, counted repetitions, flags or captures; '^', '$',
// '{' and '}' are ordinary characters outside bracket classes.
//
// Trees returned by Parse are immutable and may be shared between
// goroutines.
package syntax

import (
	"fmt"
	"strings"
)

// Op identifies the kind of a Node.
type Op uint8

const (
	// OpEmpty matches the empty string
	OpEmpty Op = iota

	// OpLiteral matches Node.Rune
	OpLiteral

	// OpAnyChar matches any rune except '\n'
	OpAnyChar

	// OpCharClass matches runes in Node.Class
	OpCharClass

	// OpConcat matches Left followed by Right
	OpConcat

	// OpUnion matches Left or Right
	OpUnion

	// OpStar matches Sub zero or more times
	OpStar

	// OpPlus matches Sub one or more times
	OpPlus

	// OpOptional matches Sub zero or one time
	OpOptional

	// OpGroup is a parenthesized Sub
	OpGroup
)

// String returns a human-readable representation of the Op
func (op Op) String() string {
	switch op {
	case OpEmpty:
		return "Empty"
	case OpLiteral:
		return "Literal"
	case OpAnyChar:
		return "AnyChar"
	case OpCharClass:
		return "CharClass"
	case OpConcat:
		return "Concat"
	case OpUnion:
		return "Union"
	case OpStar:
		return "Star"
	case OpPlus:
		return "Plus"
	case OpOptional:
		return "Optional"
	case OpGroup:
		return "Group"
	default:
		return fmt.Sprintf("Unknown(%d)", op)
	}
}

// Pos is the half-open byte span [Begin, End) of a node in its pattern.
type Pos struct {
	Begin int
	End   int
}

// Node is an element of the syntax tree. Which fields are meaningful
// depends on Op:
//
//	OpLiteral                     Rune
//	OpCharClass                   Class
//	OpConcat, OpUnion             Left, Right
//	OpStar, OpPlus, OpOptional    Sub
//	OpGroup                       Sub
type Node struct {
	Op    Op
	Rune  rune
	Class CharClass
	Left  *Node
	Right *Node
	Sub   *Node
	Pos   Pos
}

// Walk visits n and its descendants in pre-order. If fn returns false the
// children of that node are skipped.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n.Op {
	case OpConcat, OpUnion:
		n.Left.Walk(fn)
		n.Right.Walk(fn)
	case OpStar, OpPlus, OpOptional, OpGroup:
		n.Sub.Walk(fn)
	}
}

// Nullable reports whether n matches the empty string.
func (n *Node) Nullable() bool {
	switch n.Op {
	case OpEmpty, OpStar, OpOptional:
		return true
	case OpLiteral, OpAnyChar, OpCharClass:
		return false
	case OpConcat:
		return n.Left.Nullable() && n.Right.Nullable()
	case OpUnion:
		return n.Left.Nullable() || n.Right.Nullable()
	case OpPlus, OpGroup:
		return n.Sub.Nullable()
	}
	return false
}

// Equal reports whether two trees are structurally identical, ignoring
// positions.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Op != o.Op {
		return false
	}
	switch n.Op {
	case OpLiteral:
		return n.Rune == o.Rune
	case OpCharClass:
		return n.Class.Equal(o.Class)
	case OpConcat, OpUnion:
		return n.Left.Equal(o.Left) && n.Right.Equal(o.Right)
	case OpStar, OpPlus, OpOptional, OpGroup:
		return n.Sub.Equal(o.Sub)
	}
	return true
}

// String renders the tree back into pattern syntax. Parsing the result
// yields a tree that matches the same language.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	switch n.Op {
	case OpEmpty:
	case OpLiteral:
		if isMeta(n.Rune) {
			sb.WriteByte('\\')
		}
		writeRune(sb, n.Rune)
	case OpAnyChar:
		sb.WriteByte('.')
	case OpCharClass:
		sb.WriteString(n.Class.String())
	case OpConcat:
		for _, side := range []*Node{n.Left, n.Right} {
			if side.Op == OpUnion || side.Op == OpEmpty {
				sb.WriteByte('(')
				side.write(sb)
				sb.WriteByte(')')
				continue
			}
			side.write(sb)
		}
	case OpUnion:
		n.Left.write(sb)
		sb.WriteByte('|')
		n.Right.write(sb)
	case OpStar, OpPlus, OpOptional:
		switch n.Sub.Op {
		case OpConcat, OpUnion, OpEmpty:
			sb.WriteByte('(')
			n.Sub.write(sb)
			sb.WriteByte(')')
		default:
			n.Sub.write(sb)
		}
		sb.WriteByte("*+?"[n.Op-OpStar])
	case OpGroup:
		sb.WriteByte('(')
		n.Sub.write(sb)
		sb.WriteByte(')')
	}
}

// writeRune writes r, using the named escape for control characters that
// have one.
func writeRune(sb *strings.Builder, r rune) {
	switch r {
	case '\n':
		sb.WriteString(`\n`)
	case '\t':
		sb.WriteString(`\t`)
	case '\r':
		sb.WriteString(`\r`)
	case '\f':
		sb.WriteString(`\f`)
	case '\v':
		sb.WriteString(`\v`)
	default:
		sb.WriteRune(r)
	}
}

// isMeta reports whether r must be escaped to be a literal outside a class.
func isMeta(r rune) bool {
	return strings.ContainsRune(`\.+*?()|[]`, r)
}

// QuoteMeta returns a pattern that matches the literal text s.
func QuoteMeta(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if isMeta(r) {
			sb.WriteByte('\\')
		}
		writeRune(&sb, r)
	}
	return sb.String()
}
