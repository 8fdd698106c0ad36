package nfa

import (
	"fmt"

	"github.com/Dophin2009/regexp2/syntax"
)

// fragment is a partially built automaton: a start state and a dangling
// Epsilon state whose target is patched when the fragment is wired into its
// parent.
type fragment struct {
	start StateID
	end   StateID
}

// Compiler translates a syntax tree into an NFA by Thompson's construction.
// Each sub-expression receives fresh states, so no two subtrees share states.
type Compiler struct {
	builder *Builder
}

// NewCompiler creates a new compiler with an empty builder.
func NewCompiler() *Compiler {
	return &Compiler{builder: NewBuilder()}
}

// Compile builds the NFA for a parsed pattern. Construction is total over
// well-formed trees; an inconsistency in the builder is a bug and panics.
func Compile(root *syntax.Node, opts ...BuildOption) *NFA {
	return NewCompiler().Compile(root, opts...)
}

// CompilePattern parses pattern and compiles it. Only syntax errors are
// returned.
func CompilePattern(pattern string) (*NFA, error) {
	root, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return Compile(root, WithPattern(pattern)), nil
}

// Compile builds the NFA for root. A Compiler must not be reused.
func (c *Compiler) Compile(root *syntax.Node, opts ...BuildOption) *NFA {
	frag := c.compile(root)
	match := c.builder.AddMatch()
	c.patch(frag.end, match)
	c.builder.SetStart(frag.start)

	n, err := c.builder.Build(opts...)
	if err != nil {
		panic(fmt.Sprintf("nfa: invalid automaton for %s: %v", root, err))
	}
	return n
}

func (c *Compiler) patch(id, target StateID) {
	if err := c.builder.Patch(id, target); err != nil {
		panic(fmt.Sprintf("nfa: %v", err))
	}
}

// dangling allocates the open end of a fragment.
func (c *Compiler) dangling() StateID {
	return c.builder.AddEpsilon(InvalidState)
}

func (c *Compiler) compile(n *syntax.Node) fragment {
	switch n.Op {
	case syntax.OpEmpty:
		s := c.dangling()
		return fragment{start: s, end: s}

	case syntax.OpLiteral:
		end := c.dangling()
		return fragment{start: c.builder.AddRune(n.Rune, end), end: end}

	case syntax.OpAnyChar:
		end := c.dangling()
		return fragment{start: c.builder.AddClass(syntax.AnyChar(), end), end: end}

	case syntax.OpCharClass:
		end := c.dangling()
		return fragment{start: c.builder.AddClass(n.Class, end), end: end}

	case syntax.OpConcat:
		left := c.compile(n.Left)
		right := c.compile(n.Right)
		c.patch(left.end, right.start)
		return fragment{start: left.start, end: right.end}

	case syntax.OpUnion:
		left := c.compile(n.Left)
		right := c.compile(n.Right)
		end := c.dangling()
		c.patch(left.end, end)
		c.patch(right.end, end)
		return fragment{start: c.builder.AddSplit(left.start, right.start), end: end}

	case syntax.OpStar:
		sub := c.compile(n.Sub)
		end := c.dangling()
		start := c.builder.AddSplit(sub.start, end)
		c.patch(sub.end, start)
		return fragment{start: start, end: end}

	case syntax.OpPlus:
		sub := c.compile(n.Sub)
		end := c.dangling()
		loop := c.builder.AddSplit(sub.start, end)
		c.patch(sub.end, loop)
		return fragment{start: sub.start, end: end}

	case syntax.OpOptional:
		sub := c.compile(n.Sub)
		end := c.dangling()
		c.patch(sub.end, end)
		return fragment{start: c.builder.AddSplit(sub.start, end), end: end}

	case syntax.OpGroup:
		return c.compile(n.Sub)
	}
	panic(fmt.Sprintf("nfa: unknown syntax op %s", n.Op))
}
