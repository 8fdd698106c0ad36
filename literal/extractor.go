package literal

import (
	"unicode/utf8"

	"github.com/Dophin2009/regexp2/syntax"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex patterns:
//   - MaxLiterals: prevents memory bloat from alternations like (a|b|c|d|...)
//   - MaxLiteralLen: prevents extracting very long literals
//   - MaxClassSize: prevents expanding large character classes like [a-z]
type ExtractorConfig struct {
	// MaxLiterals limits the number of literals in a result. A pattern
	// needing more has no usable prefix set. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length of each literal in bytes; longer
	// literals are truncated. Default: 64.
	MaxLiteralLen int

	// MaxClassSize limits the size of character classes to expand.
	// [abc] is expanded to "a", "b", "c"; [a-z] (26 runes) is not
	// expanded when it exceeds MaxClassSize. Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor extracts literal sequences from syntax trees.
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractPrefixes returns literals such that every non-empty match of re
// begins with at least one of them.
//
// Examples:
//
//	"hello"         → ["hello"*]
//	"(foo|bar)"     → ["bar"* "foo"*]
//	"[abc]test"     → ["atest"* "btest"* "ctest"*]
//	"hello.*world"  → ["hello"]
//	"a*b"           → ["a" "b"*]
//	".*foo"         → [] (any rune can start a match)
//	"a?"            → [] (matches the empty string)
//
// The result is minimized. It is empty when no finite set within the
// configured limits exists, or when re matches the empty string.
func (e *Extractor) ExtractPrefixes(re *syntax.Node) *Seq {
	lits, ok := e.prefixes(re)
	if !ok {
		return NewSeq()
	}
	for _, lit := range lits {
		if lit.Len() == 0 {
			return NewSeq()
		}
	}
	seq := NewSeq(lits...)
	seq.Minimize()
	return seq
}

// prefixes returns a literal set for n. Every string n matches either
// equals a complete literal or begins with an incomplete one. ok is false
// when no such set exists within the limits.
func (e *Extractor) prefixes(n *syntax.Node) ([]Literal, bool) {
	switch n.Op {
	case syntax.OpEmpty:
		return []Literal{NewLiteral(nil, true)}, true

	case syntax.OpLiteral:
		return e.runeLiterals([]syntax.Range{{Lo: n.Rune, Hi: n.Rune}})

	case syntax.OpCharClass:
		if n.Class.IsNegated() || n.Class.Size() > e.config.MaxClassSize {
			return nil, false
		}
		return e.runeLiterals(n.Class.Ranges())

	case syntax.OpAnyChar:
		return nil, false

	case syntax.OpGroup:
		return e.prefixes(n.Sub)

	case syntax.OpUnion:
		left, ok := e.prefixes(n.Left)
		if !ok {
			return nil, false
		}
		right, ok := e.prefixes(n.Right)
		if !ok || len(left)+len(right) > e.config.MaxLiterals {
			return nil, false
		}
		return append(left, right...), true

	case syntax.OpConcat:
		left, ok := e.prefixes(n.Left)
		if !ok {
			return nil, false
		}
		right, ok := e.prefixes(n.Right)
		return e.cross(left, right, ok), true

	case syntax.OpOptional:
		sub, ok := e.prefixes(n.Sub)
		if !ok {
			return nil, false
		}
		if len(sub)+1 > e.config.MaxLiterals {
			return nil, false
		}
		return append(sub, NewLiteral(nil, true)), true

	case syntax.OpStar, syntax.OpPlus:
		sub, ok := e.prefixes(n.Sub)
		if !ok {
			return nil, false
		}
		// Another repetition may follow any complete literal.
		for i := range sub {
			sub[i].Complete = false
		}
		if n.Op == syntax.OpStar {
			if len(sub)+1 > e.config.MaxLiterals {
				return nil, false
			}
			sub = append(sub, NewLiteral(nil, true))
		}
		return sub, true
	}
	return nil, false
}

// cross concatenates left and right. Incomplete left literals cannot be
// extended. When right has no usable set, or the product is too large, the
// complete left literals become incomplete instead.
func (e *Extractor) cross(left, right []Literal, rightOK bool) []Literal {
	if rightOK {
		n := 0
		for _, l := range left {
			if l.Complete {
				n += len(right)
			} else {
				n++
			}
		}
		if n > e.config.MaxLiterals {
			rightOK = false
		}
	}

	var out []Literal
	for _, l := range left {
		if !l.Complete {
			out = append(out, l)
			continue
		}
		if !rightOK {
			out = append(out, NewLiteral(l.Bytes, false))
			continue
		}
		for _, r := range right {
			b := make([]byte, 0, len(l.Bytes)+len(r.Bytes))
			b = append(append(b, l.Bytes...), r.Bytes...)
			out = append(out, e.truncate(NewLiteral(b, r.Complete)))
		}
	}
	return out
}

// runeLiterals returns one complete literal per rune in ranges. The
// replacement character is refused: invalid UTF-8 decodes to it without
// containing its encoding.
func (e *Extractor) runeLiterals(ranges []syntax.Range) ([]Literal, bool) {
	var out []Literal
	for _, rg := range ranges {
		for r := rg.Lo; r <= rg.Hi; r++ {
			if r == utf8.RuneError || !utf8.ValidRune(r) {
				return nil, false
			}
			out = append(out, e.truncate(NewLiteral(utf8.AppendRune(nil, r), true)))
		}
	}
	if len(out) > e.config.MaxLiterals {
		return nil, false
	}
	return out, true
}

func (e *Extractor) truncate(l Literal) Literal {
	if len(l.Bytes) > e.config.MaxLiteralLen {
		return NewLiteral(l.Bytes[:e.config.MaxLiteralLen], false)
	}
	return l
}
