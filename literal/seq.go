// Package literal extracts literal byte strings from a syntax tree for
// prefilter optimization.
//
// If every non-empty match of a pattern must begin with one of a few known
// strings, a fast substring search can skip the parts of the input where no
// match can start (e.g., "foo" and "bar" for (foo|bar)[0-9]+).
//
// Key concepts:
//   - A Literal is a concrete byte sequence that begins matches
//   - A Seq is a set of alternative literals
package literal

import (
	"bytes"
	"slices"
	"strconv"
	"strings"
)

// Literal represents a literal byte sequence extracted from a pattern.
//
// Example:
//   - Pattern /hello/ → Literal{[]byte("hello"), true}
//   - Pattern /hello.*world/ → Literal{[]byte("hello"), false} (prefix only)
type Literal struct {
	// Bytes contains the actual literal byte sequence.
	Bytes []byte

	// Complete indicates whether this literal is an entire match. If false,
	// it is only a necessary prefix.
	Complete bool
}

// NewLiteral creates a new Literal from the given byte sequence and completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{
		Bytes:    b,
		Complete: complete,
	}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a string representation of the literal for debugging purposes.
// Format: "literal{bytes, complete=true/false}"
func (l Literal) String() string {
	return "literal{" + string(l.Bytes) + ", complete=" + strconv.FormatBool(l.Complete) + "}"
}

// Seq is a set of alternative literals. An empty Seq means that no useful
// literal set exists for the pattern.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("bar"), true),
//	)
//	fmt.Println(seq.Len()) // Output: 2
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{
		literals: lits,
	}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// AllComplete reports whether the sequence is non-empty and every literal
// is an entire match.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// Minimize removes duplicate literals and literals that are redundant for
// prefix matching: a literal L is redundant if a shorter kept literal S is a
// prefix of L, since every position where L occurs is also found by S.
// The result is sorted by length, then bytes.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("foobar"), true),
//	)
//	seq.Minimize()
//	fmt.Println(seq.Len()) // Output: 1 (only "foo" remains)
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	slices.SortStableFunc(s.literals, func(a, b Literal) int {
		if a.Len() != b.Len() {
			return a.Len() - b.Len()
		}
		return bytes.Compare(a.Bytes, b.Bytes)
	})

	kept := s.literals[:0]
	for _, current := range s.literals {
		redundant := false
		for j, k := range kept {
			if bytes.HasPrefix(current.Bytes, k.Bytes) {
				// k now stands for current too.
				if len(k.Bytes) < len(current.Bytes) || !current.Complete {
					kept[j].Complete = false
				}
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, current)
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest common prefix of all literals in the sequence.
// If the sequence is empty or has no common prefix, returns an empty slice.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("hello"), true),
//	    literal.NewLiteral([]byte("help"), true),
//	    literal.NewLiteral([]byte("hero"), true),
//	)
//	fmt.Println(string(seq.LongestCommonPrefix())) // Output: he
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}
	prefix := s.literals[0].Bytes
	for _, lit := range s.literals[1:] {
		n := 0
		for n < len(prefix) && n < len(lit.Bytes) && prefix[n] == lit.Bytes[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return bytes.Clone(prefix)
}

// Literals returns the raw bytes of every literal.
func (s *Seq) Literals() [][]byte {
	out := make([][]byte, s.Len())
	for i := range out {
		out[i] = s.literals[i].Bytes
	}
	return out
}

// String returns the literals in Go quoted form, e.g. ["foo" "bar"*] where
// * marks a complete literal.
func (s *Seq) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < s.Len(); i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Quote(string(s.literals[i].Bytes)))
		if s.literals[i].Complete {
			sb.WriteByte('*')
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
