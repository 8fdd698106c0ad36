// Package prefilter provides fast candidate filtering for regex search using
// extracted literal sequences.
//
// A prefilter quickly rejects positions of the haystack where no match can
// start. The automaton then only runs from the candidates it proposes.
//
// New selects the strategy from the literal set:
//   - One single-byte literal → Memchr
//   - Two or three single-byte literals → Memchr2/Memchr3
//   - One literal → Memmem
//   - Anything else → Aho-Corasick
//
// Literals of different lengths are first cut to the length of the shortest
// one, so the first occurrence to end is also the first to start.
//
// Example usage:
//
//	re, _ := syntax.Parse("(hello|world)!")
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(re)
//	pf := prefilter.New(prefixes)
//	pos := pf.Find([]byte("foo hello! bar world! baz"), 0)
//	// pos == 4 (position of "hello!")
package prefilter

import (
	"github.com/Dophin2009/regexp2/literal"
	"github.com/Dophin2009/regexp2/simd"
)

// Prefilter finds candidate match positions before running the full
// automaton.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start, or
	// -1 if there is none. A candidate is a position where one of the
	// literals occurs; the caller verifies it. start must be in
	// [0, len(haystack)].
	Find(haystack []byte, start int) int

	// IsComplete returns true if every match of the pattern is exactly one
	// of the literals, so a candidate is a match of LiteralLen bytes.
	IsComplete() bool

	// LiteralLen returns the length of the literal when IsComplete is true
	// and all literals have the same length, and 0 otherwise.
	LiteralLen() int
}

// New returns the best prefilter for seq, or nil when seq is empty or no
// prefilter can be built.
func New(seq *literal.Seq) Prefilter {
	if seq.IsEmpty() {
		return nil
	}
	for i := 0; i < seq.Len(); i++ {
		if seq.Get(i).Len() == 0 {
			// An empty literal occurs everywhere.
			return nil
		}
	}

	seq = equalize(seq)
	complete := seq.AllComplete()
	if seq.Len() == 1 {
		lit := seq.Get(0)
		if lit.Len() == 1 {
			return newMemchrPrefilter(lit.Bytes[0], complete)
		}
		return newMemmemPrefilter(lit.Bytes, complete)
	}

	if seq.Len() <= 3 && maxLen(seq) == 1 {
		set := make([]byte, seq.Len())
		for i := range set {
			set[i] = seq.Get(i).Bytes[0]
		}
		return newByteSetPrefilter(set, complete)
	}

	pf, err := newAhoCorasickPrefilter(seq, complete)
	if err != nil {
		return nil
	}
	return pf
}

// equalize cuts every literal of seq to the length of the shortest one. A
// cut literal is a prefix of a match, not a whole match.
func equalize(seq *literal.Seq) *literal.Seq {
	n := minLen(seq)
	if n == maxLen(seq) {
		return seq
	}
	lits := make([]literal.Literal, seq.Len())
	for i := range lits {
		lits[i] = literal.NewLiteral(seq.Get(i).Bytes[:n], false)
	}
	out := literal.NewSeq(lits...)
	out.Minimize()
	return out
}

func minLen(seq *literal.Seq) int {
	n := seq.Get(0).Len()
	for i := 1; i < seq.Len(); i++ {
		n = min(n, seq.Get(i).Len())
	}
	return n
}

func maxLen(seq *literal.Seq) int {
	n := 0
	for i := 0; i < seq.Len(); i++ {
		n = max(n, seq.Get(i).Len())
	}
	return n
}

// sameLen returns the common length of all literals, or 0.
func sameLen(seq *literal.Seq) int {
	n := seq.Get(0).Len()
	for i := 1; i < seq.Len(); i++ {
		if seq.Get(i).Len() != n {
			return 0
		}
	}
	return n
}

// memchrPrefilter searches for a single byte.
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func newMemchrPrefilter(needle byte, complete bool) Prefilter {
	return &memchrPrefilter{needle: needle, complete: complete}
}

func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	if pos := simd.Memchr(haystack[start:], p.needle); pos >= 0 {
		return start + pos
	}
	return -1
}

func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

// byteSetPrefilter searches for any of two or three bytes.
type byteSetPrefilter struct {
	set      []byte
	complete bool
}

func newByteSetPrefilter(set []byte, complete bool) Prefilter {
	return &byteSetPrefilter{set: set, complete: complete}
}

func (p *byteSetPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	var pos int
	if len(p.set) == 2 {
		pos = simd.Memchr2(haystack[start:], p.set[0], p.set[1])
	} else {
		pos = simd.Memchr3(haystack[start:], p.set[0], p.set[1], p.set[2])
	}
	if pos < 0 {
		return -1
	}
	return start + pos
}

func (p *byteSetPrefilter) IsComplete() bool {
	return p.complete
}

func (p *byteSetPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

// memmemPrefilter searches for a single substring.
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	return &memmemPrefilter{needle: needle, complete: complete}
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	if pos := simd.Memmem(haystack[start:], p.needle); pos >= 0 {
		return start + pos
	}
	return -1
}

func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}
