// Package lazy implements a lazy DFA: subset construction performed on
// demand during search.
//
// The eager DFA in package dfa can need exponentially many states. The lazy
// DFA only builds the states a search actually visits and keeps them in a
// bounded Cache, so memory stays fixed whatever the pattern. When the cache
// fills up it is cleared and the search continues.
//
// A DFA is immutable and safe for concurrent use; a Cache is not.
//
// Example usage:
//
//	n, _ := nfa.CompilePattern(`(a|b)*a(a|b)(a|b)(a|b)`)
//	d, _ := lazy.New(n, lazy.DefaultConfig())
//	cache := d.NewCache()
//	if d.IsMatchWithCache(cache, []byte("abbaab")) {
//	    fmt.Println("match")
//	}
package lazy

import (
	"unicode/utf8"

	"github.com/Dophin2009/regexp2/dfa"
	"github.com/Dophin2009/regexp2/nfa"
	"github.com/Dophin2009/regexp2/simd"
)

// DFA is a lazily determinized automaton over the alphabet of an NFA.
type DFA struct {
	nfa      *nfa.NFA
	alphabet *nfa.Alphabet
	config   Config

	// reverse determinizes nfa.Reverse of the same NFA. It is nil on a
	// reverse DFA itself.
	reverse *DFA
}

// New returns a lazy DFA for n. Nothing is determinized until a search runs.
func New(n *nfa.NFA, config Config) (*DFA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	rev := nfa.Reverse(n)
	return &DFA{
		nfa:      n,
		alphabet: n.Alphabet(),
		config:   config,
		reverse: &DFA{
			nfa:      rev,
			alphabet: rev.Alphabet(),
			config:   config,
		},
	}, nil
}

// NFA returns the automaton being determinized.
func (d *DFA) NFA() *nfa.NFA {
	return d.nfa
}

// Config returns the configuration the DFA was built with.
func (d *DFA) Config() Config {
	return d.config
}

// IsMatch reports whether the DFA accepts all of haystack, using a fresh
// cache.
func (d *DFA) IsMatch(haystack []byte) bool {
	return d.IsMatchWithCache(d.NewCache(), haystack)
}

// IsMatchWithCache is IsMatch with a caller-provided cache.
func (d *DFA) IsMatchWithCache(c *Cache, haystack []byte) bool {
	s := c.startState()
	if simd.IsASCII(haystack) {
		for _, b := range haystack {
			s = c.next(s, d.alphabet.ClassOf(rune(b)))
			if s == DeadState {
				return false
			}
		}
		return c.states[s].accept
	}
	for pos := 0; pos < len(haystack); {
		r, w := nfa.DecodeRune(haystack[pos:])
		s = c.next(s, d.alphabet.ClassOf(r))
		if s == DeadState {
			return false
		}
		pos += w
	}
	return c.states[s].accept
}

// Find returns the leftmost-longest match in haystack, using a fresh cache.
func (d *DFA) Find(haystack []byte) (int, int, bool) {
	return d.FindAtWithCache(d.NewCache(), haystack, 0, nil, true)
}

// FindAtWithCache returns the leftmost match starting at or after at: the
// longest one from that start when longest is set, the shortest otherwise.
// Positions cands skips are assumed not to start a match.
func (d *DFA) FindAtWithCache(c *Cache, haystack []byte, at int, cands nfa.Candidates, longest bool) (int, int, bool) {
	return d.FindAtWithStarts(c, haystack, at, cands, longest, nil)
}

// FindAtWithStarts is FindAtWithCache with a record of match starts shared
// by searches of the same haystack. starts may be nil.
//
// It searches like the eager dfa.DFA: an anchored run at the first
// candidate, then if needed one backward scan with the reverse automaton to
// locate the leftmost start, then one forward run for the end.
func (d *DFA) FindAtWithStarts(c *Cache, haystack []byte, at int, cands nfa.Candidates, longest bool, starts *dfa.Starts) (int, int, bool) {
	if at < 0 || at > len(haystack) {
		return -1, -1, false
	}
	lo := at
	if cands != nil {
		if lo = cands(haystack, at); lo < 0 {
			return -1, -1, false
		}
	}

	var start int
	if starts != nil && starts.Covers(lo) {
		start = starts.Next(lo)
	} else {
		if end := d.matchEnd(c, haystack, lo, longest); end >= 0 {
			return lo, end, true
		}
		start = d.reverse.scanReverse(c.reverse, haystack, lo, starts)
	}
	if start < 0 {
		return -1, -1, false
	}
	end := d.matchEnd(c, haystack, start, longest)
	if end < 0 {
		return -1, -1, false
	}
	return start, end, true
}

// matchEnd runs the DFA anchored at start and returns the chosen match end,
// or -1.
func (d *DFA) matchEnd(c *Cache, haystack []byte, start int, longest bool) int {
	s := c.startState()
	end := -1
	if c.states[s].accept {
		if !longest {
			return start
		}
		end = start
	}
	for pos := start; pos < len(haystack); {
		var class uint32
		if b := haystack[pos]; b < utf8.RuneSelf {
			class = d.alphabet.ClassOf(rune(b))
			pos++
		} else {
			r, w := nfa.DecodeRune(haystack[pos:])
			class = d.alphabet.ClassOf(r)
			pos += w
		}
		s = c.next(s, class)
		if s == DeadState {
			break
		}
		if c.states[s].accept {
			if !longest {
				return pos
			}
			end = pos
		}
	}
	return end
}

// scanReverse runs the reverse DFA d with its cache c from the end of
// haystack back to from, and returns the lowest accepting position or -1.
func (d *DFA) scanReverse(c *Cache, haystack []byte, from int, starts *dfa.Starts) int {
	if starts != nil {
		starts.Begin(len(haystack), from)
	}
	s := c.startState()
	leftmost := -1
	for pos := len(haystack); ; {
		if c.states[s].accept {
			leftmost = pos
			if starts != nil {
				starts.Mark(pos)
			}
		}
		if pos <= from {
			break
		}
		var class uint32
		if b := haystack[pos-1]; b < utf8.RuneSelf {
			class = d.alphabet.ClassOf(rune(b))
			pos--
		} else {
			r, w := utf8.DecodeLastRune(haystack[from:pos])
			class = d.alphabet.ClassOf(r)
			pos -= w
		}
		s = c.next(s, class)
		if s == DeadState {
			break
		}
	}
	return leftmost
}
