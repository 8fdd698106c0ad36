package dfa

import (
	"unicode/utf8"

	"github.com/Dophin2009/regexp2/nfa"
	"github.com/Dophin2009/regexp2/simd"
)

// IsMatch reports whether the DFA accepts all of haystack.
func (d *DFA) IsMatch(haystack []byte) bool {
	s := d.start
	if simd.IsASCII(haystack) {
		for _, b := range haystack {
			s = d.table[int(s)*d.stride+int(d.alphabet.ClassOf(rune(b)))]
			if s == DeadState {
				return false
			}
		}
		return d.accept[s]
	}
	for pos := 0; pos < len(haystack); {
		r, w := nfa.DecodeRune(haystack[pos:])
		s = d.Next(s, r)
		if s == DeadState {
			return false
		}
		pos += w
	}
	return d.accept[s]
}

// Find returns the leftmost-longest match in haystack.
func (d *DFA) Find(haystack []byte) (int, int, bool) {
	return d.FindAt(haystack, 0, nil, true)
}

// FindAt returns the leftmost match starting at or after at: the longest
// one from that start when longest is set, the shortest otherwise. cands, if
// non-nil, proposes start positions and every position it skips is assumed
// not to start a match.
func (d *DFA) FindAt(haystack []byte, at int, cands nfa.Candidates, longest bool) (int, int, bool) {
	return d.FindAtWithStarts(haystack, at, cands, longest, nil)
}

// FindAtWithStarts is FindAt with a record of match starts shared by
// searches of the same haystack. starts may be nil.
//
// The search first runs anchored at the first candidate, since a match
// there is the leftmost one. Otherwise the reverse DFA scans backward from
// the end of the haystack to the candidate and the leftmost position where
// it accepts is the match start. Either way the forward DFA then runs once
// from the start to find the end, so a search is linear in the haystack.
func (d *DFA) FindAtWithStarts(haystack []byte, at int, cands nfa.Candidates, longest bool, starts *Starts) (int, int, bool) {
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
		if end := d.MatchEnd(haystack, lo, longest); end >= 0 {
			return lo, end, true
		}
		start = d.reverse.scanReverse(haystack, lo, starts)
	}
	if start < 0 {
		return -1, -1, false
	}
	end := d.MatchEnd(haystack, start, longest)
	if end < 0 {
		return -1, -1, false
	}
	return start, end, true
}

// MatchEnd runs the DFA anchored at start and returns the end of the
// longest match (the shortest when longest is false), or -1.
func (d *DFA) MatchEnd(haystack []byte, start int, longest bool) int {
	s := d.start
	end := -1
	if d.accept[s] {
		if !longest {
			return start
		}
		end = start
	}
	for pos := start; pos < len(haystack); {
		if b := haystack[pos]; b < utf8.RuneSelf {
			s = d.table[int(s)*d.stride+int(d.alphabet.ClassOf(rune(b)))]
			pos++
		} else {
			r, w := nfa.DecodeRune(haystack[pos:])
			s = d.Next(s, r)
			pos += w
		}
		if s == DeadState {
			break
		}
		if d.accept[s] {
			if !longest {
				return pos
			}
			end = pos
		}
	}
	return end
}

// scanReverse runs the reverse DFA d from the end of haystack back to from
// and returns the lowest position where it accepts, or -1. Every accepting
// position is recorded in starts when it is non-nil.
func (d *DFA) scanReverse(haystack []byte, from int, starts *Starts) int {
	if starts != nil {
		starts.Begin(len(haystack), from)
	}
	s := d.start
	leftmost := -1
	for pos := len(haystack); ; {
		if d.accept[s] {
			leftmost = pos
			if starts != nil {
				starts.Mark(pos)
			}
		}
		if pos <= from {
			break
		}
		if b := haystack[pos-1]; b < utf8.RuneSelf {
			s = d.table[int(s)*d.stride+int(d.alphabet.ClassOf(rune(b)))]
			pos--
		} else {
			r, w := utf8.DecodeLastRune(haystack[from:pos])
			s = d.Next(s, r)
			pos -= w
		}
		if s == DeadState {
			break
		}
	}
	return leftmost
}
