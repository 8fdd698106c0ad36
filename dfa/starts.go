package dfa

import "slices"

// Starts records the positions of one haystack where a match begins, as
// found by a backward scan with the reverse DFA.
//
// Successive searches of the same haystack, as in a find-all loop, share one
// Starts so that the haystack is scanned backward only once. Reset it before
// moving to another haystack. The zero value is ready to use.
type Starts struct {
	marks []bool

	// from is the lowest scanned position. Positions below it are unknown.
	from  int
	valid bool
}

// Reset forgets all recorded positions.
func (s *Starts) Reset() {
	s.valid = false
}

// Covers reports whether every match start at or after pos is recorded.
func (s *Starts) Covers(pos int) bool {
	return s.valid && pos >= s.from
}

// Next returns the first recorded match start at or after pos, or -1.
// It must only be called when Covers(pos) is true.
func (s *Starts) Next(pos int) int {
	for i := pos; i < len(s.marks); i++ {
		if s.marks[i] {
			return i
		}
	}
	return -1
}

// Begin clears the record for a haystack of n bytes whose positions at or
// after from are about to be scanned.
func (s *Starts) Begin(n, from int) {
	s.marks = slices.Grow(s.marks[:0], n+1)[:n+1]
	clear(s.marks)
	s.from = from
	s.valid = true
}

// Mark records a match start at pos.
func (s *Starts) Mark(pos int) {
	s.marks[pos] = true
}
