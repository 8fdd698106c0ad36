package nfa

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/Dophin2009/regexp2/internal/conv"
)

// Alphabet partitions the code point space [0, utf8.MaxRune] into classes.
//
// Alphabet is an alphabet reduction technique: two runes belong to the same
// class if no guard in the NFA distinguishes them, so a DFA needs one
// transition per class instead of one per code point.
//
// Example for pattern [a-z]+:
//   - Class 0: U+0000 to '`' (before 'a')
//   - Class 1: 'a' to 'z'
//   - Class 2: '{' to U+10FFFF (after 'z')
//
// Class i covers [starts[i], starts[i+1]-1]; the last class ends at
// utf8.MaxRune.
type Alphabet struct {
	starts []rune

	// ascii caches the class of every rune below utf8.RuneSelf
	ascii [utf8.RuneSelf]uint32
}

// NewAlphabet returns a partition whose classes begin at the given
// boundaries. 0 is always a boundary; values outside the code point range
// are ignored.
func NewAlphabet(boundaries []rune) *Alphabet {
	starts := []rune{0}
	for _, r := range boundaries {
		if r > 0 && r <= utf8.MaxRune {
			starts = append(starts, r)
		}
	}
	slices.Sort(starts)
	starts = slices.Compact(starts)

	a := &Alphabet{starts: starts}
	class := uint32(0)
	for r := rune(0); r < utf8.RuneSelf; r++ {
		for int(class)+1 < len(starts) && starts[class+1] <= r {
			class++
		}
		a.ascii[r] = class
	}
	return a
}

// Len returns the number of classes.
func (a *Alphabet) Len() int {
	return len(a.starts)
}

// ClassOf returns the class containing r. Runes below utf8.RuneSelf are
// classified by table lookup, others by binary search over the class starts.
func (a *Alphabet) ClassOf(r rune) uint32 {
	if uint32(r) < utf8.RuneSelf {
		return a.ascii[r]
	}
	if r < 0 {
		return 0
	}
	// Largest i with starts[i] <= r.
	lo, hi := 0, len(a.starts)
	for hi-lo > 1 {
		mid := int(uint(lo+hi) >> 1)
		if a.starts[mid] <= r {
			lo = mid
		} else {
			hi = mid
		}
	}
	return conv.IntToUint32(lo)
}

// Representative returns a rune belonging to class. Any member can stand in
// for the whole class when computing transitions.
func (a *Alphabet) Representative(class uint32) rune {
	return a.starts[class]
}

// Range returns the inclusive bounds of class.
func (a *Alphabet) Range(class uint32) (lo, hi rune) {
	lo = a.starts[class]
	if int(class)+1 < len(a.starts) {
		return lo, a.starts[class+1] - 1
	}
	return lo, utf8.MaxRune
}

// String returns a human-readable representation of the partition
func (a *Alphabet) String() string {
	return fmt.Sprintf("Alphabet{classes: %d}", len(a.starts))
}

// BoundarySet tracks guard boundaries during NFA construction.
//
// For each guard range [lo, hi] the partition must start a class at lo and
// at hi+1, so that the range is a union of whole classes.
type BoundarySet struct {
	points map[rune]struct{}
}

// NewBoundarySet creates an empty BoundarySet with no boundaries.
func NewBoundarySet() *BoundarySet {
	return &BoundarySet{points: make(map[rune]struct{})}
}

// SetRange marks [lo, hi] as a range that must be a union of classes.
func (bs *BoundarySet) SetRange(lo, hi rune) {
	bs.points[lo] = struct{}{}
	if hi < utf8.MaxRune {
		bs.points[hi+1] = struct{}{}
	}
}

// Merge combines another BoundarySet into this one.
func (bs *BoundarySet) Merge(other *BoundarySet) {
	for r := range other.points {
		bs.points[r] = struct{}{}
	}
}

// Alphabet converts the boundaries into a partition.
func (bs *BoundarySet) Alphabet() *Alphabet {
	points := make([]rune, 0, len(bs.points))
	for r := range bs.points {
		points = append(points, r)
	}
	return NewAlphabet(points)
}
