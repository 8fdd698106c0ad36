package syntax

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Range is an inclusive range of Unicode code points.
type Range struct {
	Lo rune
	Hi rune
}

// CharClass is a set of code points described by normalized ranges and a
// negation flag.
//
// Ranges are kept sorted, non-overlapping and non-adjacent so that membership
// is a binary search. Negation is applied when a rune is tested; the
// complement is never materialized.
type CharClass struct {
	ranges  []Range
	negated bool
}

// NewCharClass returns a class over the given ranges. The input is copied
// and normalized; ranges with Lo > Hi are ignored.
func NewCharClass(ranges []Range, negated bool) CharClass {
	return CharClass{ranges: normalizeRanges(ranges), negated: negated}
}

// Contains reports whether r is a member of the class.
func (c CharClass) Contains(r rune) bool {
	return containsRune(c.ranges, r) != c.negated
}

// Negate returns the complement of the class.
func (c CharClass) Negate() CharClass {
	return CharClass{ranges: c.ranges, negated: !c.negated}
}

// IsNegated reports whether membership is inverted.
func (c CharClass) IsNegated() bool {
	return c.negated
}

// Ranges returns the normalized ranges before negation is applied.
// The returned slice must not be modified.
func (c CharClass) Ranges() []Range {
	return c.ranges
}

// IsEmpty reports whether no rune can be a member of the class.
func (c CharClass) IsEmpty() bool {
	if c.negated {
		return len(c.ranges) == 1 && c.ranges[0].Lo == 0 && c.ranges[0].Hi == utf8.MaxRune
	}
	return len(c.ranges) == 0
}

// Size returns the number of member code points.
func (c CharClass) Size() int {
	n := 0
	for _, r := range c.ranges {
		n += int(r.Hi-r.Lo) + 1
	}
	if c.negated {
		return utf8.MaxRune + 1 - n
	}
	return n
}

// IsSingle returns the only member of the class, if it has exactly one.
func (c CharClass) IsSingle() (rune, bool) {
	if c.negated || len(c.ranges) != 1 || c.ranges[0].Lo != c.ranges[0].Hi {
		return 0, false
	}
	return c.ranges[0].Lo, true
}

// Equal reports whether two classes have the same ranges and negation.
func (c CharClass) Equal(o CharClass) bool {
	return c.negated == o.negated && slices.Equal(c.ranges, o.ranges)
}

// String renders the class in bracket syntax.
func (c CharClass) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	if c.negated {
		sb.WriteByte('^')
	}
	for _, r := range c.ranges {
		writeClassRune(&sb, r.Lo)
		if r.Hi != r.Lo {
			if r.Hi > r.Lo+1 {
				sb.WriteByte('-')
			}
			writeClassRune(&sb, r.Hi)
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

func writeClassRune(sb *strings.Builder, r rune) {
	switch r {
	case '\\', ']', '[', '-', '^':
		sb.WriteByte('\\')
		sb.WriteRune(r)
	default:
		writeRune(sb, r)
	}
}

// containsRune performs a binary search over sorted disjoint ranges.
func containsRune(ranges []Range, r rune) bool {
	lo, hi := 0, len(ranges)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch {
		case r < ranges[mid].Lo:
			hi = mid
		case r > ranges[mid].Hi:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

// normalizeRanges sorts ranges and merges overlapping or adjacent ones.
func normalizeRanges(in []Range) []Range {
	out := make([]Range, 0, len(in))
	for _, r := range in {
		if r.Lo <= r.Hi {
			out = append(out, r)
		}
	}
	if len(out) < 2 {
		return out
	}
	slices.SortFunc(out, func(a, b Range) int {
		if a.Lo != b.Lo {
			return int(a.Lo - b.Lo)
		}
		return int(a.Hi - b.Hi)
	})
	merged := out[:1]
	for _, r := range out[1:] {
		last := &merged[len(merged)-1]
		if r.Lo <= last.Hi+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// complementRanges returns the ranges covering [0, utf8.MaxRune] that are
// not covered by the normalized input.
func complementRanges(ranges []Range) []Range {
	var out []Range
	next := rune(0)
	for _, r := range ranges {
		if r.Lo > next {
			out = append(out, Range{Lo: next, Hi: r.Lo - 1})
		}
		next = r.Hi + 1
	}
	if next <= utf8.MaxRune {
		out = append(out, Range{Lo: next, Hi: utf8.MaxRune})
	}
	return out
}
