package syntax

import "unicode"

// Shorthand class tables. Built once at package initialization and shared
// read-only by every compiled pattern.
var (
	digitRanges    = tableRanges(unicode.Nd)
	notDigitRanges = complementRanges(digitRanges)

	wordRanges = normalizeRanges([]Range{
		{'0', '9'},
		{'A', 'Z'},
		{'_', '_'},
		{'a', 'z'},
	})
	notWordRanges = complementRanges(wordRanges)

	spaceRanges = normalizeRanges([]Range{
		{0x09, 0x0D},
		{0x20, 0x20},
		{0xA0, 0xA0},
		{0x1680, 0x1680},
		{0x2000, 0x200A},
		{0x2028, 0x2029},
		{0x202F, 0x202F},
		{0x205F, 0x205F},
		{0x3000, 0x3000},
		{0xFEFF, 0xFEFF},
	})
	notSpaceRanges = complementRanges(spaceRanges)

	// anyCharClass is the class matched by '.': everything but '\n'.
	anyCharClass = NewCharClass([]Range{{'\n', '\n'}}, true)
)

// tableRanges flattens a unicode.RangeTable into normalized ranges.
func tableRanges(t *unicode.RangeTable) []Range {
	var out []Range
	for _, r := range t.R16 {
		out = appendStrided(out, rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	for _, r := range t.R32 {
		out = appendStrided(out, rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	return normalizeRanges(out)
}

func appendStrided(out []Range, lo, hi, stride rune) []Range {
	if stride == 1 {
		return append(out, Range{Lo: lo, Hi: hi})
	}
	for r := lo; r <= hi; r += stride {
		out = append(out, Range{Lo: r, Hi: r})
	}
	return out
}

// Shorthand returns the class for a shorthand escape letter (d, D, w, W, s, S).
func Shorthand(letter rune) (CharClass, bool) {
	switch letter {
	case 'd':
		return CharClass{ranges: digitRanges}, true
	case 'D':
		return CharClass{ranges: digitRanges, negated: true}, true
	case 'w':
		return CharClass{ranges: wordRanges}, true
	case 'W':
		return CharClass{ranges: wordRanges, negated: true}, true
	case 's':
		return CharClass{ranges: spaceRanges}, true
	case 'S':
		return CharClass{ranges: spaceRanges, negated: true}, true
	}
	return CharClass{}, false
}

// shorthandMembers returns the materialized member ranges of a shorthand for
// use inside bracket classes, where negated shorthands are unioned with other
// members and so need their precomputed complement.
func shorthandMembers(letter rune) []Range {
	switch letter {
	case 'd':
		return digitRanges
	case 'D':
		return notDigitRanges
	case 'w':
		return wordRanges
	case 'W':
		return notWordRanges
	case 's':
		return spaceRanges
	case 'S':
		return notSpaceRanges
	}
	return nil
}

// AnyChar returns the class matched by '.'.
func AnyChar() CharClass {
	return anyCharClass
}
