package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack. An empty needle matches at 0.
//
// The search scans for the needle's rarest byte with Memchr and verifies
// each candidate, which skips most of a typical haystack a word at a time.
//
// Example:
//
//	pos := simd.Memmem([]byte("aaaaaabaaaa"), []byte("aab")) // 4
func Memmem(haystack, needle []byte) int {
	switch {
	case len(needle) == 0:
		return 0
	case len(needle) > len(haystack):
		return -1
	case len(needle) == 1:
		return Memchr(haystack, needle[0])
	}

	rare, rareIdx := RareByte(needle)
	// The rare byte of a match lies in [rareIdx, last].
	last := len(haystack) - len(needle) + rareIdx
	for from := rareIdx; from <= last; {
		i := Memchr(haystack[from:last+1], rare)
		if i < 0 {
			return -1
		}
		start := from + i - rareIdx
		if bytes.Equal(haystack[start:start+len(needle)], needle) {
			return start
		}
		from += i + 1
	}
	return -1
}

// RareByte returns the byte of needle least likely to occur in text, and its
// index. needle must not be empty.
func RareByte(needle []byte) (byte, int) {
	best, bestIdx := needle[0], 0
	for i := 1; i < len(needle); i++ {
		if ByteRank(needle[i]) < ByteRank(best) {
			best, bestIdx = needle[i], i
		}
	}
	return best, bestIdx
}

// ByteRank estimates how common b is in text and source code. Lower is
// rarer.
func ByteRank(b byte) byte {
	switch {
	case b == ' ':
		return 255
	case b == 'e' || b == 't' || b == 'a' || b == 'o' || b == 'i' || b == 'n':
		return 220
	case b == 's' || b == 'r' || b == 'h' || b == 'l' || b == 'd':
		return 190
	case b >= 'a' && b <= 'z':
		if b == 'q' || b == 'z' || b == 'x' || b == 'j' {
			return 20
		}
		return 140
	case b >= '0' && b <= '9':
		return 130
	case b == ',' || b == '.' || b == '\n' || b == '(' || b == ')' || b == '"':
		return 150
	case b >= 'A' && b <= 'Z':
		return 80
	case b >= 0x80:
		return 10
	case b < 0x20:
		return 1
	default:
		return 50
	}
}
