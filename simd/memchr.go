package simd

import (
	"encoding/binary"
	"math/bits"
)

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// Example:
//
//	pos := simd.Memchr([]byte("hello world"), 'o') // 4
func Memchr(haystack []byte, needle byte) int {
	mask := splat(needle)
	idx := 0
	if hasAVX2 {
		for idx+32 <= len(haystack) {
			z0 := zeroBytes(binary.LittleEndian.Uint64(haystack[idx:]) ^ mask)
			z1 := zeroBytes(binary.LittleEndian.Uint64(haystack[idx+8:]) ^ mask)
			z2 := zeroBytes(binary.LittleEndian.Uint64(haystack[idx+16:]) ^ mask)
			z3 := zeroBytes(binary.LittleEndian.Uint64(haystack[idx+24:]) ^ mask)
			if z0|z1|z2|z3 != 0 {
				break
			}
			idx += 32
		}
	}
	for idx+8 <= len(haystack) {
		if z := zeroBytes(binary.LittleEndian.Uint64(haystack[idx:]) ^ mask); z != 0 {
			return idx + bits.TrailingZeros64(z)/8
		}
		idx += 8
	}
	for ; idx < len(haystack); idx++ {
		if haystack[idx] == needle {
			return idx
		}
	}
	return -1
}

// Memchr2 returns the index of the first instance of either needle, or -1.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	m1, m2 := splat(needle1), splat(needle2)
	idx := 0
	for idx+8 <= len(haystack) {
		w := binary.LittleEndian.Uint64(haystack[idx:])
		if z := zeroBytes(w^m1) | zeroBytes(w^m2); z != 0 {
			return idx + bits.TrailingZeros64(z)/8
		}
		idx += 8
	}
	for ; idx < len(haystack); idx++ {
		if b := haystack[idx]; b == needle1 || b == needle2 {
			return idx
		}
	}
	return -1
}

// Memchr3 returns the index of the first instance of any of three needles,
// or -1.
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	m1, m2, m3 := splat(needle1), splat(needle2), splat(needle3)
	idx := 0
	for idx+8 <= len(haystack) {
		w := binary.LittleEndian.Uint64(haystack[idx:])
		if z := zeroBytes(w^m1) | zeroBytes(w^m2) | zeroBytes(w^m3); z != 0 {
			return idx + bits.TrailingZeros64(z)/8
		}
		idx += 8
	}
	for ; idx < len(haystack); idx++ {
		if b := haystack[idx]; b == needle1 || b == needle2 || b == needle3 {
			return idx
		}
	}
	return -1
}
