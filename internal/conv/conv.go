// Package conv provides checked integer conversions for state identifiers.
//
// State ids are 32-bit. An automaton large enough to overflow them is a
// programming error, so the helpers panic instead of returning errors.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// Compare as uint so the bound check also works where int is 32 bits.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
