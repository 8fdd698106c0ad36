// Package simd provides word-parallel byte scanning used by the prefilters
// and by the DFA's ASCII fast path.
//
// Every routine works on 8-byte words (SWAR: SIMD within a register). On
// CPUs with wide vector units (AVX2 on x86-64) the hot loops are unrolled to
// 32 bytes per iteration, which lets the compiler keep four independent
// words in flight.
package simd

import "golang.org/x/sys/cpu"

// CPU feature detection flags set at package initialization.
var (
	// hasAVX2 selects the 32-byte unrolled loops. cpu.X86 is zero on
	// other architectures, so they take the 8-byte loops.
	hasAVX2 = cpu.X86.HasAVX2
)

const (
	lo8 = uint64(0x0101010101010101)
	hi8 = uint64(0x8080808080808080)
)

// splat replicates b into every byte of a word.
func splat(b byte) uint64 {
	return uint64(b) * lo8
}

// zeroBytes has the high bit set in every byte of v that is zero, plus
// possibly in bytes after the first zero byte (borrows only propagate
// upward), so only the lowest set bit is exact.
func zeroBytes(v uint64) uint64 {
	return (v - lo8) & ^v & hi8
}
