// Package accel provides byte-level scanning helpers used by the matcher
// driver's fixed-prefix fast path (spec §6 "literal/prefix acceleration").
//
// Grounded on the teacher's simd package: the SWAR (SIMD-within-a-register)
// zero-byte-detection technique is adapted from simd/memchr_generic_impl.go.
// The teacher additionally ships hand-written AVX2 assembly gated by a
// golang.org/x/sys/cpu feature probe; this package keeps the probe (stride
// selection benefits from knowing whether 64-bit words are cheap to shuffle)
// but not the assembly, since a derivative-based engine spends its time in
// the DFA step loop rather than in prefix scanning and a second scan
// implementation isn't worth the maintenance cost at this scope.
package accel

import (
	"encoding/binary"
	"math/bits"
	"runtime"

	"golang.org/x/sys/cpu"
)

// wideStride reports whether the CPU is assumed fast enough at 8-byte-wide
// SWAR chunks that it's worth the chunking overhead for short haystacks too.
// cpu.X86 reads as all-zero on non-x86 builds, so this only narrows the
// stride on x86 parts old enough to lack SSE2, where 64-bit ALU throughput
// tends to be emulated rather than native.
var wideStride = !isOldX86()

func isOldX86() bool {
	onX86 := runtime.GOARCH == "386" || runtime.GOARCH == "amd64"
	return onX86 && !cpu.X86.HasSSE2
}

// IndexByte returns the index of the first occurrence of c in s, or -1.
// Equivalent to bytes.IndexByte, reimplemented with the SWAR zero-byte
// detection trick so the matcher's prefix scanner doesn't round-trip through
// the stdlib's internal assembly dispatch for single-byte predicates that
// originate from a minterm rather than a literal.
func IndexByte(s []byte, c byte) int {
	n := len(s)
	if n == 0 {
		return -1
	}
	if !wideStride || n < 8 {
		return indexByteScalar(s, c)
	}

	mask := uint64(c) * 0x0101010101010101
	i := 0
	for i+8 <= n {
		chunk := binary.LittleEndian.Uint64(s[i:])
		xor := chunk ^ mask
		if hasZeroByte(xor) {
			return i + firstZeroByte(xor)
		}
		i += 8
	}
	for ; i < n; i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

// IndexAny2 returns the index of the first occurrence of either c1 or c2 in
// s, or -1. Used for the two-byte-disjunction fast path (e.g. a minterm
// boundary collapsing to exactly two bytes of interest).
func IndexAny2(s []byte, c1, c2 byte) int {
	n := len(s)
	if n == 0 {
		return -1
	}
	if !wideStride || n < 8 {
		for i := 0; i < n; i++ {
			if s[i] == c1 || s[i] == c2 {
				return i
			}
		}
		return -1
	}

	mask1 := uint64(c1) * 0x0101010101010101
	mask2 := uint64(c2) * 0x0101010101010101
	i := 0
	for i+8 <= n {
		chunk := binary.LittleEndian.Uint64(s[i:])
		xor1 := chunk ^ mask1
		xor2 := chunk ^ mask2
		z1, z2 := zeroByteMask(xor1), zeroByteMask(xor2)
		if combined := z1 | z2; combined != 0 {
			return i + bits.TrailingZeros64(combined)/8
		}
		i += 8
	}
	for ; i < n; i++ {
		if s[i] == c1 || s[i] == c2 {
			return i
		}
	}
	return -1
}

func indexByteScalar(s []byte, c byte) int {
	for i, b := range s {
		if b == c {
			return i
		}
	}
	return -1
}

const lo8 = 0x0101010101010101
const hi8 = 0x8080808080808080

func zeroByteMask(v uint64) uint64 {
	return (v - lo8) & ^v & hi8
}

func hasZeroByte(v uint64) bool {
	return zeroByteMask(v) != 0
}

func firstZeroByte(v uint64) int {
	return bits.TrailingZeros64(zeroByteMask(v)) / 8
}
