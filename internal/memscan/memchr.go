// Package memscan provides byte-scanning primitives used by the pattern engine
// for literal prefiltering and ASCII fast paths.
//
// Every function works on strings, so callers scanning pattern subjects never
// copy them into byte slices. The implementation is selected once at package
// initialization based on CPU features: when the CPU has vector units the
// runtime's assembly IndexByte is used, otherwise a SWAR (SIMD Within A
// Register) scanner processes 8 bytes per iteration.
package memscan

import (
	"encoding/binary"
	"math/bits"
	"strings"

	"golang.org/x/sys/cpu"
)

// useRuntimeIndex reports whether strings.IndexByte is backed by vector
// instructions on this CPU.
var useRuntimeIndex = cpu.X86.HasAVX2 || cpu.X86.HasSSE42 || cpu.ARM64.HasASIMD

const (
	lo8 = uint64(0x0101010101010101)
	hi8 = uint64(0x8080808080808080)
)

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present.
func Memchr(haystack string, needle byte) int {
	if useRuntimeIndex {
		return strings.IndexByte(haystack, needle)
	}
	return memchrSWAR(haystack, needle)
}

// MemchrAt is Memchr starting at byte offset at. The returned index is
// absolute.
func MemchrAt(haystack string, needle byte, at int) int {
	if at >= len(haystack) {
		return -1
	}
	pos := Memchr(haystack[at:], needle)
	if pos < 0 {
		return -1
	}
	return at + pos
}

// memchrSWAR broadcasts needle into every byte of a uint64 and applies the
// zero-byte detection formula from Hacker's Delight to 8-byte chunks.
func memchrSWAR(haystack string, needle byte) int {
	n := len(haystack)
	if n < 8 {
		for i := 0; i < n; i++ {
			if haystack[i] == needle {
				return i
			}
		}
		return -1
	}

	mask := uint64(needle) * lo8
	var chunk [8]byte
	idx := 0
	for idx+8 <= n {
		copy(chunk[:], haystack[idx:idx+8])
		xor := binary.LittleEndian.Uint64(chunk[:]) ^ mask
		if hasZero := (xor - lo8) & ^xor & hi8; hasZero != 0 {
			return idx + bits.TrailingZeros64(hasZero)/8
		}
		idx += 8
	}
	for ; idx < n; idx++ {
		if haystack[idx] == needle {
			return idx
		}
	}
	return -1
}
