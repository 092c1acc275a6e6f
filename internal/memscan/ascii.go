package memscan

import "encoding/binary"

// IsASCII reports whether every byte of s is below 0x80.
//
// On ASCII-only text the code-point index of every position equals its byte
// offset, which lets the indexer skip decoding entirely.
func IsASCII(s string) bool {
	return FirstNonASCII(s) < 0
}

// FirstNonASCII returns the index of the first byte >= 0x80, or -1 if s is
// pure ASCII.
func FirstNonASCII(s string) int {
	n := len(s)
	idx := 0
	var chunk [8]byte
	for idx+8 <= n {
		copy(chunk[:], s[idx:idx+8])
		if binary.LittleEndian.Uint64(chunk[:])&hi8 != 0 {
			break
		}
		idx += 8
	}
	for ; idx < n; idx++ {
		if s[idx] >= 0x80 {
			return idx
		}
	}
	return -1
}
