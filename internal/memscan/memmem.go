package memscan

// Index returns the byte index of the first instance of needle in haystack,
// or -1 if needle is not present. An empty needle matches at 0.
//
// Candidates are found by scanning for the rarest needle byte with Memchr
// and verified by direct comparison.
func Index(haystack, needle string) int {
	n, m := len(haystack), len(needle)
	switch {
	case m == 0:
		return 0
	case m > n:
		return -1
	case m == 1:
		return Memchr(haystack, needle[0])
	}

	rare := rareByte(needle)
	b := needle[rare]
	from := rare
	for from < n {
		cand := MemchrAt(haystack, b, from)
		if cand < 0 {
			return -1
		}
		start := cand - rare
		if start+m > n {
			return -1
		}
		if haystack[start:start+m] == needle {
			return start
		}
		from = cand + 1
	}
	return -1
}

// IndexAt is Index starting at byte offset at. The returned index is
// absolute.
func IndexAt(haystack, needle string, at int) int {
	if at > len(haystack) {
		return -1
	}
	pos := Index(haystack[at:], needle)
	if pos < 0 {
		return -1
	}
	return at + pos
}
