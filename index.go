package ustring

import (
	"slices"

	"github.com/coregx/ustring/codec"
)

// Len returns the number of code points in s.
func Len(s string) (int, error) {
	return codec.Count(s)
}

// span converts 1-based, possibly negative, inclusive indexes i..j into
// 0-based half-open code-point indexes. An empty span has lo >= hi.
func span(i, j, n int) (lo, hi int) {
	if i < 0 {
		i = max(n+i+1, 0)
	}
	if j < 0 {
		j = max(n+j+1, 0)
	}
	if i < 1 {
		i = 1
	}
	if j > n {
		j = n
	}
	return i - 1, j
}

// Sub returns the code points i through j of s, both inclusive. Negative
// indexes count from the end (-1 is the last code point). i below 1 is
// treated as 1 and j beyond the end as the end; an empty range yields "".
//
// Example:
//
//	s, _ := ustring.Sub("héllo", 2, 3) // "él"
func Sub(s string, i, j int) (string, error) {
	n, err := codec.Count(s)
	if err != nil {
		return "", err
	}
	lo, hi := span(i, j, n)
	if lo >= hi {
		return "", nil
	}

	c := codec.NewCursor(s)
	if _, err := c.Skip(lo); err != nil {
		return "", err
	}
	start := c.Pos()
	if _, err := c.Skip(hi - lo); err != nil {
		return "", err
	}
	return s[start:c.Pos()], nil
}

// Reverse returns s with its code points in reverse order.
func Reverse(s string) (string, error) {
	cps, err := codec.Decode(s)
	if err != nil {
		return "", err
	}
	slices.Reverse(cps)
	return Char(cps...)
}

// CodePoints returns the code points i through j of s, with the index
// rules of Sub.
func CodePoints(s string, i, j int) ([]rune, error) {
	cps, err := codec.Decode(s)
	if err != nil {
		return nil, err
	}
	lo, hi := span(i, j, len(cps))
	if lo >= hi {
		return []rune{}, nil
	}
	return cps[lo:hi], nil
}

// Char encodes the code points as text. Values outside 0..0x10FFFF and
// surrogates fail with ErrOutOfRange.
func Char(cps ...rune) (string, error) {
	buf := make([]byte, 0, len(cps))
	for _, r := range cps {
		var err error
		if buf, err = codec.AppendRune(buf, r); err != nil {
			return "", err
		}
	}
	return string(buf), nil
}
