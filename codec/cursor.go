package codec

import "github.com/coregx/ustring/internal/memscan"

// Cursor walks a string forward one code point at a time. The byte offset
// and the code-point index always move together; a multi-byte sequence is
// consumed whole or not at all.
//
// The zero value is a cursor over the empty string.
type Cursor struct {
	s   string
	pos int
	idx int
}

// NewCursor returns a cursor positioned at the start of s.
func NewCursor(s string) Cursor {
	return Cursor{s: s}
}

// At returns a cursor at byte offset pos which is known to be code-point
// index idx. The caller guarantees pos is on a sequence boundary.
func At(s string, pos, idx int) Cursor {
	return Cursor{s: s, pos: pos, idx: idx}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

// Index returns the number of code points consumed so far.
func (c *Cursor) Index() int { return c.idx }

// Done reports whether the cursor is at the end of the input.
func (c *Cursor) Done() bool { return c.pos >= len(c.s) }

// Peek decodes the code point at the cursor without consuming it.
func (c *Cursor) Peek() (rune, int, error) {
	return DecodeAt(c.s, c.pos)
}

// Next decodes and consumes the code point at the cursor. At the end of
// input it returns EOF and leaves the cursor in place.
func (c *Cursor) Next() (rune, int, error) {
	r, w, err := DecodeAt(c.s, c.pos)
	if err != nil || w == 0 {
		return r, w, err
	}
	c.pos += w
	c.idx++
	return r, w, nil
}

// Skip consumes up to n code points and returns how many were consumed.
func (c *Cursor) Skip(n int) (int, error) {
	for i := 0; i < n; i++ {
		if c.Done() {
			return i, nil
		}
		if _, _, err := c.Next(); err != nil {
			return i, err
		}
	}
	return n, nil
}

// Count returns the number of code points in s, validating the encoding.
func Count(s string) (int, error) {
	first := memscan.FirstNonASCII(s)
	if first < 0 {
		return len(s), nil
	}
	c := At(s, first, first)
	for !c.Done() {
		if _, _, err := c.Next(); err != nil {
			return 0, err
		}
	}
	return c.idx, nil
}

// Validate reports the first encoding error in s, if any.
func Validate(s string) error {
	_, err := Count(s)
	return err
}

// Decode returns the code points of s, decoded iteratively.
func Decode(s string) ([]rune, error) {
	out := make([]rune, 0, len(s))
	c := NewCursor(s)
	for !c.Done() {
		r, _, err := c.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Advance moves from byte offset pos (code-point index idx) forward to byte
// offset to and returns the code-point index there. Every sequence passed
// over is validated.
func Advance(s string, pos, idx, to int) (int, error) {
	if to <= pos {
		return idx, nil
	}
	if memscan.FirstNonASCII(s[pos:to]) < 0 {
		return idx + to - pos, nil
	}
	c := At(s, pos, idx)
	for c.pos < to {
		if _, _, err := c.Next(); err != nil {
			return 0, err
		}
	}
	return c.idx, nil
}
