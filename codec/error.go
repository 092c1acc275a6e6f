package codec

import (
	"errors"
	"fmt"
)

// Codec errors
var (
	// ErrInvalidEncoding indicates a malformed UTF-8 byte sequence: a bad lead
	// byte, a continuation byte outside its allowed range, an overlong form or
	// an encoded surrogate.
	ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")

	// ErrTruncatedInput indicates a multi-byte sequence cut off by the end of
	// the input.
	ErrTruncatedInput = errors.New("truncated UTF-8 sequence")

	// ErrOutOfRange indicates a code point that cannot be encoded: negative,
	// a surrogate, or above MaxRune.
	ErrOutOfRange = errors.New("code point out of range")
)

// Error reports a codec failure together with the byte offset where the
// offending sequence starts. For encoding failures Offset is -1 and Rune
// holds the rejected value.
type Error struct {
	Offset int
	Rune   rune
	Err    error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("utf8: %v: %#x", e.Err, e.Rune)
	}
	return fmt.Sprintf("utf8: %v at byte offset %d", e.Err, e.Offset)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

func decodeError(off int, err error) error {
	return &Error{Offset: off, Err: err}
}

func encodeError(r rune) error {
	return &Error{Offset: -1, Rune: r, Err: ErrOutOfRange}
}
