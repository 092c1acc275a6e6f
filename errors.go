package ustring

import (
	"errors"

	"github.com/coregx/ustring/class"
	"github.com/coregx/ustring/codec"
	"github.com/coregx/ustring/pattern"
)

// Error kinds. Test for them with errors.Is.
var (
	ErrInvalidEncoding    = codec.ErrInvalidEncoding
	ErrTruncatedInput     = codec.ErrTruncatedInput
	ErrOutOfRange         = codec.ErrOutOfRange
	ErrMalformedClass     = class.ErrMalformedClass
	ErrMalformedAnchor    = pattern.ErrMalformedAnchor
	ErrDanglingQuantifier = pattern.ErrDanglingQuantifier
	ErrUnbalancedCapture  = pattern.ErrUnbalancedCapture
	ErrInvalidCapture     = pattern.ErrInvalidCapture
	ErrTooManyCaptures    = pattern.ErrTooManyCaptures
	ErrMalformedBalance   = pattern.ErrMalformedBalance
)

// CompileError reports a malformed pattern with the offending byte offset.
type CompileError = pattern.CompileError

// EncodingError reports malformed UTF-8 with its byte offset, or a code
// point that cannot be encoded.
type EncodingError = codec.Error

// IsEncodingError reports whether err is caused by malformed text.
func IsEncodingError(err error) bool {
	var e *EncodingError
	return errors.As(err, &e)
}
