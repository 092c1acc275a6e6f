// Package pattern compiles patterns of the Lua-style dialect into an
// instruction list and executes them with a backtracking matcher that works
// on code points.
//
// The dialect supports literal code points, '.', escaped and bracketed
// classes, the quantifiers '*' (greedy), '+' (greedy, one or more), '-'
// (lazy) and '?', the anchors '^' and '$', captures including position
// captures '()', backreferences %1-%9 and balanced matches %bxy.
package pattern

import (
	"errors"
	"fmt"

	"github.com/coregx/ustring/class"
)

// Compilation errors. Malformed classes are reported with
// class.ErrMalformedClass.
var (
	// ErrMalformedAnchor indicates '^' anywhere but the first position or
	// '$' anywhere but the last.
	ErrMalformedAnchor = errors.New("malformed anchor")

	// ErrDanglingQuantifier indicates a quantifier with no preceding
	// single-code-point class to apply to.
	ErrDanglingQuantifier = errors.New("quantifier without preceding class")

	// ErrUnbalancedCapture indicates a ')' with no open capture, or a
	// capture still open at the end of the pattern.
	ErrUnbalancedCapture = errors.New("unbalanced capture")

	// ErrInvalidCapture indicates a backreference to a capture that is not
	// closed at that point of the pattern.
	ErrInvalidCapture = errors.New("invalid capture index")

	// ErrTooManyCaptures indicates more than MaxCaptures captures.
	ErrTooManyCaptures = errors.New("too many captures")

	// ErrMalformedBalance indicates %b without its two delimiters.
	ErrMalformedBalance = errors.New("missing arguments to %b")

	// ErrMalformedClass is class.ErrMalformedClass, re-exported so callers
	// can test every compilation error against this package.
	ErrMalformedClass = class.ErrMalformedClass
)

// CompileError wraps compilation errors with the pattern and the byte
// offset of the offending symbol.
type CompileError struct {
	Pattern string
	Offset  int
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	return fmt.Sprintf("pattern %q: %v (at offset %d)", e.Pattern, e.Err, e.Offset)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}
