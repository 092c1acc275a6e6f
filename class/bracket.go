package class

import (
	"errors"
	"fmt"

	"github.com/coregx/ustring/codec"
)

// ErrMalformedClass indicates a bracket class without its closing ']', a
// misplaced '^', or a dangling escape.
var ErrMalformedClass = errors.New("malformed character class")

// ParseError reports a malformed class with the byte offset of the problem
// within the pattern.
type ParseError struct {
	Offset int
	Msg    string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at offset %d: %s", ErrMalformedClass, e.Offset, e.Msg)
}

// Unwrap returns ErrMalformedClass
func (e *ParseError) Unwrap() error {
	return ErrMalformedClass
}

// item is one parsed element of a bracket body.
type item struct {
	lit     rune
	ranges  []Range
	isLit   bool
	fromEsc bool
	inRange bool
}

// ParseBracket compiles the bracket class starting at pat[off], which must
// be '['. It returns the class and the number of bytes consumed, including
// both brackets.
//
// Within the body a leading '^' negates the class and a ']' directly after
// '[' or '[^' is literal. A '-' between two unescaped literals forms an
// inclusive range; at either end of the body it is literal. The escape
// symbol introduces a named class (%a %c %d %g %l %p %s %u %w %x) or quotes
// any other code point.
func ParseBracket(pat string, off int, escape rune) (*Class, int, error) {
	p := off + 1
	negated := false
	atStart := true
	var items []item

	for {
		r, w, err := codec.DecodeAt(pat, p)
		if err != nil {
			return nil, 0, err
		}
		if w == 0 {
			return nil, 0, &ParseError{Offset: off, Msg: "missing ']'"}
		}

		switch {
		case r == escape:
			e, ew, err := codec.DecodeAt(pat, p+w)
			if err != nil {
				return nil, 0, err
			}
			if ew == 0 {
				return nil, 0, &ParseError{Offset: p, Msg: "pattern ends with escape"}
			}
			if rs, ok := named[e]; ok {
				items = append(items, item{ranges: rs})
			} else {
				items = append(items, item{lit: e, isLit: true, fromEsc: true})
			}
			p += w + ew

		case r == '^':
			if !atStart || negated {
				return nil, 0, &ParseError{Offset: p, Msg: "'^' is only valid at the start of a class"}
			}
			negated = true
			p += w
			continue

		case r == ']' && !atStart:
			return build(items, negated), p + w - off, nil

		case r == '-' && canRange(items):
			hi, hw, err := codec.DecodeAt(pat, p+w)
			if err != nil {
				return nil, 0, err
			}
			if hw == 0 || hi == ']' || hi == escape {
				items = append(items, item{lit: r, isLit: true})
				p += w
				break
			}
			last := &items[len(items)-1]
			last.ranges = []Range{{last.lit, hi}}
			last.isLit = false
			last.inRange = true
			p += w + hw

		default:
			items = append(items, item{lit: r, isLit: true})
			p += w
		}
		atStart = false
	}
}

// canRange reports whether a '-' can join the previous item into a range.
func canRange(items []item) bool {
	if len(items) == 0 {
		return false
	}
	last := items[len(items)-1]
	return last.isLit && !last.fromEsc && !last.inRange
}

func build(items []item, negated bool) *Class {
	var set []rune
	var ranges []Range
	for _, it := range items {
		if it.isLit {
			set = append(set, it.lit)
			continue
		}
		for _, rg := range it.ranges {
			if rg.Lo <= rg.Hi {
				ranges = append(ranges, rg)
			}
		}
	}
	return newSet(set, ranges, negated)
}
