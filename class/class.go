// Package class compiles character-class specifications of the pattern
// dialect into predicates over code points.
//
// A class is the union of a sorted set of literal code points (binary
// search) and a short list of inclusive ranges (linear scan), optionally
// negated. The end-of-input sentinel never matches any class, negated or
// not.
package class

import (
	"slices"
	"sort"
	"strings"

	"github.com/coregx/ustring/codec"
)

// Range is an inclusive code-point range.
type Range struct {
	Lo, Hi rune
}

type kind uint8

const (
	kindSet kind = iota
	kindLiteral
	kindAny
)

// Class is a compiled character class. Classes are immutable once built and
// safe for concurrent use.
type Class struct {
	kind    kind
	lit     rune
	set     []rune
	ranges  []Range
	negated bool
}

// Literal returns a class matching exactly r.
func Literal(r rune) *Class {
	return &Class{kind: kindLiteral, lit: r}
}

// Any returns the class for '.': every code point except end of input.
func Any() *Class {
	return anyClass
}

var anyClass = &Class{kind: kindAny}

func newSet(set []rune, ranges []Range, negated bool) *Class {
	slices.Sort(set)
	set = slices.Compact(set)
	return &Class{kind: kindSet, set: set, ranges: ranges, negated: negated}
}

// Matches reports whether r belongs to the class. codec.EOF never matches.
func (c *Class) Matches(r rune) bool {
	if r < 0 {
		return false
	}
	switch c.kind {
	case kindLiteral:
		return r == c.lit
	case kindAny:
		return true
	}
	return c.contains(r) != c.negated
}

func (c *Class) contains(r rune) bool {
	i := sort.Search(len(c.set), func(i int) bool { return c.set[i] >= r })
	if i < len(c.set) && c.set[i] == r {
		return true
	}
	for _, rg := range c.ranges {
		if r >= rg.Lo && r <= rg.Hi {
			return true
		}
	}
	return false
}

// IsLiteral reports whether the class matches exactly one code point and
// returns it.
func (c *Class) IsLiteral() (rune, bool) {
	if c.kind == kindLiteral {
		return c.lit, true
	}
	if c.kind == kindSet && !c.negated && len(c.ranges) == 0 && len(c.set) == 1 {
		return c.set[0], true
	}
	return 0, false
}

// Enumerate lists the code points of a non-negated class in ascending
// order, provided there are at most limit of them.
func (c *Class) Enumerate(limit int) ([]rune, bool) {
	switch {
	case c.kind == kindLiteral:
		return []rune{c.lit}, limit >= 1
	case c.kind == kindAny, c.negated:
		return nil, false
	}
	n := len(c.set)
	for _, rg := range c.ranges {
		if rg.Hi < rg.Lo {
			continue
		}
		n += int(rg.Hi-rg.Lo) + 1
		if n > limit {
			return nil, false
		}
	}
	if n > limit {
		return nil, false
	}
	out := make([]rune, 0, n)
	out = append(out, c.set...)
	for _, rg := range c.ranges {
		for r := rg.Lo; r <= rg.Hi; r++ {
			out = append(out, r)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), true
}

// Negated reports whether the class was written with a leading '^'.
func (c *Class) Negated() bool {
	return c.negated
}

// String renders the class in bracket form for debugging.
func (c *Class) String() string {
	switch c.kind {
	case kindLiteral:
		return string(c.lit)
	case kindAny:
		return "."
	}
	var sb strings.Builder
	sb.WriteByte('[')
	if c.negated {
		sb.WriteByte('^')
	}
	for _, r := range c.set {
		sb.WriteRune(r)
	}
	for _, rg := range c.ranges {
		sb.WriteRune(rg.Lo)
		sb.WriteByte('-')
		sb.WriteRune(rg.Hi)
	}
	sb.WriteByte(']')
	return sb.String()
}

// Plain compiles text in plain mode: one literal class per code point, with
// no metacharacters recognized.
func Plain(text string) ([]*Class, error) {
	out := make([]*Class, 0, len(text))
	c := codec.NewCursor(text)
	for !c.Done() {
		r, _, err := c.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, Literal(r))
	}
	return out, nil
}
