package ustring

import (
	"strconv"

	"github.com/coregx/ustring/codec"
	"github.com/coregx/ustring/pattern"
)

// Capture is one captured value. Start and End are the 1-based code-point
// span with End inclusive, so an empty capture has End == Start-1.
// ByteStart and ByteEnd locate it in the searched text. A position capture
// "()" has IsPosition set and carries its 1-based position instead of text.
type Capture struct {
	Value      string
	IsPosition bool
	Position   int

	Start, End         int
	ByteStart, ByteEnd int
}

// String returns the captured text, or the position in decimal.
func (c Capture) String() string {
	if c.IsPosition {
		return strconv.Itoa(c.Position)
	}
	return c.Value
}

// Any returns the captured text as a string, or the position as an int.
func (c Capture) Any() any {
	if c.IsPosition {
		return c.Position
	}
	return c.Value
}

// Match describes a successful search. Start and End are 1-based
// code-point indexes with End inclusive; an empty match has
// End == Start-1. Captures holds the explicit captures only.
type Match struct {
	Start, End         int
	ByteStart, ByteEnd int
	Text               string
	Captures           []Capture
}

// Values returns the captures, or the whole match as a single capture when
// the pattern has none.
func (m *Match) Values() []Capture {
	if len(m.Captures) > 0 {
		return m.Captures
	}
	return []Capture{m.whole()}
}

func (m *Match) whole() Capture {
	return Capture{
		Value:     m.Text,
		Start:     m.Start,
		End:       m.End,
		ByteStart: m.ByteStart,
		ByteEnd:   m.ByteEnd,
	}
}

func newMatch(text string, res *pattern.Result) *Match {
	m := &Match{
		Start:     res.StartIdx + 1,
		End:       res.EndIdx,
		ByteStart: res.Start,
		ByteEnd:   res.End,
		Text:      text[res.Start:res.End],
	}
	if len(res.Caps) > 0 {
		m.Captures = make([]Capture, len(res.Caps))
		for i, c := range res.Caps {
			m.Captures[i] = Capture{
				Value:      text[c.Start:c.End],
				IsPosition: c.Position,
				Start:      c.StartIdx + 1,
				End:        c.EndIdx,
				ByteStart:  c.Start,
				ByteEnd:    c.End,
			}
			if c.Position {
				m.Captures[i].Position = c.StartIdx + 1
			}
		}
	}
	return m
}

// resolveInit converts a 1-based, possibly negative, start index into a
// byte offset and 0-based code-point index. ok is false when init lies
// beyond one past the end of s.
func resolveInit(s string, init int) (pos, idx int, ok bool, err error) {
	if init < 0 {
		n, err := codec.Count(s)
		if err != nil {
			return 0, 0, false, err
		}
		init = n + init + 1
	}
	if init < 1 {
		init = 1
	}

	c := codec.NewCursor(s)
	skipped, err := c.Skip(init - 1)
	if err != nil {
		return 0, 0, false, err
	}
	if skipped < init-1 {
		return 0, 0, false, nil
	}
	return c.Pos(), c.Index(), true, nil
}

// Find searches s for the first match of p starting at code point init
// (1-based, negative counts from the end, values below 1 mean 1). It
// returns nil when there is no match or init is beyond len(s)+1.
func (p *Pattern) Find(s string, init int) (*Match, error) {
	pos, idx, ok, err := resolveInit(s, init)
	if err != nil || !ok {
		return nil, err
	}
	res, err := p.engine.Exec(s, pos, idx)
	if err != nil || res == nil {
		return nil, err
	}
	return newMatch(s, res), nil
}

// Match is like Find but returns the captures, or the whole match as a
// single capture when the pattern has none.
func (p *Pattern) Match(s string, init int) ([]Capture, error) {
	m, err := p.Find(s, init)
	if err != nil || m == nil {
		return nil, err
	}
	return m.Values(), nil
}

// MatchString reports whether p matches anywhere in s.
func (p *Pattern) MatchString(s string) (bool, error) {
	m, err := p.Find(s, 1)
	return m != nil, err
}

// Find compiles pattern (literally when plain is set) and searches s from
// code point init. See Pattern.Find.
//
// Example:
//
//	m, _ := ustring.Find("abc123", "%d+", 1, false)
//	fmt.Println(m.Start, m.End) // 4 6
func Find(s, pattern string, init int, plain bool) (*Match, error) {
	p, err := compile(pattern, plain)
	if err != nil {
		return nil, err
	}
	return p.Find(s, init)
}

// MatchString compiles pattern and returns the captures of the first match
// at or after code point init. See Pattern.Match.
func MatchString(s, pattern string, init int) ([]Capture, error) {
	p, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	return p.Match(s, init)
}

// Values converts captures to their string forms.
func Values(caps []Capture) []string {
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = c.String()
	}
	return out
}
