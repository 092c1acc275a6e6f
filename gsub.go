package ustring

import (
	"fmt"
	"strings"

	"github.com/coregx/ustring/codec"
)

// GSub returns a copy of s in which the first limit matches of p (all of
// them when limit is negative) are replaced by the template repl, and the
// number of replacements.
//
// In repl, %0 stands for the whole match and %1 to %9 for the captures;
// %1 is the whole match when the pattern has no captures, and a higher
// index fails with ErrInvalidCapture. '%' followed by any other code point
// emits that code point, and a trailing lone '%' emits '%'.
//
// After an empty match, one code point of s is copied and the search
// continues after it. An anchored pattern is replaced at most once.
func (p *Pattern) GSub(s, repl string, limit int) (string, int, error) {
	return p.gsub(s, limit, func(sb *strings.Builder, m *Match) error {
		return expand(sb, repl, m)
	})
}

// GSubMap is like GSub, but the replacement is looked up in table by the
// first capture (or the whole match). Missing keys are replaced with "".
func (p *Pattern) GSubMap(s string, table map[string]string, limit int) (string, int, error) {
	return p.gsub(s, limit, func(sb *strings.Builder, m *Match) error {
		sb.WriteString(table[m.Values()[0].String()])
		return nil
	})
}

// GSubFunc is like GSub, but the replacement is the result of fn called
// with the captures (or the whole match). An empty result removes the
// match.
func (p *Pattern) GSubFunc(s string, fn func([]Capture) string, limit int) (string, int, error) {
	return p.gsub(s, limit, func(sb *strings.Builder, m *Match) error {
		sb.WriteString(fn(m.Values()))
		return nil
	})
}

// GSub compiles pattern and calls Pattern.GSub.
//
// Example:
//
//	out, n, _ := ustring.GSub("hello world", "o", "0", -1)
//	fmt.Println(out, n) // hell0 w0rld 2
func GSub(s, pattern, repl string, limit int) (string, int, error) {
	p, err := Compile(pattern)
	if err != nil {
		return "", 0, err
	}
	return p.GSub(s, repl, limit)
}

// GSubMap compiles pattern and calls Pattern.GSubMap.
func GSubMap(s, pattern string, table map[string]string, limit int) (string, int, error) {
	p, err := Compile(pattern)
	if err != nil {
		return "", 0, err
	}
	return p.GSubMap(s, table, limit)
}

// GSubFunc compiles pattern and calls Pattern.GSubFunc.
func GSubFunc(s, pattern string, fn func([]Capture) string, limit int) (string, int, error) {
	p, err := Compile(pattern)
	if err != nil {
		return "", 0, err
	}
	return p.GSubFunc(s, fn, limit)
}

func (p *Pattern) gsub(s string, limit int, replace func(*strings.Builder, *Match) error) (string, int, error) {
	if limit == 0 {
		return s, 0, nil
	}

	var sb strings.Builder
	anchored := p.engine.Program().Anchored
	pos, idx, n := 0, 0, 0
	for limit < 0 || n < limit {
		res, err := p.engine.Exec(s, pos, idx)
		if err != nil {
			return "", 0, err
		}
		if res == nil {
			break
		}

		sb.WriteString(s[pos:res.Start])
		if err := replace(&sb, newMatch(s, res)); err != nil {
			return "", 0, err
		}
		n++
		pos, idx = res.End, res.EndIdx

		if res.Empty() {
			if pos >= len(s) {
				break
			}
			_, w, err := codec.DecodeAt(s, pos)
			if err != nil {
				return "", 0, err
			}
			sb.WriteString(s[pos : pos+w])
			pos += w
			idx++
		}
		if anchored {
			break
		}
	}
	sb.WriteString(s[pos:])
	return sb.String(), n, nil
}

// expand writes the template repl for match m.
func expand(sb *strings.Builder, repl string, m *Match) error {
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		if c != '%' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i == len(repl) {
			sb.WriteByte('%')
			break
		}

		d := repl[i]
		switch {
		case d == '0':
			sb.WriteString(m.Text)
		case d >= '1' && d <= '9':
			k := int(d - '1')
			switch {
			case k < len(m.Captures):
				sb.WriteString(m.Captures[k].String())
			case k == 0 && len(m.Captures) == 0:
				sb.WriteString(m.Text)
			default:
				return fmt.Errorf("replacement %q: %%%c: %w", repl, d, ErrInvalidCapture)
			}
		default:
			// Copy the whole code point following the escape.
			_, w, err := codec.DecodeAt(repl, i)
			if err != nil {
				return err
			}
			sb.WriteString(repl[i : i+w])
			i += w - 1
		}
	}
	return nil
}
