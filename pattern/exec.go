package pattern

import "github.com/coregx/ustring/codec"

// Cap is one capture of a successful match. Offsets are bytes into the
// searched text; StartIdx and EndIdx are 0-based code-point indexes with
// EndIdx exclusive. Position captures have Start == End.
type Cap struct {
	Start, End       int
	StartIdx, EndIdx int
	Position         bool
}

// Result describes a successful match.
type Result struct {
	Start, End       int
	StartIdx, EndIdx int
	Caps             []Cap
}

// Empty reports whether the match consumed no code points.
func (r *Result) Empty() bool {
	return r.Start == r.End
}

// Prefilter proposes candidate start offsets. Next returns the smallest byte
// offset >= pos at which a match may start, or -1 when no match is possible
// in the rest of text. Offsets must fall on code-point boundaries.
type Prefilter interface {
	Next(text string, pos int) int
}

// Exec searches text for the first match starting at byte offset pos, which
// is code point idx of text. Unanchored programs retry at every following
// code point up to and including the end of text. A nil Result with a nil
// error means no match. pf may be nil; when it rules out the rest of the
// text, the skipped bytes are still validated.
func (p *Program) Exec(text string, pos, idx int, pf Prefilter) (*Result, error) {
	m := p.pool.get(text)
	defer p.pool.put(m)

	for {
		if pf != nil && !p.Anchored {
			next := pf.Next(text, pos)
			if next < 0 {
				_, err := codec.Advance(text, pos, idx, len(text))
				return nil, err
			}
			if next > pos {
				var err error
				if idx, err = codec.Advance(text, pos, idx, next); err != nil {
					return nil, err
				}
				pos = next
			}
		}

		ok, err := m.run(pos, idx)
		if err != nil {
			return nil, err
		}
		if ok {
			return m.result(pos, idx), nil
		}

		if p.Anchored || pos >= len(text) {
			return nil, nil
		}
		_, w, err := codec.DecodeAt(text, pos)
		if err != nil {
			return nil, err
		}
		pos += w
		idx++
	}
}

// MatchAt reports whether the program matches at exactly (pos, idx),
// regardless of the Anchored flag.
func (p *Program) MatchAt(text string, pos, idx int) (*Result, error) {
	m := p.pool.get(text)
	defer p.pool.put(m)

	ok, err := m.run(pos, idx)
	if err != nil || !ok {
		return nil, err
	}
	return m.result(pos, idx), nil
}

func (m *machine) result(start, startIdx int) *Result {
	res := &Result{
		Start:    start,
		End:      m.pos,
		StartIdx: startIdx,
		EndIdx:   m.idx,
	}
	if len(m.caps) > 0 {
		res.Caps = make([]Cap, len(m.caps))
		for i, c := range m.caps {
			res.Caps[i] = Cap{
				Start:    c.start,
				End:      c.end,
				StartIdx: c.startIdx,
				EndIdx:   c.endIdx,
				Position: c.position,
			}
		}
	}
	return res
}
