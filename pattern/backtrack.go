package pattern

import (
	"strings"

	"github.com/coregx/ustring/codec"
)

// run executes the program once, anchored at (pos, idx). It reports whether
// the attempt succeeded; on success m.pos and m.idx hold the match end and
// m.caps the captures.
func (m *machine) run(pos, idx int) (bool, error) {
	m.reset(pos, idx)
	for {
		ok, done, err := m.step()
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
		if ok {
			continue
		}
		if ok, err = m.backtrack(); err != nil || !ok {
			return false, err
		}
	}
}

// step executes the instruction at m.pc. It returns ok=false when the
// instruction fails and the machine must backtrack.
//
//nolint:gocyclo,cyclop // complexity is inherent to instruction dispatch
func (m *machine) step() (ok, done bool, err error) {
	in := &m.prog.Insts[m.pc]
	switch in.Op {
	case OpChar:
		r, w, err := codec.DecodeAt(m.text, m.pos)
		if err != nil {
			return false, false, err
		}
		if !in.Class.Matches(r) {
			return false, false, nil
		}
		m.advance(w)
		m.pc++

	case OpStar:
		r, w, err := codec.DecodeAt(m.text, m.pos)
		if err != nil {
			return false, false, err
		}
		if in.Class.Matches(r) {
			m.push(m.pc+1, false)
			m.advance(w)
		} else {
			m.pc++
		}

	case OpMinus:
		m.push(m.pc, true)
		m.pc++

	case OpQuestion:
		r, w, err := codec.DecodeAt(m.text, m.pos)
		if err != nil {
			return false, false, err
		}
		if in.Class.Matches(r) {
			m.push(m.pc+1, false)
			m.advance(w)
		}
		m.pc++

	case OpOpen:
		m.setCap(in.Arg, capSlot{start: m.pos, startIdx: m.idx, end: -1})
		m.pc++

	case OpPosition:
		m.setCap(in.Arg, capSlot{
			start: m.pos, end: m.pos,
			startIdx: m.idx, endIdx: m.idx,
			position: true,
		})
		m.pc++

	case OpClose:
		c := m.caps[in.Arg]
		c.end, c.endIdx = m.pos, m.idx
		m.setCap(in.Arg, c)
		m.pc++

	case OpBackref:
		c := m.caps[in.Arg]
		captured := m.text[c.start:c.end]
		if !strings.HasPrefix(m.text[m.pos:], captured) {
			return false, false, nil
		}
		m.pos += len(captured)
		m.idx += c.endIdx - c.startIdx
		m.pc++

	case OpBalanced:
		ok, err := m.balanced(in.Open, in.Close)
		if err != nil || !ok {
			return false, false, err
		}
		m.pc++

	case OpFinal:
		if m.prog.EndAnchored && m.pos != len(m.text) {
			return false, false, nil
		}
		return true, true, nil
	}
	return true, false, nil
}

func (m *machine) advance(w int) {
	m.pos += w
	m.idx++
}

func (m *machine) push(pc int, expand bool) {
	m.stack = append(m.stack, checkpoint{
		pc:     pc,
		pos:    m.pos,
		idx:    m.idx,
		trail:  len(m.trail),
		expand: expand,
	})
}

// setCap writes a capture slot, saving the previous value on the trail.
func (m *machine) setCap(id int, c capSlot) {
	m.trail = append(m.trail, trailEntry{id: id, old: m.caps[id]})
	m.caps[id] = c
}

// backtrack restores the most recent checkpoint. It returns false when no
// alternative is left.
func (m *machine) backtrack() (bool, error) {
	for len(m.stack) > 0 {
		cp := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]

		for len(m.trail) > cp.trail {
			e := m.trail[len(m.trail)-1]
			m.caps[e.id] = e.old
			m.trail = m.trail[:len(m.trail)-1]
		}
		m.pc, m.pos, m.idx = cp.pc, cp.pos, cp.idx

		if !cp.expand {
			return true, nil
		}

		r, w, err := codec.DecodeAt(m.text, m.pos)
		if err != nil {
			return false, err
		}
		if !m.prog.Insts[cp.pc].Class.Matches(r) {
			continue
		}
		m.advance(w)
		m.push(cp.pc, true)
		m.pc = cp.pc + 1
		return true, nil
	}
	return false, nil
}

// balanced matches %bxy at the cursor: the current code point must be open,
// and the span ends at the close that brings the depth back to zero.
func (m *machine) balanced(open, closeR rune) (bool, error) {
	r, w, err := codec.DecodeAt(m.text, m.pos)
	if err != nil || r != open {
		return false, err
	}
	pos, idx := m.pos+w, m.idx+1
	depth := 1
	for {
		r, w, err := codec.DecodeAt(m.text, pos)
		if err != nil {
			return false, err
		}
		if w == 0 {
			return false, nil
		}
		pos += w
		idx++
		if r == closeR {
			depth--
			if depth == 0 {
				m.pos, m.idx = pos, idx
				return true, nil
			}
		} else if r == open {
			depth++
		}
	}
}
