package pattern

import "sync"

// capSlot is one entry of the capture table. Offsets are bytes, indexes are
// 0-based code-point positions. end < 0 marks an unfinished capture.
type capSlot struct {
	start, end       int
	startIdx, endIdx int
	position         bool
}

// trailEntry remembers a capture value overwritten after a checkpoint so the
// checkpoint can restore it.
type trailEntry struct {
	id  int
	old capSlot
}

// checkpoint is a saved alternative. Restoring it rewinds the program
// counter, the cursor and the capture table. When expand is set the
// alternative is "consume one more code point with the class at pc, then
// continue at pc+1", which drives the lazy quantifier.
type checkpoint struct {
	pc, pos, idx int
	trail        int
	expand       bool
}

// machine holds the mutable state of one match call. A machine must not be
// shared between goroutines; Program pools them.
type machine struct {
	prog *Program
	text string

	pc, pos, idx int

	caps  []capSlot
	trail []trailEntry
	stack []checkpoint
}

func newMachine(prog *Program) *machine {
	return &machine{
		prog: prog,
		caps: make([]capSlot, prog.NumCaptures),
	}
}

// reset prepares the machine for a new attempt at (pos, idx).
func (m *machine) reset(pos, idx int) {
	m.pc, m.pos, m.idx = 0, pos, idx
	for i := range m.caps {
		m.caps[i] = capSlot{start: -1, end: -1}
	}
	m.trail = m.trail[:0]
	m.stack = m.stack[:0]
}

// machinePool manages machines for concurrent use of one Program.
type machinePool struct {
	pool sync.Pool
}

func (p *machinePool) init(prog *Program) {
	p.pool.New = func() any {
		return newMachine(prog)
	}
}

func (p *machinePool) get(text string) *machine {
	m := p.pool.Get().(*machine)
	m.text = text
	return m
}

func (p *machinePool) put(m *machine) {
	m.text = ""
	p.pool.Put(m)
}
