package pattern

import (
	"github.com/coregx/ustring/class"
	"github.com/coregx/ustring/codec"
)

// Escape is the escape symbol of the dialect.
const Escape = '%'

// compiler holds the state of one compilation.
type compiler struct {
	src  string
	prog *Program

	// pending is the index of the instruction a following quantifier would
	// wrap, or -1.
	pending int

	open   []int
	closed []bool
}

// Compile parses src into a program.
//
// Matching a compiled program backtracks, so a pattern such as
// "a*a*a*a*a*b" against a long run of 'a' takes exponential time. Callers
// processing untrusted pattern and input combinations should bound input
// sizes.
func Compile(src string) (*Program, error) {
	c := &compiler{
		src:     src,
		prog:    &Program{Source: src},
		pending: -1,
	}
	if err := c.compile(); err != nil {
		return nil, err
	}
	c.prog.pool.init(c.prog)
	return c.prog, nil
}

// CompilePlain builds a program matching text literally.
func CompilePlain(text string) (*Program, error) {
	classes, err := class.Plain(text)
	if err != nil {
		return nil, &CompileError{Pattern: text, Err: err}
	}
	prog := &Program{Source: text, Plain: true, Insts: make([]Inst, 0, len(classes)+1)}
	for _, cls := range classes {
		prog.Insts = append(prog.Insts, Inst{Op: OpChar, Class: cls})
	}
	prog.Insts = append(prog.Insts, Inst{Op: OpFinal})
	prog.pool.init(prog)
	return prog, nil
}

func (c *compiler) fail(off int, err error) error {
	return &CompileError{Pattern: c.src, Offset: off, Err: err}
}

func (c *compiler) emit(in Inst) int {
	c.prog.Insts = append(c.prog.Insts, in)
	return len(c.prog.Insts) - 1
}

func (c *compiler) emitClass(cls *class.Class) {
	c.pending = c.emit(Inst{Op: OpChar, Class: cls})
}

func (c *compiler) decode(off int) (rune, int, error) {
	r, w, err := codec.DecodeAt(c.src, off)
	if err != nil {
		return 0, 0, c.fail(off, err)
	}
	return r, w, nil
}

//nolint:gocyclo,cyclop // one case per pattern symbol
func (c *compiler) compile() error {
	p := 0
	if len(c.src) > 0 && c.src[0] == '^' {
		c.prog.Anchored = true
		p = 1
	}

	for p < len(c.src) {
		r, w, err := c.decode(p)
		if err != nil {
			return err
		}

		switch r {
		case '^':
			return c.fail(p, ErrMalformedAnchor)

		case '$':
			if p+w != len(c.src) {
				return c.fail(p, ErrMalformedAnchor)
			}
			c.prog.EndAnchored = true
			c.pending = -1

		case '(':
			if c.prog.NumCaptures >= MaxCaptures {
				return c.fail(p, ErrTooManyCaptures)
			}
			id := c.prog.NumCaptures
			c.prog.NumCaptures++
			c.closed = append(c.closed, false)
			if p+w < len(c.src) && c.src[p+w] == ')' {
				c.emit(Inst{Op: OpPosition, Arg: id})
				c.closed[id] = true
				w++
			} else {
				c.emit(Inst{Op: OpOpen, Arg: id})
				c.open = append(c.open, id)
			}
			c.pending = -1

		case ')':
			if len(c.open) == 0 {
				return c.fail(p, ErrUnbalancedCapture)
			}
			id := c.open[len(c.open)-1]
			c.open = c.open[:len(c.open)-1]
			c.closed[id] = true
			c.emit(Inst{Op: OpClose, Arg: id})
			c.pending = -1

		case '.':
			c.emitClass(class.Any())

		case '[':
			cls, n, err := class.ParseBracket(c.src, p, Escape)
			if err != nil {
				return c.fail(p, err)
			}
			c.emitClass(cls)
			w = n

		case Escape:
			n, err := c.escape(p, w)
			if err != nil {
				return err
			}
			w = n

		case '*', '+', '-', '?':
			if c.pending < 0 {
				return c.fail(p, ErrDanglingQuantifier)
			}
			c.quantify(r)

		default:
			c.emitClass(class.Literal(r))
		}
		p += w
	}

	if len(c.open) > 0 {
		return c.fail(len(c.src), ErrUnbalancedCapture)
	}
	c.emit(Inst{Op: OpFinal})
	return nil
}

// escape compiles the escape sequence at p (whose escape symbol is w bytes
// wide) and returns the total number of bytes consumed.
func (c *compiler) escape(p, w int) (int, error) {
	e, ew, err := c.decode(p + w)
	if err != nil {
		return 0, err
	}
	if ew == 0 {
		return 0, c.fail(p, &class.ParseError{Offset: p, Msg: "pattern ends with escape"})
	}

	switch {
	case e >= '1' && e <= '9':
		id := int(e - '1')
		if id >= len(c.closed) || !c.closed[id] {
			return 0, c.fail(p, ErrInvalidCapture)
		}
		c.emit(Inst{Op: OpBackref, Arg: id})
		c.pending = -1
		return w + ew, nil

	case e == 'b':
		off := p + w + ew
		open, ow, err := c.decode(off)
		if err != nil {
			return 0, err
		}
		if ow == 0 {
			return 0, c.fail(p, ErrMalformedBalance)
		}
		closeR, cw, err := c.decode(off + ow)
		if err != nil {
			return 0, err
		}
		if cw == 0 {
			return 0, c.fail(p, ErrMalformedBalance)
		}
		c.emit(Inst{Op: OpBalanced, Open: open, Close: closeR})
		c.pending = -1
		return w + ew + ow + cw, nil
	}

	c.emitClass(class.Escape(e))
	return w + ew, nil
}

// quantify wraps the pending class. '+' keeps the single match and adds a
// greedy repetition after it.
func (c *compiler) quantify(q rune) {
	in := &c.prog.Insts[c.pending]
	switch q {
	case '*':
		in.Op = OpStar
	case '-':
		in.Op = OpMinus
	case '?':
		in.Op = OpQuestion
	case '+':
		c.emit(Inst{Op: OpStar, Class: in.Class})
	}
	c.pending = -1
}
