package pattern

import (
	"fmt"
	"strings"

	"github.com/coregx/ustring/class"
)

// MaxCaptures is the maximum number of captures in one pattern.
const MaxCaptures = 32

// Op is an instruction opcode.
type Op uint8

const (
	// OpChar consumes one code point matching Class.
	OpChar Op = iota
	// OpStar greedily consumes zero or more code points matching Class.
	OpStar
	// OpMinus lazily consumes zero or more code points matching Class.
	OpMinus
	// OpQuestion consumes zero or one code point matching Class.
	OpQuestion
	// OpOpen records the start of capture Arg.
	OpOpen
	// OpPosition records capture Arg as a zero-width position.
	OpPosition
	// OpClose records the end of capture Arg.
	OpClose
	// OpBackref matches the text captured by capture Arg.
	OpBackref
	// OpBalanced matches a span from Open to the matching Close.
	OpBalanced
	// OpFinal ends the program, enforcing the end anchor.
	OpFinal
)

var opNames = [...]string{
	OpChar:     "char",
	OpStar:     "star",
	OpMinus:    "minus",
	OpQuestion: "question",
	OpOpen:     "open",
	OpPosition: "position",
	OpClose:    "close",
	OpBackref:  "backref",
	OpBalanced: "balanced",
	OpFinal:    "final",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("op(%d)", op)
}

// Inst is one instruction of a compiled program.
type Inst struct {
	Op    Op
	Class *class.Class
	Arg   int
	Open  rune
	Close rune
}

func (i Inst) String() string {
	switch i.Op {
	case OpChar, OpStar, OpMinus, OpQuestion:
		return fmt.Sprintf("%s %s", i.Op, i.Class)
	case OpOpen, OpPosition, OpClose, OpBackref:
		return fmt.Sprintf("%s %d", i.Op, i.Arg+1)
	case OpBalanced:
		return fmt.Sprintf("%s %c%c", i.Op, i.Open, i.Close)
	}
	return i.Op.String()
}

// Program is a compiled pattern. Programs are immutable and safe for
// concurrent use; all match state lives in pooled per-call machines.
type Program struct {
	Source      string
	Insts       []Inst
	NumCaptures int
	Anchored    bool
	EndAnchored bool
	Plain       bool

	pool machinePool
}

// String dumps the program one instruction per line.
func (p *Program) String() string {
	var sb strings.Builder
	if p.Anchored {
		sb.WriteString("anchored\n")
	}
	for pc, in := range p.Insts {
		fmt.Fprintf(&sb, "%03d %s\n", pc, in)
	}
	if p.EndAnchored {
		sb.WriteString("end-anchored\n")
	}
	return sb.String()
}
