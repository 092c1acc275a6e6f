package literal

import (
	"github.com/coregx/ustring/codec"
	"github.com/coregx/ustring/pattern"
)

// ExtractorConfig bounds how much of a pattern is turned into literals.
// A class such as %a or [а-я] has too many members to expand, and several
// small classes in a row multiply the number of alternatives.
type ExtractorConfig struct {
	MaxLiterals   int // alternatives kept in the result
	MaxLiteralLen int // bytes per literal
	MaxClassSize  int // members a class may have and still be expanded
}

// DefaultConfig keeps up to 64 literals of at most 64 bytes and expands
// classes of up to 10 members.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{MaxLiterals: 64, MaxLiteralLen: 64, MaxClassSize: 10}
}

// Extractor walks compiled programs. For "[kK]ey=(%w+)" it yields the
// incomplete prefixes "Key=" and "key=".
type Extractor struct {
	config ExtractorConfig
}

// New returns an Extractor bound to config.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractPrefixes returns the literals one of which must occur at the start
// of every match of prog. It walks the program from the first instruction:
//   - OpChar with a small class extends every literal by each member
//   - OpOpen, OpClose and OpPosition are zero-width and skipped
//   - any other instruction ends the prefix
//
// Reaching OpFinal marks the literals complete, unless the program is
// end-anchored. Returns an empty Seq when the program has no literal prefix.
func (e *Extractor) ExtractPrefixes(prog *pattern.Program) *Seq {
	lits := [][]byte{nil}
	complete := false

walk:
	for _, in := range prog.Insts {
		switch in.Op {
		case pattern.OpOpen, pattern.OpClose, pattern.OpPosition:
			continue

		case pattern.OpChar:
			set, ok := in.Class.Enumerate(e.config.MaxClassSize)
			if !ok || len(set) == 0 || len(lits)*len(set) > e.config.MaxLiterals {
				break walk
			}
			next, ok := e.cross(lits, set)
			if !ok {
				break walk
			}
			lits = next

		case pattern.OpFinal:
			complete = !prog.EndAnchored
			break walk

		default:
			break walk
		}
	}

	if len(lits[0]) == 0 {
		return NewSeq()
	}
	seq := &Seq{literals: make([]Literal, len(lits))}
	for i, b := range lits {
		seq.literals[i] = Literal{Bytes: b, Complete: complete}
	}
	return seq
}

// cross appends every code point of set to every literal. It fails when a
// literal would exceed MaxLiteralLen.
func (e *Extractor) cross(lits [][]byte, set []rune) ([][]byte, bool) {
	out := make([][]byte, 0, len(lits)*len(set))
	for _, lit := range lits {
		for _, r := range set {
			w := codec.Len(r)
			if w < 0 || len(lit)+w > e.config.MaxLiteralLen {
				return nil, false
			}
			b := make([]byte, len(lit), len(lit)+w)
			copy(b, lit)
			b, _ = codec.AppendRune(b, r)
			out = append(out, b)
		}
	}
	return out, true
}
