// Package literal extracts the literal prefixes a compiled pattern requires
// and represents them as sequences of alternatives.
//
// The primary use case is prefiltering: a pattern such as "key=(%w+)" can
// only match where "key=" occurs, so the engine jumps between occurrences
// of the prefix instead of attempting a match at every code point.
//
// Key concepts:
//   - A Literal is a concrete UTF-8 byte sequence that may start a match
//   - A Seq is a set of alternative literals (e.g., from "[ab]c" -> "ac", "bc")
//   - Minimize and LongestCommonPrefix help pick a prefilter strategy
package literal

import (
	"bytes"
	"sort"
	"strconv"
)

// Literal is one code-point sequence that a match may begin with, stored
// as UTF-8. Complete is set when locating Bytes already locates the whole
// match, as for the pattern "ключ". For "ключ%d+" the same bytes are only
// a prefix and Complete is false.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral wraps b without copying it.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len is the byte length of the encoded literal.
func (l Literal) Len() int { return len(l.Bytes) }

// String quotes the bytes. A trailing "*" marks a prefix-only literal.
func (l Literal) String() string {
	q := strconv.Quote(string(l.Bytes))
	if !l.Complete {
		q += "*"
	}
	return q
}

// Seq holds alternatives: a match starts with at least one of them.
// "[кК]от" yields the two literals "кот" and "Кот".
type Seq struct {
	literals []Literal
}

// NewSeq keeps lits in the given order.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len is zero for a nil sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get panics when i is out of range.
func (s *Seq) Get(i int) Literal { return s.literals[i] }

// IsEmpty is true for a nil sequence too.
func (s *Seq) IsEmpty() bool { return s.Len() == 0 }

// AllComplete reports whether every literal is a complete match. An empty
// sequence is never complete.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// Clone copies the literal bytes too, so Minimize on the copy leaves s
// untouched.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}
	out := &Seq{literals: make([]Literal, 0, len(s.literals))}
	for _, lit := range s.literals {
		out.literals = append(out.literals, NewLiteral(bytes.Clone(lit.Bytes), lit.Complete))
	}
	return out
}

// Minimize drops every literal that has a shorter literal of the set as a
// prefix, since an occurrence of the longer one is also an occurrence of the
// shorter. {"дом", "домик"} becomes {"дом"}. The survivor stays Complete only
// if everything it absorbed was an identical complete literal.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	sort.SliceStable(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})

	kept := s.literals[:0:0]
next:
	for _, lit := range s.literals {
		for j := range kept {
			if !bytes.HasPrefix(lit.Bytes, kept[j].Bytes) {
				continue
			}
			if !lit.Complete || len(lit.Bytes) != len(kept[j].Bytes) {
				kept[j].Complete = false
			}
			continue next
		}
		kept = append(kept, lit)
	}
	s.literals = kept
}

// LongestCommonPrefix is shared by every literal, cut back to a code-point
// boundary: "привет" and "прием" share "при", while "é" and "è" share
// nothing even though their first bytes agree.
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}

	prefix := s.literals[0].Bytes
	for i := 1; i < len(s.literals); i++ {
		prefix = commonPrefix(prefix, s.literals[i].Bytes)
		if len(prefix) == 0 {
			return []byte{}
		}
	}

	// Back off to a code-point boundary.
	n := len(prefix)
	for n > 0 && n < len(s.literals[0].Bytes) && isContinuation(s.literals[0].Bytes[n]) {
		n--
	}
	return bytes.Clone(prefix[:n])
}

// Strings returns the literal bytes as strings, in sequence order.
func (s *Seq) Strings() []string {
	out := make([]string, s.Len())
	for i := range out {
		out[i] = string(s.literals[i].Bytes)
	}
	return out
}

func commonPrefix(a, b []byte) []byte {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

func isContinuation(b byte) bool {
	return b&0xC0 == 0x80
}
