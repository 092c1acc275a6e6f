package ustring

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/ustring/codec"
)

// ErrOddReplacerArgs is returned by NewReplacer for an odd argument count.
var ErrOddReplacerArgs = errors.New("odd argument count")

// Replacer replaces a set of literal strings in one left-to-right pass.
// At each position the earliest match wins; among matches starting at the
// same position, the automaton's preference decides. It is safe for
// concurrent use.
type Replacer struct {
	auto    *ahocorasick.Automaton
	replace map[string]string
}

// NewReplacer builds a Replacer from old, new string pairs. Empty and
// malformed old strings are rejected. A repeated old string keeps its first
// replacement.
func NewReplacer(oldnew ...string) (*Replacer, error) {
	if len(oldnew)%2 == 1 {
		return nil, fmt.Errorf("ustring: NewReplacer: %w", ErrOddReplacerArgs)
	}

	builder := ahocorasick.NewBuilder()
	r := &Replacer{replace: make(map[string]string, len(oldnew)/2)}
	for i := 0; i < len(oldnew); i += 2 {
		old := oldnew[i]
		if old == "" {
			return nil, fmt.Errorf("ustring: NewReplacer: argument %d is empty", i)
		}
		if err := codec.Validate(old); err != nil {
			return nil, fmt.Errorf("ustring: NewReplacer: argument %d: %w", i, err)
		}
		if _, dup := r.replace[old]; dup {
			continue
		}
		r.replace[old] = oldnew[i+1]
		builder.AddPattern([]byte(old))
	}

	auto, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("ustring: NewReplacer: %w", err)
	}
	r.auto = auto
	return r, nil
}

// Replace returns a copy of s with all replacements performed, and the
// number of replacements.
func (r *Replacer) Replace(s string) (string, int, error) {
	if err := codec.Validate(s); err != nil {
		return "", 0, err
	}

	hay := unsafe.Slice(unsafe.StringData(s), len(s))
	var sb strings.Builder
	pos, n := 0, 0
	for pos < len(s) {
		m := r.auto.Find(hay, pos)
		if m == nil {
			break
		}
		sb.WriteString(s[pos:m.Start])
		sb.WriteString(r.replace[s[m.Start:m.End]])
		pos = m.End
		n++
	}
	if n == 0 {
		return s, 0, nil
	}
	sb.WriteString(s[pos:])
	return sb.String(), n, nil
}
