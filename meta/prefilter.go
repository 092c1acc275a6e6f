package meta

import (
	"unsafe"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/ustring/internal/memscan"
	"github.com/coregx/ustring/literal"
)

// memmemPrefilter proposes occurrences of a single literal prefix.
type memmemPrefilter struct {
	needle string
}

func (p *memmemPrefilter) Next(text string, pos int) int {
	return memscan.IndexAt(text, p.needle, pos)
}

// ahoCorasickPrefilter proposes the leftmost occurrence of any of several
// literal prefixes.
type ahoCorasickPrefilter struct {
	auto *ahocorasick.Automaton
}

func newAhoCorasickPrefilter(prefixes *literal.Seq) (*ahoCorasickPrefilter, error) {
	builder := ahocorasick.NewBuilder()
	for i := 0; i < prefixes.Len(); i++ {
		builder.AddPattern(prefixes.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &ahoCorasickPrefilter{auto: auto}, nil
}

func (p *ahoCorasickPrefilter) Next(text string, pos int) int {
	if pos > len(text) {
		return -1
	}
	m := p.auto.Find(stringBytes(text), pos)
	if m == nil {
		return -1
	}
	return m.Start
}

// stringBytes views s as a byte slice without copying. The automaton only
// reads the haystack.
func stringBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
