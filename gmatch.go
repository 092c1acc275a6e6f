package ustring

import (
	"github.com/coregx/ustring/codec"
)

// Iterator walks the successive matches of a pattern over a text.
//
// After a match the search continues at its end, or one code point further
// when the match was empty, so iteration always terminates. An anchored
// pattern is attempted once.
//
// Example:
//
//	it, _ := ustring.GMatch("one two", "%a+")
//	for it.Next() {
//	    fmt.Println(it.Captures()[0])
//	}
//	if err := it.Err(); err != nil {
//	    log.Fatal(err)
//	}
type Iterator struct {
	p    *Pattern
	text string

	pos, idx int
	match    *Match
	err      error
	done     bool
}

// GMatch returns an iterator over the matches of p in s.
func (p *Pattern) GMatch(s string) *Iterator {
	return &Iterator{p: p, text: s}
}

// GMatch compiles pattern and returns an iterator over its matches in s.
func GMatch(s, pattern string) (*Iterator, error) {
	p, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	return p.GMatch(s), nil
}

// Next advances to the next match. It returns false when there are no more
// matches or an error occurred; see Err.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	if it.pos > len(it.text) {
		it.finish()
		return false
	}

	res, err := it.p.engine.Exec(it.text, it.pos, it.idx)
	if err != nil {
		it.err = err
		it.finish()
		return false
	}
	if res == nil {
		it.finish()
		return false
	}

	it.match = newMatch(it.text, res)
	it.pos, it.idx = res.End, res.EndIdx
	if res.Empty() {
		if it.pos >= len(it.text) {
			it.pos = len(it.text) + 1
		} else {
			_, w, err := codec.DecodeAt(it.text, it.pos)
			if err != nil {
				it.err = err
				it.finish()
				return false
			}
			it.pos += w
			it.idx++
		}
	}
	if it.p.engine.Program().Anchored {
		it.done = true
	}
	return true
}

func (it *Iterator) finish() {
	it.done = true
	it.match = nil
}

// Match returns the current match, or nil before the first call to Next and
// after iteration ends.
func (it *Iterator) Match() *Match {
	return it.match
}

// Captures returns the captures of the current match, or the whole match
// when the pattern has none.
func (it *Iterator) Captures() []Capture {
	if it.match == nil {
		return nil
	}
	return it.match.Values()
}

// Err returns the first error met during iteration.
func (it *Iterator) Err() error {
	return it.err
}

// Reset restarts the iteration from the start of the text.
func (it *Iterator) Reset() {
	*it = Iterator{p: it.p, text: it.text}
}

// All collects the remaining matches' captures.
func (it *Iterator) All() ([][]Capture, error) {
	var out [][]Capture
	for it.Next() {
		out = append(out, it.Captures())
	}
	return out, it.Err()
}
