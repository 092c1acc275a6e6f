// Package casemap implements simple one-to-one case mapping driven by a
// fixed table of code-point ranges. It is not full Unicode case folding:
// every code point maps to exactly one code point, and code points outside
// the table map to themselves.
//
// Tables are loaded from YAML and are immutable once loaded, so a Table is
// safe for concurrent use. The default table is embedded in the package.
package casemap

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/coregx/ustring/codec"
)

// ErrInvalidTable is returned when a table fails validation.
var ErrInvalidTable = errors.New("invalid case table")

// Entry maps the code points Lo, Lo+Stride, ... Hi to their uppercase forms
// by adding Delta.
type Entry struct {
	Lo     rune   `yaml:"lo"`
	Hi     rune   `yaml:"hi"`
	Stride rune   `yaml:"stride,omitempty"`
	Delta  rune   `yaml:"delta"`
	Except []rune `yaml:"except,omitempty"`
	OneWay bool   `yaml:"oneway,omitempty"`
}

type file struct {
	Ranges []Entry `yaml:"ranges"`
}

func (e Entry) covers(r rune) bool {
	if r < e.Lo || r > e.Hi || (r-e.Lo)%e.Stride != 0 {
		return false
	}
	for _, x := range e.Except {
		if x == r {
			return false
		}
	}
	return true
}

func (e Entry) inverse() Entry {
	inv := Entry{
		Lo:     e.Lo + e.Delta,
		Hi:     e.Hi + e.Delta,
		Stride: e.Stride,
		Delta:  -e.Delta,
	}
	for _, x := range e.Except {
		inv.Except = append(inv.Except, x+e.Delta)
	}
	return inv
}

// Table is a loaded case table.
type Table struct {
	upper []Entry
	lower []Entry
}

//go:embed default.yaml
var defaultYAML string

var (
	defaultTable *Table
	defaultOnce  sync.Once
)

// Default returns the embedded table. It panics if the embedded data is
// invalid, which the package tests rule out.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Load(strings.NewReader(defaultYAML))
		if err != nil {
			panic("casemap: embedded table: " + err.Error())
		}
		defaultTable = t
	})
	return defaultTable
}

// Load parses and validates a YAML table.
func Load(r io.Reader) (*Table, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("casemap: decode: %w", err)
	}
	return New(f.Ranges)
}

// New builds a table from lowercase-to-uppercase entries.
func New(entries []Entry) (*Table, error) {
	t := &Table{}
	for i, e := range entries {
		if e.Stride == 0 {
			e.Stride = 1
		}
		if err := validate(e); err != nil {
			return nil, fmt.Errorf("casemap: entry %d: %w", i, err)
		}
		t.upper = append(t.upper, e)
		if !e.OneWay {
			t.lower = append(t.lower, e.inverse())
		}
	}
	for _, side := range [][]Entry{t.upper, t.lower} {
		if err := sortDisjoint(side); err != nil {
			return nil, fmt.Errorf("casemap: %w", err)
		}
	}
	return t, nil
}

func validate(e Entry) error {
	switch {
	case e.Lo > e.Hi:
		return fmt.Errorf("%w: lo %#x above hi %#x", ErrInvalidTable, e.Lo, e.Hi)
	case e.Stride != 1 && e.Stride != 2:
		return fmt.Errorf("%w: stride %d", ErrInvalidTable, e.Stride)
	}
	for _, r := range []rune{e.Lo, e.Hi, e.Lo + e.Delta, e.Hi + e.Delta} {
		if !codec.ValidRune(r) {
			return fmt.Errorf("%w: %#x is not a valid code point", ErrInvalidTable, r)
		}
	}
	return nil
}

// sortDisjoint sorts entries by Lo and rejects overlapping ranges.
func sortDisjoint(entries []Entry) error {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Lo < entries[j].Lo })
	for i := 1; i < len(entries); i++ {
		if entries[i].Lo <= entries[i-1].Hi {
			return fmt.Errorf("%w: ranges %#x-%#x and %#x-%#x overlap", ErrInvalidTable,
				entries[i-1].Lo, entries[i-1].Hi, entries[i].Lo, entries[i].Hi)
		}
	}
	return nil
}

func lookup(entries []Entry, r rune) rune {
	i := sort.Search(len(entries), func(i int) bool { return entries[i].Hi >= r })
	if i < len(entries) && entries[i].covers(r) {
		return r + entries[i].Delta
	}
	return r
}

// ToUpper maps a single code point to uppercase.
func (t *Table) ToUpper(r rune) rune {
	return lookup(t.upper, r)
}

// ToLower maps a single code point to lowercase.
func (t *Table) ToLower(r rune) rune {
	return lookup(t.lower, r)
}

// Upper converts every code point of s to uppercase.
func (t *Table) Upper(s string) (string, error) {
	return t.convert(s, t.ToUpper)
}

// Lower converts every code point of s to lowercase.
func (t *Table) Lower(s string) (string, error) {
	return t.convert(s, t.ToLower)
}

// Len returns the number of entries in each direction.
func (t *Table) Len() (upper, lower int) {
	return len(t.upper), len(t.lower)
}

func (t *Table) convert(s string, fn func(rune) rune) (string, error) {
	buf := make([]byte, 0, len(s))
	c := codec.NewCursor(s)
	for !c.Done() {
		r, _, err := c.Next()
		if err != nil {
			return "", err
		}
		buf, _ = codec.AppendRune(buf, fn(r))
	}
	return string(buf), nil
}
