package ustring

import (
	"github.com/coregx/ustring/meta"
)

// Pattern is a compiled pattern.
//
// A Pattern is safe to use concurrently from multiple goroutines.
//
// Example:
//
//	p := ustring.MustCompile("(%w+)=(%w+)")
//	caps, _ := p.Match("key=value", 1)
//	fmt.Println(caps[0], caps[1]) // key value
type Pattern struct {
	engine *meta.Engine
}

// Compile compiles a pattern through the package cache.
//
// Matching backtracks, so some pattern and input combinations take
// exponential time (for example "a*a*a*a*a*b" against a long run of 'a').
// Callers handling untrusted patterns should bound input sizes.
func Compile(pattern string) (*Pattern, error) {
	e, err := engines.Load().Get(pattern)
	if err != nil {
		return nil, err
	}
	return &Pattern{engine: e}, nil
}

// MustCompile is like Compile but panics if the pattern is malformed.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var keyValue = ustring.MustCompile("(%w+)%s*=%s*(%w+)")
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic("ustring: Compile(" + quote(pattern) + "): " + err.Error())
	}
	return p
}

// CompilePlain compiles text for literal matching: no symbol of text is
// special.
func CompilePlain(text string) (*Pattern, error) {
	e, err := engines.Load().GetPlain(text)
	if err != nil {
		return nil, err
	}
	return &Pattern{engine: e}, nil
}

func compile(pattern string, plain bool) (*Pattern, error) {
	if plain {
		return CompilePlain(pattern)
	}
	return Compile(pattern)
}

func quote(s string) string {
	return "`" + s + "`"
}

// String returns the source text used to compile the pattern.
func (p *Pattern) String() string {
	return p.engine.String()
}

// NumCaptures returns the number of captures in the pattern.
func (p *Pattern) NumCaptures() int {
	return p.engine.NumCaptures()
}

// IsPlain reports whether the pattern was compiled with CompilePlain.
func (p *Pattern) IsPlain() bool {
	return p.engine.Program().Plain
}

// Strategy returns the execution strategy selected for the pattern.
func (p *Pattern) Strategy() meta.Strategy {
	return p.engine.Strategy()
}
