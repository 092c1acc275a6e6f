package meta

import (
	"sync/atomic"

	"github.com/coregx/ustring/codec"
	"github.com/coregx/ustring/internal/memscan"
	"github.com/coregx/ustring/literal"
	"github.com/coregx/ustring/pattern"
)

// Engine is a compiled pattern together with its execution strategy.
// Engines are safe for concurrent use.
type Engine struct {
	prog      *pattern.Program
	prefixes  *literal.Seq
	strategy  Strategy
	prefilter pattern.Prefilter
	needle    string
	stats     Stats
}

// Stats tracks execution statistics of one Engine.
type Stats struct {
	// PlainSearches counts searches answered by memscan alone.
	PlainSearches uint64

	// PrefilterSearches counts searches driven by a prefilter.
	PrefilterSearches uint64

	// BacktrackSearches counts searches without a prefilter.
	BacktrackSearches uint64
}

// Compile compiles a pattern and selects its strategy.
func Compile(src string, config Config) (*Engine, error) {
	prog, err := pattern.Compile(src)
	if err != nil {
		return nil, err
	}
	return newEngine(prog, config)
}

// CompilePlain compiles text for literal matching.
func CompilePlain(text string, config Config) (*Engine, error) {
	prog, err := pattern.CompilePlain(text)
	if err != nil {
		return nil, err
	}
	return newEngine(prog, config)
}

func newEngine(prog *pattern.Program, config Config) (*Engine, error) {
	extractor := literal.New(literal.ExtractorConfig{
		MaxLiterals:   config.MaxLiterals,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	})
	prefixes := extractor.ExtractPrefixes(prog)

	e := &Engine{
		prog:     prog,
		prefixes: prefixes,
		strategy: SelectStrategy(prog, prefixes, config),
	}

	switch e.strategy {
	case UsePlain:
		e.needle = prog.Source
		if !prog.Plain {
			// "%." and "[é]" compile to a single literal that differs from
			// the source text.
			e.needle = string(prefixes.Get(0).Bytes)
		}
	case UsePrefilter:
		e.prefilter = &memmemPrefilter{needle: string(prefixes.Get(0).Bytes)}
	case UseAhoCorasick:
		e.prefilter, e.strategy = alternatives(prefixes)
	}
	return e, nil
}

// alternatives builds the prefilter for several prefixes. Prefixes that
// start with a shorter one are dropped first; a single survivor is searched
// with memmem. When the automaton cannot be built the common prefix of the
// alternatives is searched instead, if there is one.
func alternatives(prefixes *literal.Seq) (pattern.Prefilter, Strategy) {
	minimal := prefixes.Clone()
	minimal.Minimize()
	if minimal.Len() == 1 {
		return &memmemPrefilter{needle: string(minimal.Get(0).Bytes)}, UsePrefilter
	}

	pf, err := newAhoCorasickPrefilter(minimal)
	if err == nil {
		return pf, UseAhoCorasick
	}
	if lcp := minimal.LongestCommonPrefix(); len(lcp) > 0 {
		return &memmemPrefilter{needle: string(lcp)}, UsePrefilter
	}
	return nil, UseBacktrack
}

// Program returns the compiled program.
func (e *Engine) Program() *pattern.Program {
	return e.prog
}

// Prefixes returns the literal prefixes extracted from the program.
func (e *Engine) Prefixes() *literal.Seq {
	return e.prefixes
}

// Strategy returns the execution strategy selected for this engine.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// NumCaptures returns the number of captures of the pattern.
func (e *Engine) NumCaptures() int {
	return e.prog.NumCaptures
}

// String returns the source pattern.
func (e *Engine) String() string {
	return e.prog.Source
}

// Stats returns a snapshot of the execution statistics.
func (e *Engine) Stats() Stats {
	return Stats{
		PlainSearches:     atomic.LoadUint64(&e.stats.PlainSearches),
		PrefilterSearches: atomic.LoadUint64(&e.stats.PrefilterSearches),
		BacktrackSearches: atomic.LoadUint64(&e.stats.BacktrackSearches),
	}
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.PlainSearches, 0)
	atomic.StoreUint64(&e.stats.PrefilterSearches, 0)
	atomic.StoreUint64(&e.stats.BacktrackSearches, 0)
}

// Exec finds the first match at or after byte offset pos, which is code
// point idx of text. A nil Result with a nil error means no match. Invalid
// UTF-8 between pos and the match, or anywhere after pos when nothing
// matches, is reported as a codec error.
func (e *Engine) Exec(text string, pos, idx int) (*pattern.Result, error) {
	switch e.strategy {
	case UsePlain:
		atomic.AddUint64(&e.stats.PlainSearches, 1)
		return e.execPlain(text, pos, idx)
	case UsePrefilter, UseAhoCorasick:
		atomic.AddUint64(&e.stats.PrefilterSearches, 1)
		return e.prog.Exec(text, pos, idx, e.prefilter)
	default:
		atomic.AddUint64(&e.stats.BacktrackSearches, 1)
		if e.prog.Anchored {
			return e.MatchAt(text, pos, idx)
		}
		return e.prog.Exec(text, pos, idx, nil)
	}
}

// MatchAt matches the program exactly at (pos, idx), ignoring the
// strategy. Anchored patterns always run this way.
func (e *Engine) MatchAt(text string, pos, idx int) (*pattern.Result, error) {
	return e.prog.MatchAt(text, pos, idx)
}

func (e *Engine) execPlain(text string, pos, idx int) (*pattern.Result, error) {
	i := memscan.IndexAt(text, e.needle, pos)
	if i < 0 {
		_, err := codec.Advance(text, pos, idx, len(text))
		return nil, err
	}
	start, err := codec.Advance(text, pos, idx, i)
	if err != nil {
		return nil, err
	}
	n, _ := codec.Count(e.needle)
	return &pattern.Result{
		Start:    i,
		End:      i + len(e.needle),
		StartIdx: start,
		EndIdx:   start + n,
	}, nil
}
