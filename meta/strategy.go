package meta

import (
	"github.com/coregx/ustring/literal"
	"github.com/coregx/ustring/pattern"
)

// Strategy represents the execution strategy of a compiled pattern.
type Strategy int

const (
	// UseBacktrack runs the backtracker at every code point.
	// Selected for:
	//   - Patterns without a literal prefix (%d+, [^,]*, .-x)
	//   - Anchored patterns, which are attempted once
	//   - When EnablePrefilter is false
	UseBacktrack Strategy = iota

	// UsePlain finds the literal with memscan.Index and never runs the
	// backtracker.
	// Selected for:
	//   - Plain-mode patterns
	//   - Patterns that are one complete literal without captures or anchors
	UsePlain

	// UsePrefilter jumps between occurrences of a single literal prefix
	// and verifies each candidate with the backtracker.
	UsePrefilter

	// UseAhoCorasick jumps between occurrences of several alternative
	// prefixes (from small classes such as [kK]) and verifies each
	// candidate with the backtracker.
	UseAhoCorasick
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case UseBacktrack:
		return "Backtrack"
	case UsePlain:
		return "Plain"
	case UsePrefilter:
		return "Prefilter"
	case UseAhoCorasick:
		return "AhoCorasick"
	default:
		return "Unknown"
	}
}

// SelectStrategy analyzes the program and its literal prefixes and picks
// an execution strategy.
func SelectStrategy(prog *pattern.Program, prefixes *literal.Seq, config Config) Strategy {
	if config.EnablePlainFastPath && isPlainLiteral(prog, prefixes) {
		return UsePlain
	}
	if !config.EnablePrefilter || prog.Anchored || prefixes.IsEmpty() {
		return UseBacktrack
	}
	if prefixes.Len() == 1 {
		return UsePrefilter
	}
	return UseAhoCorasick
}

// isPlainLiteral reports whether finding one literal is the entire match.
func isPlainLiteral(prog *pattern.Program, prefixes *literal.Seq) bool {
	if prog.Plain {
		return true
	}
	return !prog.Anchored && prog.NumCaptures == 0 &&
		prefixes.Len() == 1 && prefixes.AllComplete()
}
