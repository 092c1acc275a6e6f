// Package meta selects how a compiled pattern is executed and caches
// compiled patterns.
//
// The meta layer coordinates three execution strategies:
//   - Plain: the pattern is a literal, found with memscan.Index
//   - Prefilter: literal prefixes locate candidates, the backtracker verifies
//   - Backtrack: the backtracker tries every code point
//
// Strategy selection is based on the literal prefixes of the program and on
// the Config toggles. Compiled engines are kept in bounded gcache caches,
// one for patterns and one for plain texts.
package meta

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Cache eviction strategies.
const (
	StrategyLRU    = "LRU"
	StrategyLFU    = "LFU"
	StrategyARC    = "ARC"
	StrategySimple = "SIMPLE"
)

// Config tunes strategy selection and the two engine caches.
type Config struct {
	CacheSize       int           // entries per cache, 256 unless set
	CacheStrategy   string        // eviction: LRU, LFU, ARC or SIMPLE
	CacheExpiration time.Duration // zero keeps entries until evicted

	EnablePrefilter     bool // jump between literal-prefix occurrences
	EnablePlainFastPath bool // literal patterns skip the backtracker

	// MaxLiterals caps the alternative prefixes extracted per pattern.
	// Two or more surviving prefixes are searched with Aho-Corasick.
	MaxLiterals int

	// Logger gets debug records for every compilation when non-nil.
	Logger *log.Logger
}

// DefaultConfig enables both fast paths with a 256-entry LRU cache and
// no expiration.
func DefaultConfig() Config {
	return Config{
		CacheSize:           256,
		CacheStrategy:       StrategyLRU,
		EnablePrefilter:     true,
		EnablePlainFastPath: true,
		MaxLiterals:         64,
	}
}

const (
	maxCacheSize   = 1_000_000
	maxLiteralsCap = 1_000
)

// Validate reports the first out-of-range field as a *ConfigError.
// CacheStrategy is matched case-insensitively.
func (c Config) Validate() error {
	bad := func(field, format string, args ...any) error {
		return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
	}
	switch {
	case c.CacheSize < 1 || c.CacheSize > maxCacheSize:
		return bad("CacheSize", "%d outside [1, %d]", c.CacheSize, maxCacheSize)
	case !knownStrategy(c.CacheStrategy):
		return bad("CacheStrategy", "%q is not LRU, LFU, ARC or SIMPLE", c.CacheStrategy)
	case c.CacheExpiration < 0:
		return bad("CacheExpiration", "negative duration %s", c.CacheExpiration)
	case c.MaxLiterals < 1 || c.MaxLiterals > maxLiteralsCap:
		return bad("MaxLiterals", "%d outside [1, %d]", c.MaxLiterals, maxLiteralsCap)
	}
	return nil
}

func knownStrategy(name string) bool {
	switch strings.ToUpper(name) {
	case StrategyLRU, StrategyLFU, StrategyARC, StrategySimple:
		return true
	}
	return false
}

// ConfigError names the offending Config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("ustring: config field %s: %s", e.Field, e.Reason)
}
