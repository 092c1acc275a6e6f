// Package ustring provides UTF-8 aware string functions and Lua-style
// pattern matching over Unicode code points.
//
// Every index in this package is a 1-based code-point index, and negative
// indexes count from the end of the text, as in Lua's string library.
// Patterns use the Lua dialect with '%' as the escape symbol:
//
//	.       any code point
//	%a %c %d %g %l %p %s %u %w %x   ASCII classes (letters, controls, digits,
//	        printable, lowercase, punctuation, spaces, uppercase,
//	        alphanumerics, hex digits)
//	%x      the literal x for any other x
//	[set]   bracketed class with ranges; [^set] negates it
//	* + - ?  greedy, greedy one-or-more, lazy and optional repetition
//	^ $     anchors, only as the first and last symbol
//	( ) ()  captures and position captures
//	%1-%9   backreferences
//	%bxy    balanced span from x to the matching y
//
// Basic usage:
//
//	m, err := ustring.Find("abc123", "%d+", 1, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(m.Start, m.End) // 4 6
//
//	out, n, _ := ustring.GSub("hello world", "o", "0", -1)
//	fmt.Println(out, n) // hell0 w0rld 2
//
// Compiled patterns are cached per pattern text in a bounded cache, see
// Configure. Malformed text is reported with the codec error kinds;
// a failed match is never an error.
package ustring

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/coregx/ustring/meta"
)

//nolint:gochecknoglobals // process-wide pattern cache
var engines atomic.Pointer[meta.Cache]

func init() {
	c, err := meta.NewCache(meta.DefaultConfig())
	if err != nil {
		panic(err)
	}
	engines.Store(c)
}

// DefaultConfig returns the default engine configuration.
//
// Users can customize this and pass it to Configure.
//
// Example:
//
//	config := ustring.DefaultConfig()
//	config.CacheSize = 4096
//	config.CacheStrategy = meta.StrategyARC
//	err := ustring.Configure(config)
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// Configure replaces the package-level pattern caches. Patterns compiled
// before the call keep working; later calls compile into the new caches.
func Configure(config meta.Config) error {
	c, err := meta.NewCache(config)
	if err != nil {
		return err
	}
	engines.Store(c)
	return nil
}

// CacheStats reports the size and hit counters of the pattern caches.
func CacheStats() []meta.CacheStats {
	return engines.Load().Stats()
}

// Collector exports the pattern cache statistics to Prometheus. It follows
// the caches across Configure calls.
func Collector() prometheus.Collector {
	return meta.NewCollector(engines.Load)
}
