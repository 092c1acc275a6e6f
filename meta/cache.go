package meta

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bluele/gcache"
	"github.com/charmbracelet/log"

	"github.com/coregx/ustring/internal/logging"
)

// Cache names as reported by CacheStats and the metrics collector.
const (
	PatternCache = "pattern"
	PlainCache   = "plain"
)

// Cache compiles patterns on demand and keeps the compiled engines in two
// bounded caches, one keyed by pattern text and one by plain text.
// Compilation errors are returned to the caller and never cached.
// A Cache is safe for concurrent use.
type Cache struct {
	config   Config
	patterns gcache.Cache
	plains   gcache.Cache
	logger   *log.Logger
}

// CacheStats describes one of the caches.
type CacheStats struct {
	Name   string
	Size   int
	Hits   uint64
	Misses uint64
}

// NewCache creates a cache from a validated configuration.
func NewCache(config Config) (*Cache, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Cache{config: config, logger: config.Logger}
	if c.logger == nil {
		c.logger = logging.Discard()
	}

	c.patterns = c.build(func(key any) (any, error) {
		return c.load(key.(string), false)
	})
	c.plains = c.build(func(key any) (any, error) {
		return c.load(key.(string), true)
	})
	return c, nil
}

func (c *Cache) build(loader gcache.LoaderFunc) gcache.Cache {
	gc := gcache.New(c.config.CacheSize)
	switch strings.ToUpper(c.config.CacheStrategy) {
	case StrategyLFU:
		gc = gc.LFU()
	case StrategyARC:
		gc = gc.ARC()
	case StrategySimple:
		gc = gc.Simple()
	default:
		gc = gc.LRU()
	}
	if c.config.CacheExpiration > 0 {
		gc = gc.Expiration(c.config.CacheExpiration)
	}
	return gc.LoaderFunc(loader).Build()
}

func (c *Cache) load(src string, plain bool) (*Engine, error) {
	var (
		e   *Engine
		err error
	)
	if plain {
		e, err = CompilePlain(src, c.config)
	} else {
		e, err = Compile(src, c.config)
	}
	if err != nil {
		c.logger.Debug("compile failed",
			logging.FieldPattern, src, logging.FieldPlain, plain, logging.FieldError, err)
		return nil, err
	}
	c.logger.Debug("compiled",
		logging.FieldPattern, src,
		logging.FieldPlain, plain,
		logging.FieldStrategy, e.Strategy(),
		logging.FieldCaptures, e.NumCaptures(),
		logging.FieldPrefixes, e.Prefixes().Len())
	return e, nil
}

// Get returns the engine for pattern src, compiling it on a miss.
func (c *Cache) Get(src string) (*Engine, error) {
	return get(c.patterns, src)
}

// GetPlain returns the engine matching text literally.
func (c *Cache) GetPlain(text string) (*Engine, error) {
	return get(c.plains, text)
}

func get(gc gcache.Cache, key string) (*Engine, error) {
	v, err := gc.Get(key)
	if err != nil {
		if errors.Is(err, gcache.KeyNotFoundError) {
			return nil, fmt.Errorf("pattern cache lost %q: %w", key, err)
		}
		return nil, err
	}
	return v.(*Engine), nil
}

// Config returns the configuration the cache was built with.
func (c *Cache) Config() Config {
	return c.config
}

// Purge drops every cached engine. Counters are kept.
func (c *Cache) Purge() {
	c.patterns.Purge()
	c.plains.Purge()
}

// Stats reports the size and hit counters of both caches.
func (c *Cache) Stats() []CacheStats {
	return []CacheStats{
		stats(PatternCache, c.patterns),
		stats(PlainCache, c.plains),
	}
}

func stats(name string, gc gcache.Cache) CacheStats {
	return CacheStats{
		Name:   name,
		Size:   gc.Len(true),
		Hits:   gc.HitCount(),
		Misses: gc.MissCount(),
	}
}
