// Package config loads the ustr configuration file.
//
// The file is YAML with three sections:
//
//	cache:
//	  size: 256
//	  strategy: lru
//	  expiration: 10m
//	  prefilter: true
//	  plain_fast_path: true
//	  max_literals: 64
//	casemap:
//	  file: /etc/ustr/case.yaml
//	log:
//	  level: info
//	  format: text
//
// Missing keys keep their defaults. Environment variables prefixed with
// USTR_ override file values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/coregx/ustring/casemap"
	"github.com/coregx/ustring/meta"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the decoded configuration file.
type Config struct {
	Cache   Cache   `yaml:"cache"`
	Casemap Casemap `yaml:"casemap"`
	Log     Log     `yaml:"log"`

	// dir is the directory of the loaded file; relative paths resolve
	// against it.
	dir string
}

// Cache configures the compiled-pattern caches and the engine.
type Cache struct {
	Size          int      `yaml:"size"`
	Strategy      string   `yaml:"strategy"`
	Expiration    Duration `yaml:"expiration,omitempty"`
	Prefilter     bool     `yaml:"prefilter"`
	PlainFastPath bool     `yaml:"plain_fast_path"`
	MaxLiterals   int      `yaml:"max_literals"`
}

// Casemap selects the case-mapping table. An empty File keeps the
// embedded table.
type Casemap struct {
	File string `yaml:"file,omitempty"`
}

// Log configures the CLI logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Duration is a time.Duration written as a Go duration string ("10m").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	engine := meta.DefaultConfig()
	return &Config{
		Cache: Cache{
			Size:          engine.CacheSize,
			Strategy:      strings.ToLower(engine.CacheStrategy),
			Expiration:    Duration(engine.CacheExpiration),
			Prefilter:     engine.EnablePrefilter,
			PlainFastPath: engine.EnablePlainFastPath,
			MaxLiterals:   engine.MaxLiterals,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the file at path, applies environment overrides and
// validates the result. An empty path yields the defaults with
// environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		if err := LoadFromEnv(cfg); err != nil {
			return nil, err
		}
		return cfg, cfg.Validate()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	if err := LoadFromEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Parse decodes a configuration from r on top of the defaults. Unknown
// keys are rejected. Parse does not validate.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Engine(nil).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	if _, err := c.Formatter(); err != nil {
		return err
	}
	return nil
}

// Engine converts the cache section to an engine configuration that logs
// through logger.
func (c *Config) Engine(logger *log.Logger) meta.Config {
	return meta.Config{
		CacheSize:           c.Cache.Size,
		CacheStrategy:       c.Cache.Strategy,
		CacheExpiration:     time.Duration(c.Cache.Expiration),
		EnablePrefilter:     c.Cache.Prefilter,
		EnablePlainFastPath: c.Cache.PlainFastPath,
		MaxLiterals:         c.Cache.MaxLiterals,
		Logger:              logger,
	}
}

// Formatter returns the log formatter named by log.format.
func (c *Config) Formatter() (log.Formatter, error) {
	switch strings.ToLower(c.Log.Format) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	}
	return log.TextFormatter, fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
}

// CaseTable loads the table named by casemap.file. It returns nil when no
// file is configured.
func (c *Config) CaseTable() (*casemap.Table, error) {
	if c.Casemap.File == "" {
		return nil, nil
	}
	path := c.Casemap.File
	if !filepath.IsAbs(path) && c.dir != "" {
		path = filepath.Join(c.dir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open case table: %w", err)
	}
	defer f.Close()

	t, err := casemap.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ToYAML serializes the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}
