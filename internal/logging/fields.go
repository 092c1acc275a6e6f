// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError   = "error"
	FieldCommand = "command"
	FieldInput   = "input"
	FieldConfig  = "config"

	// Pattern fields.
	FieldPattern  = "pattern"
	FieldPlain    = "plain"
	FieldStrategy = "strategy"
	FieldCaptures = "captures"
	FieldPrefixes = "prefixes"

	// Cache fields.
	FieldCache     = "cache"
	FieldCacheSize = "size"
	FieldHits      = "hits"
	FieldMisses    = "misses"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
