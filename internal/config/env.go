package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// envVarPrefix is the prefix for all ustr environment variables.
const envVarPrefix = "USTR_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeDuration
)

type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"CACHE_SIZE":       {field: "cache.size", typ: envTypeInt},
	"CACHE_STRATEGY":   {field: "cache.strategy", typ: envTypeString},
	"CACHE_EXPIRATION": {field: "cache.expiration", typ: envTypeDuration},
	"PREFILTER":        {field: "cache.prefilter", typ: envTypeBool},
	"PLAIN_FAST_PATH":  {field: "cache.plain_fast_path", typ: envTypeBool},
	"MAX_LITERALS":     {field: "cache.max_literals", typ: envTypeInt},
	"CASEMAP_FILE":     {field: "casemap.file", typ: envTypeString},
	"LOG_LEVEL":        {field: "log.level", typ: envTypeString},
	"LOG_FORMAT":       {field: "log.format", typ: envTypeString},
}

// LoadFromEnv applies USTR_* environment overrides to cfg.
func LoadFromEnv(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	for suffix, mapping := range envMappings {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}
	return nil
}

func applyEnvValue(cfg *Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %q", envVar, value)
		}
		cfg.Cache.Expiration = Duration(d)
		return nil
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

func setStringField(cfg *Config, field, value string) error {
	switch field {
	case "cache.strategy":
		cfg.Cache.Strategy = value
	case "casemap.file":
		cfg.Casemap.File = value
	case "log.level":
		cfg.Log.Level = value
	case "log.format":
		cfg.Log.Format = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *Config, field string, value bool) error {
	switch field {
	case "cache.prefilter":
		cfg.Cache.Prefilter = value
	case "cache.plain_fast_path":
		cfg.Cache.PlainFastPath = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *Config, field string, value int) error {
	switch field {
	case "cache.size":
		cfg.Cache.Size = value
	case "cache.max_literals":
		cfg.Cache.MaxLiterals = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}
