// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-analyzer/internal/logger"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// NLP providers.
const (
	NLPProse = "prose"
	NLPRules = "rules"
	NLPNone  = "none"
)

// CacheConfig selects where parse results are memoized.
type CacheConfig struct {
	Backend  string `json:"backend" yaml:"backend"`     // memory, redis or none
	RedisURL string `json:"redis_url" yaml:"redis_url"` // used by the redis backend
	TTL      string `json:"ttl" yaml:"ttl"`             // Go duration, e.g. "24h"
	Prefix   string `json:"prefix" yaml:"prefix"`
}

// DatabaseConfig configures the analysis history store.
type DatabaseConfig struct {
	URL           string `json:"url" yaml:"url"`
	RetentionDays int    `json:"retention_days" yaml:"retention_days"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port             string   `json:"port" yaml:"port"`
	AllowedOrigins   []string `json:"allowed_origins" yaml:"allowed_origins"`
	AnalyzePerMinute int      `json:"analyze_per_minute" yaml:"analyze_per_minute"`
	BatchPerMinute   int      `json:"batch_per_minute" yaml:"batch_per_minute"`
	MaxBodyBytes     int64    `json:"max_body_bytes" yaml:"max_body_bytes"`
}

// AnalysisConfig tunes the analyzer.
type AnalysisConfig struct {
	NLP              string `json:"nlp" yaml:"nlp"` // prose, rules or none
	MaxFeatures      int    `json:"max_features" yaml:"max_features"`
	TopTerms         int    `json:"top_terms" yaml:"top_terms"`
	BatchConcurrency int    `json:"batch_concurrency" yaml:"batch_concurrency"`
	MaxBatchSize     int    `json:"max_batch_size" yaml:"max_batch_size"`
}

// Config is the full application configuration.
type Config struct {
	Log      logger.Config  `json:"log" yaml:"log"`
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
	Database DatabaseConfig `json:"database" yaml:"database"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
}

// ValidationError reports an invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error: '%s' %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("config error: '%s' %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: logger.Config{Level: "info", Format: logger.FormatJSON},
		Cache: CacheConfig{
			Backend: CacheMemory,
			TTL:     "24h",
			Prefix:  "resume:parse:",
		},
		Database: DatabaseConfig{RetentionDays: 30},
		Server: ServerConfig{
			Port:             "8080",
			AllowedOrigins:   []string{"*"},
			AnalyzePerMinute: 10,
			BatchPerMinute:   5,
			MaxBodyBytes:     20 << 20,
		},
		Analysis: AnalysisConfig{
			NLP:              NLPRules,
			MaxFeatures:      5000,
			TopTerms:         10,
			BatchConcurrency: 4,
			MaxBatchSize:     50,
		},
	}
}

// Load reads a YAML or JSON file, chosen by extension, over the defaults.
// Fields missing from the file keep their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", ext)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables. Malformed numeric
// values are reported rather than ignored.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Cache.RedisURL = v
		if c.Cache.Backend == CacheMemory {
			c.Cache.Backend = CacheRedis
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		c.Cache.TTL = v
	}
	if v := os.Getenv("RESUME_NLP"); v != "" {
		c.Analysis.NLP = v
	}
	if v := os.Getenv("BATCH_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ValidationError{Field: "BATCH_CONCURRENCY", Message: "must be an integer", Cause: err}
		}
		c.Analysis.BatchConcurrency = n
	}
	return nil
}

// CacheTTL parses Cache.TTL. Validate guarantees it parses.
func (c *Config) CacheTTL() time.Duration {
	return GetDuration(c.Cache.TTL, 24*time.Hour)
}

// GetDuration parses s, returning fallback when s is empty or malformed.
func GetDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheMemory, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return &ValidationError{Field: "cache.redis_url", Message: "is required for the redis backend"}
		}
	default:
		return &ValidationError{Field: "cache.backend", Message: fmt.Sprintf("must be one of memory, redis, none; got %q", c.Cache.Backend)}
	}

	if c.Cache.TTL != "" {
		d, err := time.ParseDuration(c.Cache.TTL)
		if err != nil {
			return &ValidationError{Field: "cache.ttl", Message: "is not a valid duration", Cause: err}
		}
		if d <= 0 {
			return &ValidationError{Field: "cache.ttl", Message: "must be positive"}
		}
	}

	switch c.Analysis.NLP {
	case NLPProse, NLPRules, NLPNone:
	default:
		return &ValidationError{Field: "analysis.nlp", Message: fmt.Sprintf("must be one of prose, rules, none; got %q", c.Analysis.NLP)}
	}

	if c.Analysis.MaxFeatures < 1 {
		return &ValidationError{Field: "analysis.max_features", Message: "must be positive"}
	}
	if c.Analysis.TopTerms < 1 {
		return &ValidationError{Field: "analysis.top_terms", Message: "must be positive"}
	}
	if c.Analysis.BatchConcurrency < 1 {
		return &ValidationError{Field: "analysis.batch_concurrency", Message: "must be at least 1"}
	}
	if c.Analysis.MaxBatchSize < 1 {
		return &ValidationError{Field: "analysis.max_batch_size", Message: "must be at least 1"}
	}

	if c.Server.AnalyzePerMinute < 0 || c.Server.BatchPerMinute < 0 {
		return &ValidationError{Field: "server", Message: "rate limits must be non-negative"}
	}
	if c.Database.RetentionDays < 0 {
		return &ValidationError{Field: "database.retention_days", Message: "must be non-negative"}
	}
	return nil
}
