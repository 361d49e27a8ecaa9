package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig returns the default configuration with the per-minute limits
// for analysis and batch requests.
func NewConfig(analyzePerMinute, batchPerMinute int) *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(analyzePerMinute, batchPerMinute),
	}
}

// ApplyEnv overrides the configuration from RATE_LIMIT_* environment
// variables. Unparseable values are ignored.
func (c *Config) ApplyEnv() {
	c.Enabled = getEnvBool("RATE_LIMIT_ENABLED", c.Enabled)
	c.DefaultLimit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", c.DefaultLimit)
	c.DefaultWindow = getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", c.DefaultWindow)
	c.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", c.CleanupInterval)
	for ip := range parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")) {
		c.Whitelist[ip] = true
	}
	for ip := range parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")) {
		c.Blacklist[ip] = true
	}
}

// DefaultEndpointConfigs returns the endpoint-specific limits. Analysis
// endpoints are the expensive ones; parsing is cheaper and gets more room.
func DefaultEndpointConfigs(analyzePerMinute, batchPerMinute int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/analyze", Method: "POST", Limit: analyzePerMinute, Window: time.Minute},
		{Path: "/batch", Method: "POST", Limit: batchPerMinute, Window: time.Minute},
		{Path: "/parse", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/bullets", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
