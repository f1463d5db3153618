// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	Analytics AnalyticsConfig
	Cache     CacheConfig
	Browser   BrowserConfig
	Export    ExportConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8000
}

// FetchConfig controls page and endpoint fetching.
type FetchConfig struct {
	// Timeout is the deadline for a single request.
	Timeout time.Duration // default: 30s

	// UserAgent overrides the default browser user agent.
	UserAgent string

	// RateLimitBase is the fixed wait before each request.
	RateLimitBase time.Duration // default: 1s

	// RateLimitJitter bounds the random delay added to the base wait.
	RateLimitJitter time.Duration // default: 500ms

	// UseBrowser fetches the report page through the headless browser
	// pool instead of plain HTTP.
	UseBrowser bool // default: false
}

// AnalyticsConfig controls the coordinate fallback path.
type AnalyticsConfig struct {
	// MaxURLs bounds how many candidate endpoints are fetched per scan.
	MaxURLs int // default: 10
}

// CacheConfig controls the redis scan-result cache.
type CacheConfig struct {
	Enabled   bool          // default: false
	RedisAddr string        // default: "localhost:6379"
	TTL       time.Duration // default: 1h
}

// BrowserConfig controls the headless browser pool.
type BrowserConfig struct {
	PoolSize int // default: 2
}

// ExportConfig controls file output.
type ExportConfig struct {
	OutputDir string // default: "output"
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Host: envString("SERVER_HOST", "0.0.0.0"),
			Port: envInt("PORT", 8000),
		},
		Fetch: FetchConfig{
			Timeout:         envDuration("FETCH_TIMEOUT", 30*time.Second),
			UserAgent:       envString("FETCH_USER_AGENT", ""),
			RateLimitBase:   envDuration("RATE_LIMIT_BASE", time.Second),
			RateLimitJitter: envDuration("RATE_LIMIT_JITTER", 500*time.Millisecond),
			UseBrowser:      envBool("FETCH_USE_BROWSER", false),
		},
		Analytics: AnalyticsConfig{
			MaxURLs: envInt("ANALYTICS_MAX_URLS", 10),
		},
		Cache: CacheConfig{
			Enabled:   envBool("CACHE_ENABLED", false),
			RedisAddr: envString("REDIS_ADDR", "localhost:6379"),
			TTL:       envDuration("CACHE_TTL", time.Hour),
		},
		Browser: BrowserConfig{
			PoolSize: envInt("BROWSER_POOL_SIZE", 2),
		},
		Export: ExportConfig{
			OutputDir: envString("OUTPUT_DIR", "output"),
		},
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
