package schemastore

import (
	"errors"
	"strings"
	"time"
)

// ErrRemoteURLRequired indicates the module was configured without a canonical schema URL.
var ErrRemoteURLRequired = errors.New("schemastore config: remote schema URL is required")

// ErrCacheKeyRequired indicates the logical cache key was blanked out.
var ErrCacheKeyRequired = errors.New("schemastore config: cache key is required")

var ErrHTTPTimeoutInvalid = errors.New("schemastore config: http timeout must be zero or positive")
var ErrLoggingLevelInvalid = errors.New("schemastore config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("schemastore config: logging format is invalid")

// Config aggregates the wiring options for the schema store module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	// CacheDir pins the cache root. Empty means the user-level cache
	// directory scoped to the application name.
	CacheDir string
	// CacheKey is the logical name the schema is cached under.
	CacheKey string
	// RemoteURL is the canonical schema endpoint used as a fallback when
	// the cache cannot be loaded.
	RemoteURL string
	// HTTPTimeout bounds the remote fetch. Zero keeps the default.
	HTTPTimeout time.Duration
	Logging     LoggingConfig
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Enabled   bool
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns the baseline configuration used by New.
func DefaultConfig() Config {
	return Config{
		CacheKey:    "schema.json",
		HTTPTimeout: 30 * time.Second,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for internally inconsistent values.
func (c Config) Validate() error {
	if strings.TrimSpace(c.RemoteURL) == "" {
		return ErrRemoteURLRequired
	}
	if strings.TrimSpace(c.CacheKey) == "" {
		return ErrCacheKeyRequired
	}
	if c.HTTPTimeout < 0 {
		return ErrHTTPTimeoutInvalid
	}
	if !validLoggingLevel(c.Logging.Level) {
		return ErrLoggingLevelInvalid
	}
	if !validLoggingFormat(c.Logging.Format) {
		return ErrLoggingFormatInvalid
	}
	return nil
}

func validLoggingLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func validLoggingFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json", "console", "pretty":
		return true
	default:
		return false
	}
}
