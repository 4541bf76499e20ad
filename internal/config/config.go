// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server    ServerConfig
	Generator GeneratorConfig
	Rate      RateLimitConfig
	Security  SecurityConfig
	Logging   LoggingConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Activity  ActivityConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing the response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`

	// MaxBodyBytes caps export request bodies (default: 10MB)
	MaxBodyBytes int64 `env:"SERVER_MAX_BODY_BYTES" default:"10485760"`
}

// GeneratorConfig holds record generation settings.
type GeneratorConfig struct {
	// UniverseSize is the number of base records per region and seed (default: 100)
	UniverseSize int `env:"GENERATOR_UNIVERSE_SIZE" default:"100"`

	// PageSize is the number of records per page (default: 20)
	PageSize int `env:"GENERATOR_PAGE_SIZE" default:"20"`

	// SeededErrors makes corruption reproducible from the seed (default: true).
	// When false, errors are drawn from the process-wide random source.
	SeededErrors bool `env:"GENERATOR_SEEDED_ERRORS" default:"true"`

	// MaxConcurrent is the maximum number of parallel generate/export requests (default: 16)
	MaxConcurrent int `env:"GENERATOR_MAX_CONCURRENT" default:"16"`

	// MaxWaitTime is how long to wait for a generation slot (default: 5s)
	MaxWaitTime time.Duration `env:"GENERATOR_MAX_WAIT_TIME" default:"5s"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 300)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"300"`

	// Burst is the number of requests allowed at once (default: 30)
	Burst int `env:"RATE_LIMIT_BURST" default:"30"`

	// ExportLimit is requests per minute for export endpoints (default: 30)
	ExportLimit int `env:"RATE_LIMIT_EXPORT" default:"30"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey protects /api routes with X-API-Key (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted API keys
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// DatabaseConfig holds the optional activity log database.
// When URL is empty the activity log is kept in memory.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 1)
	MinConns int `env:"DB_MIN_CONNS" default:"1"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// Enabled reports whether a database is configured.
func (c *DatabaseConfig) Enabled() bool { return c.URL != "" }

// CacheConfig holds universe cache settings.
// When RedisURL is empty an in-process cache is used.
type CacheConfig struct {
	// RedisURL is a redis:// connection string (optional)
	RedisURL string `env:"REDIS_URL"`

	// TTL is how long a generated universe stays cached (default: 10m)
	TTL time.Duration `env:"CACHE_TTL" default:"10m"`

	// MaxEntries bounds the in-process cache (default: 256)
	MaxEntries int `env:"CACHE_MAX_ENTRIES" default:"256"`
}

// ActivityConfig holds activity log retention settings.
type ActivityConfig struct {
	// RetentionDays is days to keep activity entries (default: 30)
	RetentionDays int `env:"ACTIVITY_RETENTION_DAYS" default:"30"`

	// CheckInterval is how often to run the purge job (default: 24h)
	CheckInterval time.Duration `env:"ACTIVITY_CHECK_INTERVAL" default:"24h"`

	// MemoryCapacity bounds the in-memory log used without a database (default: 1000)
	MemoryCapacity int `env:"ACTIVITY_MEMORY_CAPACITY" default:"1000"`
}

// Retention returns the retention window as a duration.
func (c *ActivityConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
