package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config is the complete runtime configuration. Values come from viper's
// merged view of defaults, an optional YAML config file, and environment
// variables (LINKEDIN_BACKEND_* plus the bare RAPIDAPI_KEY).
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Upstream    UpstreamConfig    `mapstructure:"upstream"`
	RapidAPI    RapidAPIConfig    `mapstructure:"rapidapi"`
	CORS        CORSConfig        `mapstructure:"cors"`
	RateLimit   RateLimitConfig   `mapstructure:"ratelimit"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Health      HealthConfig      `mapstructure:"health"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// UpstreamConfig controls the outbound side: where the RapidAPI gateway
// lives and how the dispatcher paces and retries calls against it.
type UpstreamConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	HostHeader  string        `mapstructure:"host_header"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MinInterval time.Duration `mapstructure:"min_interval"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}

// RapidAPIConfig holds the process-wide default credential. A per-request
// x-rapidapi-key header always takes precedence over it.
type RapidAPIConfig struct {
	Key string `mapstructure:"key"`
}

// CORSConfig controls which origins may call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig contains the inbound per-client rate limit. It protects
// the single outbound gate from unbounded queue growth; the outbound pacing
// itself lives under upstream.min_interval.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

// ConcurrencyConfig caps simultaneously served requests.
type ConcurrencyConfig struct {
	MaxInflight int64 `mapstructure:"max_inflight"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level controls the minimum log level
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	// Enabled controls whether metrics are exposed
	Enabled bool `mapstructure:"enabled"`

	// Port is the dedicated metrics endpoint port (0 picks a free port)
	Port int `mapstructure:"port"`
}

// HealthConfig contains health check configuration
type HealthConfig struct {
	// Enabled controls whether health endpoints are exposed
	Enabled bool `mapstructure:"enabled"`
}

// Validate rejects configurations the server cannot run with. It returns the
// first problem found; callers surface it as a configuration error rather
// than starting half-broken.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port %d is out of range", c.Metrics.Port)
	}

	base := strings.TrimSpace(c.Upstream.BaseURL)
	if base == "" {
		return errors.New("upstream.base_url is required")
	}
	if parsed, err := url.Parse(base); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("upstream.base_url %q is not an absolute URL", base)
	}
	if c.Upstream.Timeout <= 0 {
		return errors.New("upstream.timeout must be positive")
	}
	if c.Upstream.MinInterval < 0 {
		return errors.New("upstream.min_interval cannot be negative")
	}
	if c.Upstream.MaxAttempts < 1 {
		return errors.New("upstream.max_attempts must be at least 1")
	}
	if c.Upstream.BackoffBase < 0 {
		return errors.New("upstream.backoff_base cannot be negative")
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RPS <= 0 {
			return errors.New("ratelimit.rps must be positive when the limiter is enabled")
		}
		if c.RateLimit.Burst < 1 {
			return errors.New("ratelimit.burst must be at least 1 when the limiter is enabled")
		}
	}

	if c.Concurrency.MaxInflight < 0 {
		return errors.New("concurrency.max_inflight cannot be negative")
	}

	return nil
}
