// Package config provides the typed configuration layer. Viper owns the raw
// key space (defaults, optional config file, environment); this package owns
// the decode into Go types, validation, and thread-safe access to the
// current configuration.
package config

import (
	"fmt"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

var (
	// appConfig holds the current application configuration
	appConfig *Config
	configMu  sync.RWMutex
)

// SetDefaults registers every configuration key with its default value.
// Registering all keys matters beyond the values themselves: viper only
// surfaces environment overrides for keys it knows about.
func SetDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	// Worst-case handler latency spans gate waits, backoff sleeps and the
	// upstream timeout, so the write timeout sits well above read.
	v.SetDefault("server.write_timeout", "45s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Logging defaults
	v.SetDefault("logging.level", "info")

	// Upstream gateway defaults
	v.SetDefault("upstream.base_url", "https://linkedin-data-api.p.rapidapi.com")
	v.SetDefault("upstream.host_header", "linkedin-data-api.p.rapidapi.com")
	v.SetDefault("upstream.timeout", "30s")
	v.SetDefault("upstream.min_interval", "1.2s")
	v.SetDefault("upstream.max_attempts", 3)
	v.SetDefault("upstream.backoff_base", "1s")

	// Credential default; normally supplied via RAPIDAPI_KEY
	v.SetDefault("rapidapi.key", "")

	// CORS defaults
	v.SetDefault("cors.allowed_origins", []string{"*"})

	// Inbound rate limit defaults
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.rps", 5.0)
	v.SetDefault("ratelimit.burst", 10)

	// Concurrency defaults
	v.SetDefault("concurrency.max_inflight", 64)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)

	// Health check defaults
	v.SetDefault("health.enabled", true)
}

// FromViper decodes viper's merged settings into a typed, validated Config
// and installs it as the current configuration. Safe to call again on
// reload.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToFloat64HookFunc(),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	setConfig(cfg)
	return cfg, nil
}

// GetConfig returns the current application configuration (thread-safe)
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

// setConfig updates the current configuration (thread-safe)
func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}
