package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg, err := FromViper(newTestViper())
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Verify server defaults
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 45*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

	// Verify upstream defaults
	assert.Equal(t, "https://linkedin-data-api.p.rapidapi.com", cfg.Upstream.BaseURL)
	assert.Equal(t, "linkedin-data-api.p.rapidapi.com", cfg.Upstream.HostHeader)
	assert.Equal(t, 30*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 1200*time.Millisecond, cfg.Upstream.MinInterval)
	assert.Equal(t, 3, cfg.Upstream.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Upstream.BackoffBase)

	// Verify credential default
	assert.Equal(t, "", cfg.RapidAPI.Key)

	// Verify CORS defaults
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)

	// Verify inbound limiter defaults
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5.0, cfg.RateLimit.RPS)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.Equal(t, int64(64), cfg.Concurrency.MaxInflight)

	// Verify logging defaults
	assert.Equal(t, "info", cfg.Logging.Level)

	// Verify metrics defaults
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9090, cfg.Metrics.Port)

	// Verify health defaults
	assert.True(t, cfg.Health.Enabled)
}

func TestFromViperOverrides(t *testing.T) {
	v := newTestViper()
	v.Set("server.port", 9000)
	v.Set("server.host", "0.0.0.0")
	v.Set("logging.level", "debug")
	v.Set("upstream.min_interval", "2s")

	cfg, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2*time.Second, cfg.Upstream.MinInterval)

	// Verify non-overridden values remain default
	assert.Equal(t, 9090, cfg.Metrics.Port)
	assert.Equal(t, 3, cfg.Upstream.MaxAttempts)
}

func TestFromViperEnvOverrides(t *testing.T) {
	t.Setenv("LINKEDIN_BACKEND_SERVER_PORT", "3000")
	t.Setenv("LINKEDIN_BACKEND_LOGGING_LEVEL", "warn")
	t.Setenv("RAPIDAPI_KEY", "env-secret")

	// Mirrors the wiring in cmd initConfig: prefix, replacer, automatic
	// env, and the bare RAPIDAPI_KEY binding for the default credential.
	v := viper.New()
	v.SetEnvPrefix("LINKEDIN_BACKEND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	require.NoError(t, v.BindEnv("rapidapi.key", "RAPIDAPI_KEY"))
	SetDefaults(v)

	cfg, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "env-secret", cfg.RapidAPI.Key)
}

func TestFromViperDurationParsing(t *testing.T) {
	v := newTestViper()
	v.Set("server.read_timeout", "45s")
	v.Set("server.shutdown_timeout", "5m")
	v.Set("upstream.min_interval", "1.2s")

	cfg, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 1200*time.Millisecond, cfg.Upstream.MinInterval)
}

func TestFromViperSplitsOriginList(t *testing.T) {
	v := newTestViper()
	v.Set("cors.allowed_origins", "https://app.example.com,https://staging.example.com")

	cfg, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"https://app.example.com", "https://staging.example.com"},
		cfg.CORS.AllowedOrigins)
}

func TestFromViperValidation(t *testing.T) {
	cases := []struct {
		name    string
		key     string
		value   any
		wantErr string
	}{
		{"port out of range", "server.port", 70000, "server.port"},
		{"missing base url", "upstream.base_url", "", "upstream.base_url"},
		{"relative base url", "upstream.base_url", "not-a-url", "upstream.base_url"},
		{"zero attempts", "upstream.max_attempts", 0, "upstream.max_attempts"},
		{"zero upstream timeout", "upstream.timeout", "0s", "upstream.timeout"},
		{"limiter without rps", "ratelimit.rps", 0, "ratelimit.rps"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := newTestViper()
			v.Set(tc.key, tc.value)

			_, err := FromViper(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestGetConfig(t *testing.T) {
	cfg, err := FromViper(newTestViper())
	require.NoError(t, err)

	retrieved := GetConfig()
	require.NotNil(t, retrieved)
	assert.Equal(t, cfg.Server.Port, retrieved.Server.Port)
	assert.Equal(t, cfg.Upstream.MinInterval, retrieved.Upstream.MinInterval)
}

func TestConfigReload(t *testing.T) {
	v := newTestViper()
	cfg1, err := FromViper(v)
	require.NoError(t, err)
	initialPort := cfg1.Server.Port

	v.Set("server.port", initialPort+1000)

	cfg2, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, initialPort+1000, cfg2.Server.Port)

	// GetConfig follows the reload
	assert.Equal(t, cfg2.Server.Port, GetConfig().Server.Port)
}
