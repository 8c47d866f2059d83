package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const repoConfigs = "../../../configs"

func loadDefaults(t *testing.T) *Config {
	t.Helper()

	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	return cfg
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg := loadDefaults(t)

	assert.Equal(t, "quote-roulette", cfg.App.Name)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)

	assert.Equal(t, "data/quotes.db", cfg.Database.DSN)
	assert.Equal(t, DefaultDatabaseMaxOpenConns, cfg.Database.MaxOpenConns)
	assert.Equal(t, 200*time.Millisecond, cfg.Database.SlowThreshold)

	assert.Equal(t, "quote_session", cfg.Auth.CookieName)
	assert.Equal(t, 14*24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, DefaultLoginRateLimit, cfg.Auth.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.Auth.RateLimit.Window)

	assert.Zero(t, cfg.Selection.Seed)
	assert.Equal(t, DefaultRetentionDays, cfg.Retention.Days)
	assert.Zero(t, cfg.Retention.Interval)

	assert.Equal(t, DefaultClientCircuitHalfOpenLimit, cfg.Client.CircuitBreaker.HalfOpenLimit)
	assert.Equal(t, DefaultTransportIdleConnTimeout, cfg.Client.Transport.IdleConnTimeout)
	assert.False(t, cfg.Services.Quote.Enabled)
	assert.Equal(t, "quotable", cfg.Services.Quote.Name)

	require.NoError(t, cfg.Validate())
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "trace")
	t.Setenv("APP_SELECTION_SEED", "42")
	t.Setenv("APP_DATABASE_MAX_OPEN_CONNS", "2")
	t.Setenv("APP_AUTH_RATE_LIMIT_BURST", "9")
	t.Setenv("APP_SERVICES_QUOTE_ENABLED", "true")
	t.Setenv("APP_RETENTION_INTERVAL", "6h")

	cfg := loadDefaults(t)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "trace", cfg.Log.Level)
	assert.Equal(t, uint64(42), cfg.Selection.Seed)
	assert.Equal(t, 2, cfg.Database.MaxOpenConns)
	assert.Equal(t, 9, cfg.Auth.RateLimit.Burst)
	assert.True(t, cfg.Services.Quote.Enabled)
	assert.Equal(t, 6*time.Hour, cfg.Retention.Interval)
	require.NoError(t, cfg.Validate())
}

func TestEnvKeyMapper(t *testing.T) {
	mapKey := envKeyMapper([]string{"database.max_open_conns", "server.port"})

	assert.Equal(t, "database.max_open_conns", mapKey("APP_DATABASE_MAX_OPEN_CONNS"))
	assert.Equal(t, "server.port", mapKey("APP_SERVER_PORT"))
	assert.Equal(t, "custom.thing", mapKey("APP_CUSTOM_THING"))
}

func TestLoadFrom_ProfileLayering(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte(
		"server:\n  port: 7000\nretention:\n  days: 14\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "staging.yaml"), []byte(
		"server:\n  port: 7100\n"), 0o600))

	cfg, err := LoadFrom(dir, "staging")
	require.NoError(t, err)

	assert.Equal(t, 7100, cfg.Server.Port)
	assert.Equal(t, 14, cfg.Retention.Days)

	cfg, err = LoadFrom(dir, "missing")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoadFrom_BadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte("server: [port"), 0o600))

	_, err := LoadFrom(dir, "")
	require.ErrorContains(t, err, "loading base config")
}

func TestLoadFrom_RepositoryProfiles(t *testing.T) {
	tests := []struct {
		profile string
		check   func(t *testing.T, cfg *Config)
	}{
		{"local", func(t *testing.T, cfg *Config) {
			assert.Equal(t, "debug", cfg.Log.Level)
			assert.Equal(t, "pretty", cfg.Log.Format)
		}},
		{"test", func(t *testing.T, cfg *Config) {
			assert.Equal(t, "test", cfg.App.Environment)
			assert.Equal(t, 1, cfg.Database.MaxOpenConns)
			assert.Equal(t, "silent", cfg.Database.LogLevel)
			assert.Equal(t, 4, cfg.Auth.BcryptCost)
		}},
		{"prod", func(t *testing.T, cfg *Config) {
			assert.Equal(t, "prod", cfg.App.Environment)
			assert.True(t, cfg.Auth.SecureCookie)
			assert.True(t, cfg.Log.File.Enabled)
			assert.True(t, cfg.Telemetry.Enabled)
			assert.True(t, cfg.Services.Quote.Enabled)
			assert.Equal(t, 24*time.Hour, cfg.Retention.Interval)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			cfg, err := LoadFrom(repoConfigs, tt.profile)
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())

			assert.Equal(t, DefaultRetentionDays, cfg.Retention.Days)
			tt.check(t, cfg)
		})
	}
}
