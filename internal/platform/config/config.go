// Package config loads the quote-roulette configuration with koanf and
// validates it with go-playground/validator.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Defaults used when neither a config file nor the environment sets a value.
const (
	DefaultServerPort     = 8080
	DefaultMaxRequestSize = 1 << 20

	DefaultClientRetryMaxAttempts     = 3
	DefaultClientRetryMultiplier      = 2.0
	DefaultClientRetryJitterFactor    = 0.25
	DefaultClientCircuitMaxFailures   = 5
	DefaultClientCircuitHalfOpenLimit = 3

	DefaultTransportMaxIdleConns        = 100
	DefaultTransportMaxIdleConnsPerHost = 10
	DefaultTransportIdleConnTimeout     = 90 * time.Second

	DefaultLogFileMaxSizeMB  = 100
	DefaultLogFileMaxBackups = 3
	DefaultLogFileMaxAgeDays = 28

	DefaultDatabaseMaxOpenConns = 4
	DefaultBcryptCost           = 10
	DefaultLoginRateLimit       = 10
	DefaultLoginRateBurst       = 5

	// DefaultRetentionDays is how long view history is kept.
	DefaultRetentionDays = 30

	// DefaultImportConcurrency bounds parallel upstream fetches during import.
	DefaultImportConcurrency = 4
)

// DefaultDir is where Load looks for base.yaml and the profile files.
const DefaultDir = "configs"

// envPrefix marks environment variables that override config keys.
const envPrefix = "APP_"

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Database  DatabaseConfig  `koanf:"database"  validate:"required"`
	Auth      AuthConfig      `koanf:"auth"      validate:"required"`
	Selection SelectionConfig `koanf:"selection"`
	Retention RetentionConfig `koanf:"retention" validate:"required"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
	Services  ServicesConfig  `koanf:"services"  validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"       validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"   validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"    validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
	Insecure     bool    `koanf:"insecure"`
}

// DatabaseConfig contains SQLite store settings.
type DatabaseConfig struct {
	// DSN is a SQLite path or URI, e.g. "data/quotes.db" or
	// "file:quotes?mode=memory&cache=shared".
	DSN           string        `koanf:"dsn"            validate:"required"`
	MaxOpenConns  int           `koanf:"max_open_conns" validate:"required,min=1,max=64"`
	LogLevel      string        `koanf:"log_level"      validate:"required,oneof=silent error warn info"`
	SlowThreshold time.Duration `koanf:"slow_threshold" validate:"min=0"`
}

// AuthConfig contains session and login settings.
type AuthConfig struct {
	CookieName   string          `koanf:"cookie_name"   validate:"required"`
	SessionTTL   time.Duration   `koanf:"session_ttl"   validate:"required,min=1m"`
	SecureCookie bool            `koanf:"secure_cookie"`
	BcryptCost   int             `koanf:"bcrypt_cost"   validate:"required,min=4,max=31"`
	RateLimit    RateLimitConfig `koanf:"rate_limit"    validate:"required"`
}

// RateLimitConfig bounds login and registration attempts per client IP.
type RateLimitConfig struct {
	Requests int           `koanf:"requests" validate:"required,min=1"`
	Window   time.Duration `koanf:"window"   validate:"required,min=1s"`
	Burst    int           `koanf:"burst"    validate:"required,min=1"`
}

// SelectionConfig contains random selection settings.
type SelectionConfig struct {
	// Seed fixes the random source. Zero seeds from runtime entropy.
	Seed uint64 `koanf:"seed"`
}

// RetentionConfig contains view history retention settings.
type RetentionConfig struct {
	Days int `koanf:"days" validate:"required,min=1"`

	// Interval runs the purge in-process on a ticker. Zero disables it.
	Interval time.Duration `koanf:"interval" validate:"min=0"`
}

// ClientConfig contains HTTP client settings for downstream services.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig contains retry settings for HTTP clients.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"         validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"      validate:"required,min=1s"`
}

// ServicesConfig contains configuration for downstream services.
type ServicesConfig struct {
	Quote ServiceEndpointConfig `koanf:"quote" validate:"required"`
}

// ServiceEndpointConfig contains configuration for a downstream service endpoint.
type ServiceEndpointConfig struct {
	Enabled bool   `koanf:"enabled"`
	BaseURL string `koanf:"base_url" validate:"required,url"`
	Name    string `koanf:"name"     validate:"required"`

	// ImportConcurrency bounds parallel fetches when importing quotes.
	ImportConcurrency int `koanf:"import_concurrency" validate:"required,min=1,max=32"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quote-roulette",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quote-roulette",
		"telemetry.sampling_rate": 1.0,
		"telemetry.insecure":      true,

		"database.dsn":            "data/quotes.db",
		"database.max_open_conns": DefaultDatabaseMaxOpenConns,
		"database.log_level":      "warn",
		"database.slow_threshold": "200ms",

		"auth.cookie_name":         "quote_session",
		"auth.session_ttl":         "336h",
		"auth.secure_cookie":       false,
		"auth.bcrypt_cost":         DefaultBcryptCost,
		"auth.rate_limit.requests": DefaultLoginRateLimit,
		"auth.rate_limit.window":   "1m",
		"auth.rate_limit.burst":    DefaultLoginRateBurst,

		"selection.seed": 0,

		"retention.days":     DefaultRetentionDays,
		"retention.interval": "0s",

		"client.timeout":                           "30s",
		"client.retry.max_attempts":                DefaultClientRetryMaxAttempts,
		"client.retry.initial_interval":            "100ms",
		"client.retry.max_interval":                "5s",
		"client.retry.multiplier":                  DefaultClientRetryMultiplier,
		"client.retry.jitter_factor":               DefaultClientRetryJitterFactor,
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "30s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       DefaultTransportIdleConnTimeout.String(),

		"services.quote.enabled":            false,
		"services.quote.base_url":           "https://api.quotable.io",
		"services.quote.name":               "quotable",
		"services.quote.import_concurrency": DefaultImportConcurrency,
	}
}

// Load reads configuration from DefaultDir. See LoadFrom.
func Load(profile string) (*Config, error) {
	return LoadFrom(DefaultDir, profile)
}

// LoadFrom layers configuration, later sources winning:
//
//	defaults, dir/base.yaml, dir/{profile}.yaml, APP_* environment variables
//
// Missing files are skipped. An environment variable maps onto the config
// key whose path, joined with underscores, equals the variable name, so
// APP_DATABASE_MAX_OPEN_CONNS sets database.max_open_conns.
func LoadFrom(dir, profile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if err := loadFileIfExists(k, filepath.Join(dir, "base.yaml")); err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	if profile != "" {
		if err := loadFileIfExists(k, filepath.Join(dir, profile+".yaml")); err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper(k.Keys())), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKeyMapper resolves APP_ variables against the known keys. Unknown
// names fall back to treating every underscore as a separator.
func envKeyMapper(keys []string) func(string) string {
	known := make(map[string]string, len(keys))
	for _, key := range keys {
		known[strings.ReplaceAll(key, ".", "_")] = key
	}

	return func(name string) string {
		name = strings.ToLower(strings.TrimPrefix(name, envPrefix))
		if key, ok := known[name]; ok {
			return key
		}

		return strings.ReplaceAll(name, "_", ".")
	}
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
