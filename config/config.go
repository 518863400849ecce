// Package config loads service settings from defaults, an optional YAML
// file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceName string `yaml:"service_name"`
	HTTPAddr    string `yaml:"http_addr" env:"FORECAST_HTTP_ADDR"`
	LogLevel    string `yaml:"log_level" env:"FORECAST_LOG_LEVEL"`

	Oracle    OracleConfig    `yaml:"oracle"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	OTelEndpoint string `yaml:"otel_endpoint" env:"FORECAST_OTEL_ENDPOINT"`
}

type OracleConfig struct {
	APIKey  string        `yaml:"api_key" env:"FORECAST_ORACLE_API_KEY"`
	URL     string        `yaml:"url" env:"FORECAST_ORACLE_URL"`
	Model   string        `yaml:"model" env:"FORECAST_ORACLE_MODEL"`
	Timeout time.Duration `yaml:"timeout" env:"FORECAST_ORACLE_TIMEOUT"`
}

type CacheConfig struct {
	RedisURL string        `yaml:"redis_url" env:"FORECAST_REDIS_URL"`
	TTL      time.Duration `yaml:"ttl" env:"FORECAST_CACHE_TTL"`
}

type RateLimitConfig struct {
	Requests int           `yaml:"requests" env:"FORECAST_RATE_LIMIT"`
	Window   time.Duration `yaml:"window" env:"FORECAST_RATE_WINDOW"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ServiceName: "saas-forecast",
		HTTPAddr:    ":8080",
		LogLevel:    "info",
		Oracle: OracleConfig{
			Timeout: 20 * time.Second,
		},
		Cache: CacheConfig{
			TTL: 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Requests: 30,
			Window:   time.Minute,
		},
	}
}

// Load reads path (if non-empty and present) and applies environment
// overrides. OPENAI_API_KEY is honoured when no oracle key is set.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config file: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Oracle.APIKey == "" {
		cfg.Oracle.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would make the service unusable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return &Error{Field: "http_addr", Message: "must not be empty"}
	}
	if c.Oracle.Timeout <= 0 {
		return &Error{Field: "oracle.timeout", Message: "must be positive"}
	}
	if c.RateLimit.Requests <= 0 {
		return &Error{Field: "rate_limit.requests", Message: "must be positive"}
	}
	if c.RateLimit.Window <= 0 {
		return &Error{Field: "rate_limit.window", Message: "must be positive"}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return &Error{Field: "log_level", Message: err.Error()}
	}
	return nil
}

// Error represents a configuration error.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}
