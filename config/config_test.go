package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.Oracle.Timeout != 20*time.Second || cfg.RateLimit.Requests != 30 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Oracle.APIKey != "" {
		t.Errorf("expected no oracle key")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServiceName != "saas-forecast" {
		t.Errorf("unexpected service name %q", cfg.ServiceName)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, `
http_addr: ":9000"
log_level: debug
oracle:
  model: gpt-test
  timeout: 5s
cache:
  redis_url: redis://localhost:6379/0
  ttl: 1h
rate_limit:
  requests: 10
  window: 30s
`)
	t.Setenv("FORECAST_HTTP_ADDR", ":9100")
	t.Setenv("FORECAST_ORACLE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-from-openai-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPAddr != ":9100" {
		t.Errorf("env should override file, got %q", cfg.HTTPAddr)
	}
	if cfg.Oracle.Model != "gpt-test" || cfg.Oracle.Timeout != 5*time.Second {
		t.Errorf("unexpected oracle config: %+v", cfg.Oracle)
	}
	if cfg.Oracle.APIKey != "sk-from-openai-env" {
		t.Errorf("expected OPENAI_API_KEY fallback, got %q", cfg.Oracle.APIKey)
	}
	if cfg.Cache.TTL != time.Hour || cfg.RateLimit.Window != 30*time.Second || cfg.RateLimit.Requests != 10 {
		t.Errorf("unexpected cache/rate config: %+v %+v", cfg.Cache, cfg.RateLimit)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"no requests", "rate_limit:\n  requests: 0\n", "rate_limit.requests"},
		{"zero oracle timeout", "oracle:\n  timeout: 0s\n", "oracle.timeout"},
		{"negative oracle timeout", "oracle:\n  timeout: -1s\n", "oracle.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("FORECAST_ORACLE_TIMEOUT", "")
			path := writeFile(t, tt.content)

			_, err := Load(path)
			var cfgErr *Error
			if !errors.As(err, &cfgErr) || cfgErr.Field != tt.field {
				t.Fatalf("expected %s error, got %v", tt.field, err)
			}
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeFile(t, "http_addr: [unterminated\n")

	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestParseLevel(t *testing.T) {

	if _, err := ParseLevel("verbose"); err == nil {
		t.Errorf("expected error for unknown level")
	}
	if lvl, err := ParseLevel("WARN"); err != nil || lvl.String() != "WARN" {
		t.Errorf("unexpected level %v %v", lvl, err)
	}
}
