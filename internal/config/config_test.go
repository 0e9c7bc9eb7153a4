package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if prev, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, prev) })
		}
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "PORT", "REDIS_URI", "DAILY_TIMEZONE", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL",
		"BACKEND_URL", "GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_TIMEOUT_MS", "GEMINI_BASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %q, want empty", cfg.RedisAddr)
	}
	if cfg.AI.Timeout() != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.AI.Timeout())
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.AI.IsEnabled() || cfg.AI.Model != DefaultModel {
		t.Errorf("AI = %+v, want disabled %s", cfg.AI, DefaultModel)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.BackendURL != "http://127.0.0.1:5000" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("REDIS_URI", "redis://cache:6379")
	t.Setenv("DAILY_TIMEZONE", "UTC")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("BACKEND_URL", "http://backend:5000/")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("GEMINI_TIMEOUT_MS", "2500")
	t.Setenv("GEMINI_API_KEY", "k")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RedisAddr != "cache:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.BackendURL != "http://backend:5000" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if !cfg.AI.IsEnabled() || cfg.AI.Model != "gemini-2.0-flash" || cfg.AI.Timeout() != 2500*time.Millisecond {
		t.Errorf("AI = %+v", cfg.AI)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Errorf("Location() = %v, %v", loc, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"empty port", func(c *Config) { c.Port = "" }, true},
		{"zero timeout", func(c *Config) { c.AI.TimeoutMS = 0 }, true},
		{"empty model", func(c *Config) { c.AI.Model = "" }, true},
		{"bad zone", func(c *Config) { c.Timezone = "Mars/Olympus" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Port:     "5000",
				Timezone: "UTC",
				AI:       &AIConfig{Model: DefaultModel, TimeoutMS: 1000},
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestModelEndpoint(t *testing.T) {
	c := &AIConfig{BaseURL: "https://example.test/v1beta/models"}
	want := "https://example.test/v1beta/models/gemini-1.5-flash:generateContent"
	if got := c.ModelEndpoint(DefaultModel); got != want {
		t.Errorf("ModelEndpoint() = %q, want %q", got, want)
	}
}
