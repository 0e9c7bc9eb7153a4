// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	RedisAddr   string // Empty disables the shared cache tier
	Timezone    string
	CORSOrigins []string
	LogLevel    slog.Level
	BackendURL  string
	AI          *AIConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "5000"),
		RedisAddr:   redisAddr(getEnv("REDIS_URI", "")),
		Timezone:    getEnv("DAILY_TIMEZONE", "Local"),
		CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:    parseLevel(getEnv("LOG_LEVEL", "info")),
		BackendURL:  strings.TrimRight(getEnv("BACKEND_URL", "http://127.0.0.1:5000"), "/"),
		AI:          DefaultAIConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.AI == nil || c.AI.TimeoutMS <= 0 {
		return fmt.Errorf("GEMINI_TIMEOUT_MS must be > 0")
	}
	if c.AI.Model == "" {
		return fmt.Errorf("GEMINI_MODEL cannot be empty")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("DAILY_TIMEZONE: %w", err)
	}
	return nil
}

// Location resolves the time zone used for the daily key.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// redisAddr strips the redis:// scheme the way deployment env files tend to carry it.
func redisAddr(uri string) string {
	return strings.TrimPrefix(strings.TrimSpace(uri), "redis://")
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
