// Package config handles configuration loading for the inventory service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const minSessionSecretLength = 32

// Config holds all configuration for the inventory service.
type Config struct {
	DBDriver       string
	DatabaseURL    string
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	SessionSecret  string
	SessionTTL     time.Duration
	AuditLogPath   string
	Port           string
	Environment    string
	LogLevel       string
	AllowedOrigins []string
	CookieDomain   string
	CookieSecure   bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		DBDriver:       getEnv("DB_DRIVER", "postgres"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		SessionTTL:     parseDuration(getEnv("SESSION_TTL", "12h"), 12*time.Hour),
		AuditLogPath:   getEnv("AUDIT_LOG_PATH", "historial.csv"),
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:8080")),
		CookieDomain:   getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:   parseBool(getEnv("COOKIE_SECURE", "false")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want postgres or sqlite)", c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if len(c.SessionSecret) < minSessionSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSessionSecretLength)
	}
	return nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return b
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
