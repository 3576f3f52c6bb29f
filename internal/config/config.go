package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds the runtime settings of the server
type Config struct {
	Port        string
	RedisURL    string
	DatabaseURL string
	SessionTTL  time.Duration
	// MaxSessions caps the in-memory store, 0 for the store's default
	MaxSessions   int
	LogLevel      zapcore.Level
	Env           string
	SecureCookies bool
}

// Development reports whether the server runs in development mode
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return ":" + c.Port
}

// LoadEnvFiles loads environment variables from .env files. A missing file
// is reported through the found flag, not as an error.
func LoadEnvFiles(files ...string) (found bool, err error) {
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("load env file: %w", err)
	}
	return true, nil
}

// FromEnv reads the configuration from the process environment
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		RedisURL:    os.Getenv("REDIS_URL"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Env:         getEnv("APP_ENV", "production"),
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if ttl < 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL: %s is negative", ttl)
	}
	cfg.SessionTTL = ttl

	maxSessions, err := strconv.Atoi(getEnv("MAX_SESSIONS", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_SESSIONS: %w", err)
	}
	if maxSessions < 0 {
		return nil, fmt.Errorf("invalid MAX_SESSIONS: %d is negative", maxSessions)
	}
	cfg.MaxSessions = maxSessions

	level, err := zapcore.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	cfg.SecureCookies = getEnv("SECURE_COOKIES", "false") == "true"

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
