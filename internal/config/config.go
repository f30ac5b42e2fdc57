// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the service.
type Config struct {
	// HTTPAddr is the listen address for the API server.
	HTTPAddr string

	// DataPath is the SQLite file backing the record slots.
	DataPath string

	// LogLevel: debug, info, warn, error.
	LogLevel string

	// Development enables console log encoding.
	Development bool

	// VoiceTokenSecret signs voice session tokens.
	VoiceTokenSecret string

	// VoiceTokenTTL is the lifetime of a voice session token.
	VoiceTokenTTL time.Duration

	// JournalCompressThreshold is the snapshot size in bytes above which
	// journal entries are compressed.
	JournalCompressThreshold int
}

// Load reads configuration from .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:                 getEnv("HTTP_ADDR", ":8080"),
		DataPath:                 getEnv("DATA_PATH", "simrs.db"),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		Development:              getEnv("APP_ENV", "development") == "development",
		VoiceTokenSecret:         getEnv("VOICE_TOKEN_SECRET", "dev-voice-secret"),
		VoiceTokenTTL:            getEnvDuration("VOICE_TOKEN_TTL", 15*time.Minute),
		JournalCompressThreshold: getEnvInt("JOURNAL_COMPRESS_THRESHOLD", 10*1024),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if c.DataPath == "" {
		return fmt.Errorf("DATA_PATH must not be empty")
	}
	if c.VoiceTokenTTL <= 0 {
		return fmt.Errorf("VOICE_TOKEN_TTL must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
