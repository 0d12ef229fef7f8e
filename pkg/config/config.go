// Package config loads pipeline configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Import ImportConfig
	Log    LogConfig
}

// ImportConfig controls statement ingestion limits and behavior.
type ImportConfig struct {
	// MaxFileSize is the largest statement file accepted, in bytes.
	// Enforced by the caller before the pipeline runs.
	MaxFileSize int64
	// Currency is the ISO-4217 code statements are denominated in.
	Currency string
	// FuzzySuggest enables fuzzy category suggestions for transactions
	// that fall through to the fallback category.
	FuzzySuggest bool
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level string // debug, info, warn, error
}

const defaultMaxFileSize = 10 << 20 // 10MB

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Import: ImportConfig{
			MaxFileSize:  getEnvAsInt64("IMPORT_MAX_FILE_SIZE", defaultMaxFileSize),
			Currency:     getEnv("IMPORT_CURRENCY", "GHS"),
			FuzzySuggest: getEnvAsBool("IMPORT_FUZZY_SUGGEST", false),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.Import.MaxFileSize <= 0 {
		return nil, fmt.Errorf("IMPORT_MAX_FILE_SIZE must be positive, got %d", cfg.Import.MaxFileSize)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
