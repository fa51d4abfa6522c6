package config

import (
	"os"
	"strconv"
)

const (
	defaultMaxFileSize      = 50 * 1024 * 1024 // 50MB
	defaultProgressInterval = 2048
)

// Config holds the application configuration
type Config struct {
	Port        string
	Environment string
	MaxFileSize int64 // in bytes
	// ProgressInterval is the number of compressed bytes between progress updates
	ProgressInterval int64
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("GO_ENV", "development"),
		MaxFileSize:      getEnvInt("MAX_FILE_SIZE", defaultMaxFileSize),
		ProgressInterval: getEnvInt("PROGRESS_INTERVAL", defaultProgressInterval),
	}

	return cfg
}

// IsProduction reports whether the service runs with GO_ENV=production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses a positive integer variable, falling back to the default
// when it is unset or malformed
func getEnvInt(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
