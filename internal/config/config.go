package config

import (
	"os"
	"strconv"

	"salesboard/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Upload UploadConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// UploadConfig holds upload handling limits
type UploadConfig struct {
	MaxBytes int64
}

const defaultMaxUploadMB = 50

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	maxMB := getEnvIntOrDefault("MAX_UPLOAD_MB", defaultMaxUploadMB)
	if maxMB <= 0 {
		return nil, errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Upload: UploadConfig{
			MaxBytes: int64(maxMB) * 1024 * 1024,
		},
	}, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
