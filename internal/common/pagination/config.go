// Package pagination parses and validates the limit/offset query contract
// shared by every storage backend.
package pagination

import (
	"os"
	"strconv"
)

// Config holds pagination configuration settings.
type Config struct {
	MaxLimit int // Maximum allowed items per request (typically 100)
}

// DefaultConfig returns the default pagination configuration.
func DefaultConfig() Config {
	return Config{MaxLimit: 100}
}

// LoadFromEnv loads pagination config from environment variables.
// PAGINATION_MAX_LIMIT overrides the maximum items per request.
// Falls back to DefaultConfig() if the variable is not set or invalid.
func LoadFromEnv() Config {
	return Config{
		MaxLimit: getEnvAsInt("PAGINATION_MAX_LIMIT", DefaultConfig().MaxLimit),
	}
}

func getEnvAsInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 1 {
		return defaultValue
	}
	return val
}
