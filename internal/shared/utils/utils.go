package utils

import (
	"os"
	"strconv"
)

// GetEnvVariable reads an environment variable with a fallback.
func GetEnvVariable(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ParseIntOrDefault coerces a query parameter to an int, falling back
// to def on absent or invalid input. Negative values also fall back.
func ParseIntOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
