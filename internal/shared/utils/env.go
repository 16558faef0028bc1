package utils

import (
	"os"
	"strconv"
	"time"
)

// GetEnv returns the variable's value, or fallback when it is unset or empty.
func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func GetEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func GetEnvBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

// GetEnvDuration parses values such as "150ms" or "5s".
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return d
}
