package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the client
type Config struct {
	API struct {
		BaseURL string
		// Timeout of zero means no client-side timeout.
		Timeout time.Duration
	}

	Session struct {
		DBPath string
	}

	Log struct {
		Level string
		File  string
	}

	Trades struct {
		PageSize           int
		ResolveConcurrency int
	}
}

// Load loads configuration from the environment, reading a .env file first
// when one exists.
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{}

	config.API.BaseURL = getEnv("POKETRADE_API_URL", "https://localhost:8000")
	config.API.Timeout = getEnvAsDuration("POKETRADE_API_TIMEOUT", 0)

	config.Session.DBPath = getEnv("POKETRADE_SESSION_DB", "poketrade.sqlite3")

	config.Log.Level = getEnv("POKETRADE_LOG_LEVEL", "info")
	config.Log.File = getEnv("POKETRADE_LOG_FILE", "poketrade.log")

	config.Trades.PageSize = getEnvAsInt("POKETRADE_PAGE_SIZE", 20)
	config.Trades.ResolveConcurrency = getEnvAsInt("POKETRADE_RESOLVE_CONCURRENCY", 8)

	return config
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets a positive integer environment variable or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("5s") or plain seconds ("5")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d >= 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
