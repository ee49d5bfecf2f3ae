package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names. A .env file in the working directory is
// loaded first (without overriding variables already set in the process),
// matching how the API base address is supplied at deployment time.
const (
	EnvAPIBaseURL     = "STOREFRONT_API_BASE_URL"
	EnvDatabasePath   = "STOREFRONT_DB_PATH"
	EnvRequestTimeout = "STOREFRONT_HTTP_TIMEOUT"
)

// parseEnv overlays Config with values from the process environment.
func parseEnv(cfg *Config) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvDatabasePath); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
