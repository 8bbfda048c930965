// Package config loads server settings from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/gamenight/backend/internal/auth"
)

// Config holds all runtime settings for the server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// DBPath is the sqlite database file.
	DBPath string

	// JWTSecret signs session tokens. Required outside development.
	JWTSecret string

	// TokenTTL is the session lifetime.
	TokenTTL time.Duration

	// CatalogBaseURL and CatalogAPIKey configure the external games
	// catalog used for search.
	CatalogBaseURL string
	CatalogAPIKey  string
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present; missing files are not
// an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:           getEnv("ADDR", ":8080"),
		DBPath:         getEnv("DB_PATH", "./data/gamenight.db"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenTTL:       auth.TokenTTL,
		CatalogBaseURL: getEnv("CATALOG_URL", "https://api.rawg.io/api"),
		CatalogAPIKey:  getEnv("CATALOG_KEY", ""),
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", ttl, err)
		}
		cfg.TokenTTL = d
	}

	if cfg.JWTSecret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			return nil, fmt.Errorf("JWT_SECRET is required in release mode")
		}
		cfg.JWTSecret = "dev-secret-change-me"
	}

	return cfg, nil
}
