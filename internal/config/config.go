package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	RedisPass   string
	JWTSecret   string
	TokenTTL    time.Duration
	LogLevel    string
}

// Load builds the configuration from the environment. The JWT signing secret has no
// default and must be provided.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	ttl := 24 * time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", raw, err)
		}
		ttl = parsed
	}

	return &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		DatabaseURL: databaseURL(),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:   secret,
		TokenTTL:    ttl,
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
	}, nil
}

// databaseURL returns DATABASE_URL if set, otherwise assembles one from the
// individual POSTGRES_* variables for local development.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnvOrDefault("POSTGRES_HOST", "localhost")
	port := getEnvOrDefault("POSTGRES_PORT", "5432")
	user := getEnvOrDefault("POSTGRES_USER", "postgres")
	password := getEnvOrDefault("POSTGRES_PASSWORD", "")
	dbname := getEnvOrDefault("POSTGRES_DB", "traveljournal")
	sslmode := getEnvOrDefault("POSTGRES_SSLMODE", "disable")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		user, password, host, port, dbname, sslmode)
}

// getEnvOrDefault returns the environment variable value or a default value if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
