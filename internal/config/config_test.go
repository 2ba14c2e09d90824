package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("POSTGRES_HOST", "")
	t.Setenv("POSTGRES_PORT", "")
	t.Setenv("POSTGRES_USER", "")
	t.Setenv("POSTGRES_PASSWORD", "")
	t.Setenv("POSTGRES_DB", "")
	t.Setenv("POSTGRES_SSLMODE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "postgres://postgres:@localhost:5432/traveljournal?sslmode=disable", cfg.DatabaseURL)
}

func TestLoadExplicitValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://app:pw@db:5432/journal?sslmode=require")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("PORT", "9091")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://app:pw@db:5432/journal?sslmode=require", cfg.DatabaseURL)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "9091", cfg.Port)
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "tomorrow")

	_, err := Load()
	require.Error(t, err)
}
