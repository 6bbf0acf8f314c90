package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobs")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/jobs", cfg.DBUrl)
	assert.Equal(t, 60, cfg.RateLimitWindowSeconds)
	assert.True(t, cfg.DBAutoSchema)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_MAX_CONNS", "7")
	t.Setenv("DB_AUTO_SCHEMA", "false")
	t.Setenv("RATE_LIMIT_THRESHOLD", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example/, ,https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 7, cfg.DBMaxConns)
	assert.False(t, cfg.DBAutoSchema)
	assert.Equal(t, 100, cfg.RateLimitThreshold)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}
