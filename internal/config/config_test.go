package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "SUPABASE_URL", "SUPABASE_URL_ANON_KEY", "DATA_FILE",
		"REQUEST_TIMEOUT", "BREAKER_FAILURES", "BREAKER_COOLDOWN", "JWT_SECRET",
		"TOKEN_TTL", "CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/db.json", cfg.DataFile)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, uint32(3), cfg.BreakerFailures)
	assert.Equal(t, 30*time.Second, cfg.BreakerCooldown)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.False(t, cfg.HasRemoteStore())
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("SUPABASE_URL_ANON_KEY", "anon")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	t.Setenv("BREAKER_FAILURES", "5")
	t.Setenv("CORS_ORIGINS", "https://rentals.example.com, http://localhost:3000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.HasRemoteStore())
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, uint32(5), cfg.BreakerFailures)
	assert.Equal(t, []string{"https://rentals.example.com", "http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoadConfigErrors(t *testing.T) {
	clearEnv(t)

	t.Run("half supabase config", func(t *testing.T) {
		t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
		t.Setenv("SUPABASE_URL_ANON_KEY", "")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("REQUEST_TIMEOUT", "soon")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("production needs secret", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("JWT_SECRET", "")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
