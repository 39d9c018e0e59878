package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	os.Unsetenv("PORT")
	os.Unsetenv("CORS_ORIGINS")
	t.Cleanup(func() { Set(nil) })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "./uploads", cfg.UploadDir)
	assert.Len(t, cfg.CORSOrigins, 3)
	assert.Same(t, cfg, Get())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9000")
	t.Setenv("CACHE_TTL", "1m")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Cleanup(func() { Set(nil) })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParsingConfig))
}
