package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRE", "")
	t.Setenv("UPLOAD_MAX_SIZE", "")
	t.Setenv("PORT", "")
	t.Setenv("CLIENT_URLS", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "5000", cfg.Port)
	require.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	require.Equal(t, int64(50<<20), cfg.MaxUploadSize)
	require.Empty(t, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRE", "24h")
	t.Setenv("UPLOAD_MAX_SIZE", "1048576")
	t.Setenv("CLIENT_URLS", " http://a.example , http://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Equal(t, int64(1<<20), cfg.MaxUploadSize)
	require.Equal(t, "http://a.example,http://b.example", cfg.AllowedOrigins)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	t.Setenv("JWT_EXPIRE", "soon")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_EXPIRE", "")
	t.Setenv("UPLOAD_MAX_SIZE", "-1")
	_, err = Load()
	require.Error(t, err)
}
