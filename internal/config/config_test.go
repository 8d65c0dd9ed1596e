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
		"ENVIRONMENT", "SERVER_PORT", "SERVER_HOST", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
		"SESSION_SECRET", "SESSION_COOKIE_NAME", "SESSION_MAX_AGE", "SESSION_COOKIE_SECURE",
		"UPLOAD_DIR", "UPLOAD_MAX_BYTES", "UPLOAD_ALLOWED_EXTENSIONS", "UPLOAD_IMAGE_EXTENSIONS",
		"LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr())
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Equal(t, int64(16<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, []string{"png", "jpg", "jpeg", "gif", "pdf", "doc", "docx", "txt"}, cfg.Upload.AllowedExtensions)
	assert.Equal(t, []string{"png", "jpg", "jpeg", "gif"}, cfg.Upload.ImageExtensions)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("SESSION_MAX_AGE", "2h")
	t.Setenv("UPLOAD_DIR", "/tmp/files")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("UPLOAD_ALLOWED_EXTENSIONS", " .PNG, txt ,, md ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.Session.MaxAge)
	assert.Equal(t, "/tmp/files", cfg.Upload.Dir)
	assert.Equal(t, int64(1024), cfg.Upload.MaxBytes)
	assert.Equal(t, []string{"png", "txt", "md"}, cfg.Upload.AllowedExtensions)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("SESSION_MAX_AGE", "forever")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 365*24*time.Hour, cfg.Session.MaxAge)
}

func TestLoadRejectsDefaultSecretInProduction(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SESSION_SECRET", "a-real-secret")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadRejectsNonPositiveUploadLimit(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPLOAD_MAX_BYTES", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestLANAddressPrefersHostIP(t *testing.T) {
	t.Setenv("HOST_IP", "192.0.2.10")

	assert.Equal(t, "192.0.2.10", LANAddress())
}
