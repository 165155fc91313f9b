package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://localhost/test
`)

	cfg := LoadConfigFromFile(path)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, DefaultJWTSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 30, cfg.Auth.LockoutMinutes)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 30*time.Minute, cfg.Auth.LockoutDuration())
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
auth:
  jwt_secret: file-secret
  token_ttl_hours: 1
  max_login_attempts: 3
  lockout_minutes: 10
`)

	cfg := LoadConfigFromFile(path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 3, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 10*time.Minute, cfg.Auth.LockoutDuration())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_URL", "postgres://env/db")

	path := writeConfig(t, `
auth:
  jwt_secret: file-secret
database:
  url: postgres://file/db
`)

	cfg := LoadConfigFromFile(path)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "postgres://env/db", cfg.Database.DSN)
}

func TestLoadConfig_MissingFilePanics(t *testing.T) {
	assert.Panics(t, func() {
		LoadConfigFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}
