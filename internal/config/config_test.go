package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  port: 9090\nauth:\n  secret: s3cret\n"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "token", cfg.Auth.CookieName)
	assert.Equal(t, 5, cfg.Shortener.AliasLength)
	assert.Equal(t, "https", cfg.Shortener.DefaultScheme)
	assert.False(t, cfg.Shortener.SkipURLCheck)
	assert.EqualValues(t, 5, cfg.Database.ConnectRetries)
}

func TestLoadSecretFromEnv(t *testing.T) {
	t.Setenv(SecretEnv, "from-env")
	cfg, err := Load(writeConfig(t, "auth:\n  secret: from-file\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.Secret)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [not, a, map"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:8080/", cfg.Shortener.BaseURL)
	assert.Equal(t, "./logs/app.log", cfg.Log.File)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv(SecretEnv, "")

	_, err := Load(writeConfig(t, "database:\n  driver: sqlite\n"))
	assert.ErrorIs(t, err, ErrMissingSecret)

	t.Setenv(SecretEnv, "from-env")
	cfg, err := Load(writeConfig(t, "database:\n  driver: sqlite\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.Secret)
}

func TestLoadRejectsPlaceholderSecretInProduction(t *testing.T) {
	t.Setenv(SecretEnv, "")

	_, err := Load(writeConfig(t, "app:\n  mode: production\nauth:\n  secret: change-me\n"))
	assert.ErrorIs(t, err, ErrPlaceholderSecret)

	_, err = Load(writeConfig(t, "app:\n  mode: development\nauth:\n  secret: change-me\n"))
	assert.NoError(t, err)
}

func TestLoadRejectsAliasLengthBeyondColumn(t *testing.T) {
	t.Setenv(SecretEnv, "")

	_, err := Load(writeConfig(t, "auth:\n  secret: s\nshortener:\n  alias_length: 11\n"))
	assert.Error(t, err)

	cfg, err := Load(writeConfig(t, "auth:\n  secret: s\nshortener:\n  alias_length: 10\n"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Shortener.AliasLength)
}
