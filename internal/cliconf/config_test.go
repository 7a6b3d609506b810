package cliconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("VENICE_API_KEY", "")
	t.Setenv("VENICE_BASE_URL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VENICE_API_KEY", "env-key")
	t.Setenv("VENICE_BASE_URL", "http://localhost:9999")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "http://localhost:9999", cfg.BaseURL)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("VENICE_API_KEY", "")
	t.Setenv("VENICE_BASE_URL", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	want := Config{
		APIKey:  "sk-test",
		BaseURL: "http://localhost:8080",
		Model:   "llama-3.3-70b",
		Timeout: 12.5,
	}
	require.NoError(t, Save(want, path))

	// Key material stays owner-only.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Setenv("VENICE_API_KEY", "")
	t.Setenv("VENICE_BASE_URL", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is [not toml"), 0o600))

	cfg, err := Load(path)
	assert.Error(t, err)
	// Defaults still come back so the caller can proceed.
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigDir_EnvOverride(t *testing.T) {
	t.Setenv("VENICE_CONFIG_DIR", "/tmp/custom-venice")
	assert.Equal(t, "/tmp/custom-venice", ConfigDir())
	assert.Equal(t, filepath.Join("/tmp/custom-venice", "config.toml"), ConfigFile())
}
