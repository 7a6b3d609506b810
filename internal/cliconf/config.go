// Package cliconf loads the CLI's configuration file and environment
// overrides. The library itself takes all configuration through options;
// this package only serves the venice command.
package cliconf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

const appName = "venice"

// Config is the on-disk CLI configuration.
type Config struct {
	APIKey  string  `toml:"api_key"`
	BaseURL string  `toml:"base_url"`
	Model   string  `toml:"model"`
	Timeout float64 `toml:"timeout"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Model:   "llama-3.3-70b",
		Timeout: 30.0,
	}
}

// ConfigDir returns the directory holding the config file. The
// VENICE_CONFIG_DIR environment variable overrides the XDG default.
func ConfigDir() string {
	if v := os.Getenv("VENICE_CONFIG_DIR"); v != "" {
		return v
	}
	return filepath.Join(xdg.ConfigHome, appName)
}

// ConfigFile returns the path of the config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file at path, falling back to ConfigFile() when
// path is empty. A missing file is not an error; defaults apply.
// Environment variables VENICE_API_KEY and VENICE_BASE_URL override the
// file in all cases.
func Load(path string) (Config, error) {
	if path == "" {
		path = ConfigFile()
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return applyEnvOverrides(cfg), nil
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return applyEnvOverrides(DefaultConfig()), fmt.Errorf("parsing config %s: %w", path, err)
	}
	return applyEnvOverrides(cfg), nil
}

// Save writes the config file at path, falling back to ConfigFile() when
// path is empty. Parent directories are created as needed and the file is
// written with owner-only permissions since it may hold the API key.
func Save(cfg Config, path string) error {
	if path == "" {
		path = ConfigFile()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func applyEnvOverrides(cfg Config) Config {
	if v := os.Getenv("VENICE_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("VENICE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	return cfg
}
