package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultVaultPath = "~/Documents/bag_of_holding"

	// DefaultDatabasePath is vault-relative; the plugin keeps its database
	// next to the notes so file sync carries it between devices.
	DefaultDatabasePath = ".ripasso/ripasso.db"
)

// Config holds host-integration settings. Defaults apply first, then the
// optional config file, then environment variables.
type Config struct {
	Vault    string `yaml:"vault"`
	Database string `yaml:"database"`
}

// Load returns the effective configuration. A malformed or missing config
// file falls back to defaults.
func Load() Config {
	cfg := Config{
		Vault:    DefaultVaultPath,
		Database: DefaultDatabasePath,
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "ripasso", "config.yml")
		if data, err := os.ReadFile(path); err == nil {
			var file Config
			if yaml.Unmarshal(data, &file) == nil {
				if file.Vault != "" {
					cfg.Vault = file.Vault
				}
				if file.Database != "" {
					cfg.Database = file.Database
				}
			}
		}
	}

	if env := os.Getenv("RIPASSO_VAULT"); env != "" {
		cfg.Vault = env
	}
	if env := os.Getenv("RIPASSO_DB"); env != "" {
		cfg.Database = env
	}
	return cfg
}
