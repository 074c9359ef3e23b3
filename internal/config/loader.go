// Package config loads daemon configuration from disk.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the daemon. Zero values mean
// "unspecified" and are replaced by defaults in the command layer.
type Config struct {
	Addr        string   `json:"addr" yaml:"addr" toml:"addr"`
	ModelsDir   string   `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	BudgetMB    int      `json:"budget_mb" yaml:"budget_mb" toml:"budget_mb"`
	MarginMB    int      `json:"margin_mb" yaml:"margin_mb" toml:"margin_mb"`
	LogLevel    string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
