// Package config loads the pngmarkd configuration from a YAML file with
// defaults applied to unset values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds the daemon configuration
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`
	// IndexPath is the sqlite scan index location.
	IndexPath string `yaml:"indexPath"`
	// MaxUploadBytes bounds the accepted PNG body size.
	MaxUploadBytes int64 `yaml:"maxUploadBytes"`
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"logLevel"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Addr:           ":3000",
		IndexPath:      "pngmark.db",
		MaxUploadBytes: 64 * 1024 * 1024,
		LogLevel:       "info",
	}
}

// Load reads a YAML config file and fills unset fields with defaults
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	def := Default()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.IndexPath == "" {
		cfg.IndexPath = def.IndexPath
	}
	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = def.MaxUploadBytes
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	return cfg, nil
}
