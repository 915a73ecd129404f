// Package config loads analyzer configuration from an optional YAML
// file, with defaults matching the classic analyzer behavior. CLI flags
// override file settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the config file looked up in the working
// directory when no --config flag is given.
const DefaultConfigName = ".wmanalyzer.yaml"

// Config holds the analyzer's run options.
type Config struct {
	// ResultDir is the result tree root, cleared and recreated per run.
	ResultDir string `yaml:"result_dir"`

	// LogLevel sets console verbosity (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// Report enables HTML report generation after all bundles finish.
	Report bool `yaml:"report"`
}

// DefaultConfig returns a Config with the analyzer's default values.
func DefaultConfig() *Config {
	return &Config{
		ResultDir: "WMReportResult",
		LogLevel:  "info",
		Report:    true,
	}
}

// LoadConfig loads configuration from path. A missing file is not an
// error; defaults are returned. A malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.ResultDir == "" {
		cfg.ResultDir = DefaultConfig().ResultDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultConfig().LogLevel
	}
	return cfg, nil
}

// LoadConfigFromDir loads DefaultConfigName from dir.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, DefaultConfigName))
}
