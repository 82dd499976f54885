// Package config provides configuration loading for the novan CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/roach88/novan/internal/gen"
)

// ProjectConfigFile is read from the working directory when no config path
// is given.
const ProjectConfigFile = "novan.yaml"

// Config is the complete CLI configuration. Precedence, lowest first:
// DefaultConfig, the YAML file, environment variables, command-line flags.
type Config struct {
	// Database is the SQLite file holding the lexicon and generators.
	Database string `yaml:"database" env:"NOVAN_DB"`
	// Generator names the weight preset used by generate and inventory.
	Generator string `yaml:"generator" env:"NOVAN_GENERATOR"`
	// Syllables is the default syllable count of generated wordforms.
	Syllables int `yaml:"syllables" env:"NOVAN_SYLLABLES"`
	// MaxAttempts caps rejection sampling per generated wordform.
	MaxAttempts int `yaml:"max_attempts" env:"NOVAN_MAX_ATTEMPTS"`
	// Seed makes generation reproducible; 0 picks a random seed.
	Seed int64 `yaml:"seed" env:"NOVAN_SEED"`
	// Presets is an optional preset file consulted for generators missing
	// from the database.
	Presets string `yaml:"presets" env:"NOVAN_PRESETS"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Database:    "novan.db",
		Generator:   gen.DefaultPresetName,
		Syllables:   2,
		MaxAttempts: gen.DefaultMaxAttempts,
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database is required")
	}
	if c.Generator == "" {
		return fmt.Errorf("generator is required")
	}
	if c.Syllables < 1 {
		return fmt.Errorf("syllables must be at least 1, got %d", c.Syllables)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1, got %d", c.MaxAttempts)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file over the defaults.
// Unknown keys are rejected.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// ParseEnv applies NOVAN_* environment variables to c. Unset variables
// leave their field alone.
func (c *Config) ParseEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load builds the configuration with layered precedence:
//  1. DefaultConfig
//  2. path, or ProjectConfigFile in the working directory if path is empty
//     and the file exists
//  3. environment variables
//
// The result is validated. Flags are applied by the caller afterwards.
func Load(path string, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}

	config := DefaultConfig()
	switch {
	case path != "":
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded config", slog.String("path", path))
		config = loaded
	default:
		loaded, err := LoadFromFile(ProjectConfigFile)
		switch {
		case err == nil:
			logger.Debug("loaded project config", slog.String("path", ProjectConfigFile))
			config = loaded
		case errors.Is(err, os.ErrNotExist):
			logger.Debug("no project config found")
		default:
			return nil, err
		}
	}

	if err := config.ParseEnv(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}
