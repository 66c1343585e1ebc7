// Package config provides configuration loading for currimap.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by FromEnv.
const (
	EnvDB         = "CURRIMAP_DB"
	EnvCurricula  = "CURRIMAP_CURRICULA"
	EnvCurriculum = "CURRIMAP_CURRICULUM"
	EnvLogLevel   = "CURRIMAP_LOG_LEVEL"
)

// Config represents the complete currimap configuration
type Config struct {
	// DBPath is the SQLite database file (empty = XDG data dir)
	DBPath string `yaml:"db"`
	// CurriculaDir holds extra curriculum documents (empty = built-in only)
	CurriculaDir string `yaml:"curricula_dir"`
	// Curriculum is the ID of the curriculum commands operate on
	Curriculum string `yaml:"curriculum"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`
	// LogFile receives logs while the TUI owns the terminal (empty = discard)
	LogFile string `yaml:"log_file"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Curriculum: "comp-eng-tec",
		LogLevel:   "info",
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Curriculum == "" {
		return fmt.Errorf("curriculum is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.DBPath != "" {
		c.DBPath = other.DBPath
	}
	if other.CurriculaDir != "" {
		c.CurriculaDir = other.CurriculaDir
	}
	if other.Curriculum != "" {
		c.Curriculum = other.Curriculum
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFile != "" {
		c.LogFile = other.LogFile
	}
}

// FromEnv returns the settings present in the environment.
func FromEnv(getenv func(string) string) *Config {
	return &Config{
		DBPath:       getenv(EnvDB),
		CurriculaDir: getenv(EnvCurricula),
		Curriculum:   getenv(EnvCurriculum),
		LogLevel:     getenv(EnvLogLevel),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/currimap/config.yaml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "currimap", "config.yaml"), nil
}

// Load builds the effective configuration with layered precedence:
// 1. Defaults
// 2. Config file (path, or DefaultPath when path is empty)
// 3. Environment variables
//
// A missing file at the default location is not an error; a missing file
// that was asked for explicitly is.
func Load(path string, getenv func(string) string) (*Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	fileConfig, err := LoadFromFile(path)
	switch {
	case err == nil:
		config.Merge(fileConfig)
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	config.Merge(FromEnv(getenv))
	return config, nil
}
