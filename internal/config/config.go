// Package config provides configuration management for hypermesh.
//
// The config file persists the mesh shape and wiring defaults; the database
// stores run history and can be wiped without losing configuration.
//
// Config file locations (priority order):
//  1. $HYPERMESH_CONFIG
//  2. ./hypermesh.yaml
//  3. ~/.config/hypermesh/config.yaml
//  4. /etc/hypermesh/config.yaml
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level hypermesh configuration
type Config struct {
	Version   int             `yaml:"version"`
	Mesh      MeshConfig      `yaml:"mesh"`
	Database  DatabaseConfig  `yaml:"database"`
	Metadata  MetadataConfig  `yaml:"metadata"`
	Heartbeat HeartbeatConfig `yaml:"heartbeat"`
}

// MeshConfig describes the hypercube shape
type MeshConfig struct {
	Dimension int `yaml:"dimension"`
}

// DatabaseConfig describes the run-history store
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// MetadataConfig describes the node metadata source
type MetadataConfig struct {
	Path          string   `yaml:"path,omitempty"`
	WatchDebounce Duration `yaml:"watch_debounce,omitempty"`
}

// HeartbeatConfig describes the canonical sync pattern
type HeartbeatConfig struct {
	Pattern string `yaml:"pattern"`
}

// Duration wraps time.Duration for YAML round-tripping as "500ms" strings
type Duration string

// Duration parses the wrapped value, returning 0 on empty or invalid input
func (d Duration) Duration() time.Duration {
	if d == "" {
		return 0
	}
	parsed, err := time.ParseDuration(string(d))
	if err != nil {
		return 0
	}
	return parsed
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version:   1,
		Mesh:      MeshConfig{Dimension: 4},
		Database:  DatabaseConfig{Path: "./hypermesh.db"},
		Metadata:  MetadataConfig{WatchDebounce: "500ms"},
		Heartbeat: HeartbeatConfig{Pattern: "011001010"},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Mesh.Dimension == 0 {
		c.Mesh.Dimension = 4
	}
	if c.Database.Path == "" {
		c.Database.Path = "./hypermesh.db"
	}
	if c.Metadata.WatchDebounce == "" {
		c.Metadata.WatchDebounce = "500ms"
	}
	if c.Heartbeat.Pattern == "" {
		c.Heartbeat.Pattern = "011001010"
	}
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	return fmt.Sprintf("Dimension: %d (%d nodes), DB: %s, Pattern: %s",
		c.Mesh.Dimension, 1<<c.Mesh.Dimension, c.Database.Path, c.Heartbeat.Pattern)
}
