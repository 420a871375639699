// Package config loads and saves the settings of the pixmap command.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the pixmap configuration
type Config struct {
	Database string  `yaml:"database"`
	Workers  int     `yaml:"workers"`
	Preview  Preview `yaml:"preview"`
	Render   Render  `yaml:"render"`
}

// Preview controls the thumbnails stored in the catalog
type Preview struct {
	// Size is the length in pixels of the longest edge
	Size int `yaml:"size"`
}

// Render controls terminal output
type Render struct {
	// Width scales images to this many columns, 0 keeps the image width
	Width int `yaml:"width"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Database: "pixmap.db",
		Workers:  10,
		Preview: Preview{
			Size: 64,
		},
	}
}

// Validate checks the configuration values are usable
func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database path is empty")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Preview.Size < 1 {
		return fmt.Errorf("preview size must be at least 1, got %d", c.Preview.Size)
	}
	if c.Render.Width < 0 {
		return fmt.Errorf("render width must not be negative, got %d", c.Render.Width)
	}
	return nil
}

// LoadConfig loads configuration from the specified path. Settings missing
// from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default configuration path for the current
// user
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "pixmap.yaml"
	}
	return filepath.Join(dir, "pixmap", "config.yaml")
}

// Exists checks if a configuration file exists
func Exists(configPath string) bool {
	_, err := os.Stat(configPath)
	return err == nil
}
