// Package cliconfig holds the CLI client's own configuration file,
// separate from the server's viper config.
package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds CLI client configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	User   UserConfig   `yaml:"user"`
}

// ServerConfig contains server connection settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// UserConfig holds the bearer token issued by the identity provider
type UserConfig struct {
	Token string `yaml:"token"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
	}
}

// Path returns the default config file location
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aniview.yaml"
	}
	return filepath.Join(home, ".aniview", "config.yaml")
}

// Save writes the configuration to file
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	return os.WriteFile(configPath, data, 0600)
}

// Load reads configuration from file, falling back to defaults when
// the file is missing
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = Path()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Default(), nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
