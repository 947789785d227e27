// Package config loads the optional cargodbg configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when no --config flag is given.
const DefaultPath = "cargodbg.yaml"

// Config represents the application configuration.
type Config struct {
	Cargo    CargoConfig    `yaml:"cargo"`
	Debugger DebuggerConfig `yaml:"debugger"`
}

// CargoConfig selects how the build tool is invoked.
type CargoConfig struct {
	Binary string `yaml:"binary"` // defaults to "cargo"
}

// DebuggerConfig selects which debugger runs the resolved executable.
type DebuggerConfig struct {
	Binary string   `yaml:"binary"`         // defaults to "nnd"
	Args   []string `yaml:"args,omitempty"` // extra args placed before the breakpoint flags
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Cargo.Binary == "" {
		c.Cargo.Binary = "cargo"
	}
	if c.Debugger.Binary == "" {
		c.Debugger.Binary = "nnd"
	}
}

// Load loads configuration from the specified file. A missing file at the
// default path yields defaults; a missing file anywhere else is an error,
// since the user asked for it explicitly. Environment variables are expanded
// in the file content, with .env loaded first so its values participate.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if configPath == DefaultPath {
			return Default(), nil
		}
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}
