// ABOUTME: Configuration management for postboard with YAML config loading.
// ABOUTME: Handles server bind settings, client API URL, defaults, and validation.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHost         = "0.0.0.0"
	DefaultPort         = 5002
	DefaultShutdownSecs = 5
	DefaultAPIURL       = "http://localhost:5002"
)

// Config stores postboard configuration loaded from ~/.config/postboard/config.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Client ClientConfig `yaml:"client"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	ShutdownSecs int    `yaml:"shutdown_secs"`
	Metrics      *bool  `yaml:"metrics,omitempty"` // nil means enabled
}

// ClientConfig holds settings for commands that talk to a running service.
type ClientConfig struct {
	APIURL string `yaml:"api_url"`
}

// Default returns a config with every field at its default.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ShutdownSecs == 0 {
		c.Server.ShutdownSecs = DefaultShutdownSecs
	}
	if c.Client.APIURL == "" {
		c.Client.APIURL = DefaultAPIURL
	}
}

// Addr returns the host:port the server binds.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// MetricsEnabled returns true unless metrics were explicitly disabled.
func (c *Config) MetricsEnabled() bool {
	return c.Server.Metrics == nil || *c.Server.Metrics
}

// Validate checks values that would otherwise fail at bind or request time.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d: must be between 1 and 65535", c.Server.Port)
	}
	if c.Server.ShutdownSecs < 0 {
		return fmt.Errorf("invalid shutdown_secs %d: must be >= 0", c.Server.ShutdownSecs)
	}
	if !strings.HasPrefix(c.Client.APIURL, "http://") && !strings.HasPrefix(c.Client.APIURL, "https://") {
		return fmt.Errorf("invalid api_url %q: must start with http:// or https://", c.Client.APIURL)
	}
	return nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "postboard", "config.yaml"), nil
}

// Load reads config from disk. Returns the default config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
