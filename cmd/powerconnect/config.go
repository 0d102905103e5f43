// Package main provides the PowerConnect server CLI.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/good-yellow-bee/powerconnect/internal/actions"
)

// Config represents the server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Map     MapConfig     `yaml:"map"`
	Data    DataConfig    `yaml:"data"`
	Actions ActionsConfig `yaml:"actions"`
}

// ServerConfig contains HTTP settings.
type ServerConfig struct {
	HTTPAddress    string `yaml:"http_address"`    // HTTP listen address (default: :8080)
	MetricsAddress string `yaml:"metrics_address"` // Prometheus listen address (default: :9090, "off" disables)
	CSRFKey        string `yaml:"csrf_key"`        // At least 32 bytes
	SecureCookies  bool   `yaml:"secure_cookies"`  // Set when served over HTTPS
	RateLimitPerIP int    `yaml:"rate_limit_per_ip"`
	Verbose        bool   `yaml:"verbose"`
}

// MapConfig sizes the dashboard feeder map.
type MapConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DataConfig selects the sample data source.
type DataConfig struct {
	SeedFile string `yaml:"seed_file"` // Empty uses the built-in sample
	Watch    bool   `yaml:"watch"`     // Reload seed_file when it changes
}

// ActionsConfig contains the simulated action delays as duration strings.
type ActionsConfig struct {
	UpdateDelay   string `yaml:"update_delay"`
	NotifyDelay   string `yaml:"notify_delay"`
	SaveDelay     string `yaml:"save_delay"`
	RatePerMinute int    `yaml:"rate_per_minute"`
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()
	return &cfg, nil
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// setDefaults sets default values for missing config fields.
func (c *Config) setDefaults() {
	if c.Server.HTTPAddress == "" {
		c.Server.HTTPAddress = ":8080"
	}
	if c.Server.MetricsAddress == "" {
		c.Server.MetricsAddress = ":9090"
	}
	if c.Server.RateLimitPerIP == 0 {
		c.Server.RateLimitPerIP = 120
	}
	if c.Map.Width == 0 {
		c.Map.Width = 600
	}
	if c.Map.Height == 0 {
		c.Map.Height = 400
	}
	if c.Actions.UpdateDelay == "" {
		c.Actions.UpdateDelay = "1s"
	}
	if c.Actions.NotifyDelay == "" {
		c.Actions.NotifyDelay = "1.5s"
	}
	if c.Actions.SaveDelay == "" {
		c.Actions.SaveDelay = "1s"
	}
	if c.Actions.RatePerMinute == 0 {
		c.Actions.RatePerMinute = 30
	}
}

// applyEnv overrides file values with POWERCONNECT_* environment variables.
func (c *Config) applyEnv() error {
	if v := os.Getenv("POWERCONNECT_HTTP_ADDRESS"); v != "" {
		c.Server.HTTPAddress = v
	}
	if v := os.Getenv("POWERCONNECT_METRICS_ADDRESS"); v != "" {
		c.Server.MetricsAddress = v
	}
	if v := os.Getenv("POWERCONNECT_CSRF_KEY"); v != "" {
		c.Server.CSRFKey = v
	}
	if v := os.Getenv("POWERCONNECT_SEED_FILE"); v != "" {
		c.Data.SeedFile = v
	}
	if v := os.Getenv("POWERCONNECT_SECURE_COOKIES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("POWERCONNECT_SECURE_COOKIES: %w", err)
		}
		c.Server.SecureCookies = b
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.HTTPAddress == "" {
		return fmt.Errorf("server.http_address is required")
	}
	if len(c.Server.CSRFKey) < 32 {
		return fmt.Errorf("server.csrf_key must be at least 32 bytes (or set POWERCONNECT_CSRF_KEY)")
	}
	if c.metricsEnabled() && c.Server.MetricsAddress == c.Server.HTTPAddress {
		return fmt.Errorf("server.metrics_address must differ from server.http_address")
	}
	if c.Map.Width < 50 || c.Map.Height < 50 {
		return fmt.Errorf("map.width and map.height must be at least 50")
	}
	if c.Data.Watch && c.Data.SeedFile == "" {
		return fmt.Errorf("data.watch requires data.seed_file")
	}
	if _, err := c.actionsConfig(); err != nil {
		return err
	}
	return nil
}

func (c *Config) metricsEnabled() bool {
	return c.Server.MetricsAddress != "" && c.Server.MetricsAddress != "off"
}

// actionsConfig converts the action settings to actions.Config.
func (c *Config) actionsConfig() (actions.Config, error) {
	out := actions.Config{RatePerMinute: c.Actions.RatePerMinute}
	for _, d := range []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"actions.update_delay", c.Actions.UpdateDelay, &out.UpdateDelay},
		{"actions.notify_delay", c.Actions.NotifyDelay, &out.NotifyDelay},
		{"actions.save_delay", c.Actions.SaveDelay, &out.SaveDelay},
	} {
		v, err := time.ParseDuration(d.value)
		if err != nil {
			return actions.Config{}, fmt.Errorf("%s: invalid duration %q", d.name, d.value)
		}
		if v < 0 {
			return actions.Config{}, fmt.Errorf("%s must not be negative", d.name)
		}
		*d.dst = v
	}
	return out, nil
}
