// Package config handles configuration loading and validation for roster.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Render formats accepted by render.format and the render command.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Config holds the application configuration.
type Config struct {
	API    APIConfig    `yaml:"api"`
	TUI    TUIConfig    `yaml:"tui"`
	Render RenderConfig `yaml:"render"`
}

// APIConfig configures the remote collection store.
type APIConfig struct {
	BaseURL           string        `yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"` // 0 disables pacing
	Burst             int           `yaml:"burst"`
	UserAgent         string        `yaml:"user_agent"`
}

// TUIConfig holds interactive UI settings.
type TUIConfig struct {
	Theme           string `yaml:"theme"`
	DefaultEmployee int    `yaml:"default_employee"` // 0 selects the first employee
}

// RenderConfig holds settings for the render command.
type RenderConfig struct {
	Format string `yaml:"format"`
	Width  int    `yaml:"width"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:           "https://jsonplaceholder.typicode.com",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 10,
			Burst:             5,
			UserAgent:         "roster",
		},
		TUI: TUIConfig{
			Theme: "tokyo-night",
		},
		Render: RenderConfig{
			Format: FormatText,
			Width:  80,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/roster/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "roster", "config.yaml")
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = defaults.API.Timeout
	}
	if c.API.Burst == 0 {
		c.API.Burst = defaults.API.Burst
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = defaults.API.UserAgent
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.Render.Format == "" {
		c.Render.Format = defaults.Render.Format
	}
	if c.Render.Width == 0 {
		c.Render.Width = defaults.Render.Width
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout cannot be negative")
	}

	if c.API.RequestsPerSecond < 0 {
		return fmt.Errorf("api.requests_per_second cannot be negative")
	}

	if c.API.Burst < 1 {
		return fmt.Errorf("api.burst must be at least 1")
	}

	if c.TUI.DefaultEmployee < 0 {
		return fmt.Errorf("tui.default_employee cannot be negative")
	}

	if !IsValidFormat(c.Render.Format) {
		return fmt.Errorf("render.format %q is not one of text, markdown, html", c.Render.Format)
	}

	return nil
}

// IsValidFormat reports whether f is a supported render format.
func IsValidFormat(f string) bool {
	switch f {
	case FormatText, FormatMarkdown, FormatHTML:
		return true
	default:
		return false
	}
}
