package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete client configuration
type Config struct {
	API     APIConfig     `yaml:"api"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig contains endpoint settings
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// UIConfig contains console rendering settings
type UIConfig struct {
	Color string `yaml:"color"`
}

// LoggingConfig contains diagnostic log settings
type LoggingConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Dir           string `yaml:"dir"`
	RetentionDays int    `yaml:"retention_days"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "https://api.abuseipdb.com",
			TimeoutSeconds: 30,
		},
		UI: UIConfig{
			Color: "auto",
		},
		Logging: LoggingConfig{
			Enabled:       false,
			Dir:           "logs",
			RetentionDays: 7,
		},
	}
}

// Load loads configuration from a YAML file. A missing file is not an
// error: the defaults apply unchanged. A file that exists but cannot be
// read or parsed is an error so a typo never silently reverts settings.
func Load(filename string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive, got %d", c.API.TimeoutSeconds)
	}
	switch strings.ToLower(strings.TrimSpace(c.UI.Color)) {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("ui.color must be auto, always, or never, got %q", c.UI.Color)
	}
	if c.Logging.Enabled && strings.TrimSpace(c.Logging.Dir) == "" {
		return fmt.Errorf("logging.dir must be set when logging is enabled")
	}
	return nil
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Describe summarizes the effective settings in one line for the startup log.
func (c *Config) Describe() string {
	logging := "off"
	if c.Logging.Enabled {
		logging = fmt.Sprintf("%s (keep %dd)", c.Logging.Dir, c.Logging.RetentionDays)
	}
	return fmt.Sprintf("endpoint=%s timeout=%s color=%s logging=%s",
		c.API.BaseURL, c.Timeout(), c.UI.Color, logging)
}
