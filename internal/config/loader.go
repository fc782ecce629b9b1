package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL = "http://127.0.0.1:5000"
	DefaultListen  = "127.0.0.1:5000"
)

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the YAML file at path, applies defaults and validates. A missing
// file is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse parses raw YAML into Config, applies defaults and validates.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("save config: path is empty")
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	header := "# wacheck configuration\n\n"
	if err := os.WriteFile(path, append([]byte(header), b...), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = DefaultBaseURL
	}
	if cfg.Backend.TimeoutMs <= 0 {
		cfg.Backend.TimeoutMs = 30000
	}
	// Poll defaults: 1s between polls, 2s after a failed one.
	if cfg.Poll.IntervalMs <= 0 {
		cfg.Poll.IntervalMs = 1000
	}
	if cfg.Poll.ErrorIntervalMs <= 0 {
		cfg.Poll.ErrorIntervalMs = 2 * cfg.Poll.IntervalMs
	}
	if cfg.UI.NotificationTTLMs <= 0 {
		cfg.UI.NotificationTTLMs = 3000
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = "stderr"
	}
	if cfg.Mock.Listen == "" {
		cfg.Mock.Listen = DefaultListen
	}
	if cfg.Mock.CheckDelayMs < 0 {
		cfg.Mock.CheckDelayMs = 0
	}
}

func Validate(cfg *Config) error {
	if cfg.Version <= 0 {
		return errors.New("version must be > 0")
	}
	u, err := url.Parse(cfg.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("backend.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.base_url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("backend.base_url: host is required")
	}
	if cfg.Backend.TimeoutMs <= 0 {
		return errors.New("backend.timeout_ms must be > 0")
	}
	if cfg.Poll.IntervalMs <= 0 {
		return errors.New("poll.interval_ms must be > 0")
	}
	if cfg.Poll.ErrorIntervalMs <= 0 {
		return errors.New("poll.error_interval_ms must be > 0")
	}
	if cfg.UI.NotificationTTLMs <= 0 {
		return errors.New("ui.notification_ttl_ms must be > 0")
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported level %q", cfg.Logging.Level)
	}
	if cfg.Mock.CheckDelayMs < 0 {
		return errors.New("mock.check_delay_ms must be >= 0")
	}
	return nil
}

func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutMs) * time.Millisecond
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Poll.IntervalMs) * time.Millisecond
}

func (c *Config) ErrorPollInterval() time.Duration {
	return time.Duration(c.Poll.ErrorIntervalMs) * time.Millisecond
}

func (c *Config) NotificationTTL() time.Duration {
	return time.Duration(c.UI.NotificationTTLMs) * time.Millisecond
}

func (c *Config) CheckDelay() time.Duration {
	return time.Duration(c.Mock.CheckDelayMs) * time.Millisecond
}
