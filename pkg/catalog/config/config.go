package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Option applies configuration to a Config instance.
type Option func(*Config) error

// Load constructs a Config by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*Config, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() Config {
	return Config{
		StorePath:   "catalog.json",
		LogLevel:    "info",
		SniffRules:  false,
		MaxFileSize: 0,
	}
}

// Config represents the configuration of the catalog tool
type Config struct {
	// StorePath is the file the collection is loaded from and saved to.
	// The extension selects the format: .yaml/.yml for YAML, JSON otherwise.
	StorePath string `yaml:"store_path" json:"store_path" env:"CATALOG_STORE_PATH" env-description:"Collection file, .yaml/.yml for YAML"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" json:"log_level" env:"CATALOG_LOG_LEVEL" env-description:"Log level: debug, info, warn, error"`

	// SniffRules enables MIME-sniffing classification rules after the built-in ones
	SniffRules bool `yaml:"sniff_rules" json:"sniff_rules" env:"CATALOG_SNIFF_RULES" env-description:"Enable MIME-sniffing classification rules"`

	// MaxFileSize skips imported files larger than this many bytes (0: no limit)
	MaxFileSize int64 `yaml:"max_file_size" json:"max_file_size" env:"CATALOG_MAX_FILE_SIZE" env-description:"Largest importable file in bytes, 0 for no limit"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.StorePath == "" {
		return errors.New("store_path is required")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.MaxFileSize < 0 {
		return errors.New("max_file_size must not be negative")
	}
	return nil
}

// Level returns the slog level for LogLevel
func (c *Config) Level() slog.Level {
	level, _ := ParseLevel(c.LogLevel)
	return level
}

// ParseLevel converts a level name to a slog.Level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unsupported log level: %s (use debug, info, warn or error)", s)
}

// WithFile applies a YAML, JSON or TOML configuration file. Fields the file
// leaves out keep their current values. cleanenv applies environment
// overrides after the file.
func WithFile(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		if err := cleanenv.ReadConfig(path, c); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}
}

// WithStorePath overrides the store path
func WithStorePath(path string) Option {
	return func(c *Config) error {
		if path != "" {
			c.StorePath = path
		}
		return nil
	}
}

// WithLogLevel overrides the log level
func WithLogLevel(level string) Option {
	return func(c *Config) error {
		if level != "" {
			c.LogLevel = level
		}
		return nil
	}
}
