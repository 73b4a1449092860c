package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// WithEnv applies environment variable overrides. Variables that are not set
// leave the current value alone.
//
// Environment variable mapping:
//
//	CATALOG_STORE_PATH    - Collection file (default: "catalog.json")
//	CATALOG_LOG_LEVEL     - debug, info, warn, error (default: "info")
//	CATALOG_SNIFF_RULES   - Enable MIME-sniffing classification (default: false)
//	CATALOG_MAX_FILE_SIZE - Largest importable file in bytes (default: 0, no limit)
func WithEnv() Option {
	return func(c *Config) error {
		if err := cleanenv.ReadEnv(c); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}
		return nil
	}
}

// Usage returns a description of the environment variables
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}
