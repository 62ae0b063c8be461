package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/petpy/legacy"
	"github.com/s0up4200/petpy/petfinder"
	"github.com/s0up4200/petpy/table"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. PETPY_PETFINDER_KEY
	EnvPrefix = "PETPY"
	// FormatRaw prints API responses as received instead of as a table
	FormatRaw = "raw"
)

// Load loads the configuration from file and environment. Without an explicit
// path a missing config file is fine. Credentials are checked by the commands
// that need them, so v1-only setups and update work without v2 credentials.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".petpy"))
		}

		// Check /etc
		v.AddConfigPath("/etc/petpy/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key needs a default
// so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Petfinder defaults
	v.SetDefault("petfinder.key", "")
	v.SetDefault("petfinder.secret", "")
	v.SetDefault("petfinder.url", petfinder.DefaultBaseURL)
	v.SetDefault("petfinder.timeout", petfinder.DefaultTimeout)
	v.SetDefault("petfinder.rate_limit", petfinder.DefaultRateLimit)
	v.SetDefault("petfinder.concurrency", petfinder.DefaultConcurrency)

	// Legacy defaults
	v.SetDefault("legacy.key", "")
	v.SetDefault("legacy.url", legacy.DefaultBaseURL)
	v.SetDefault("legacy.timeout", legacy.DefaultTimeout)
	v.SetDefault("legacy.rate_limit", legacy.DefaultRateLimit)

	// Output defaults
	v.SetDefault("output.format", string(table.FormatTable))
	v.SetDefault("output.columns", []string{})

	v.SetDefault("filter.presets", map[string]string{})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Petfinder.Timeout < 0 {
		return fmt.Errorf("petfinder.timeout must not be negative")
	}

	if cfg.Legacy.Timeout < 0 {
		return fmt.Errorf("legacy.timeout must not be negative")
	}

	if cfg.Petfinder.Concurrency < 1 {
		return fmt.Errorf("petfinder.concurrency must be at least 1")
	}

	// Validate output format
	if _, err := table.ParseFormat(cfg.Output.Format); err != nil && cfg.Output.Format != FormatRaw {
		return fmt.Errorf("invalid output format: %s", cfg.Output.Format)
	}

	// Validate logging level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, cfg.Logging.Level) {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := []string{"console", "json"}
	if !slices.Contains(validFormats, cfg.Logging.Format) {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
