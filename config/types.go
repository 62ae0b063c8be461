package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Petfinder PetfinderConfig `mapstructure:"petfinder"`
	Legacy    LegacyConfig    `mapstructure:"legacy"`
	Output    OutputConfig    `mapstructure:"output"`
	Filter    FilterConfig    `mapstructure:"filter"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// PetfinderConfig holds the v2 API credentials and client tuning
type PetfinderConfig struct {
	Key         string        `mapstructure:"key"`
	Secret      string        `mapstructure:"secret"`
	URL         string        `mapstructure:"url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	RateLimit   float64       `mapstructure:"rate_limit"`
	Concurrency int           `mapstructure:"concurrency"`
}

// LegacyConfig holds the v1 API key. An empty key falls back to petfinder.key.
type LegacyConfig struct {
	Key       string        `mapstructure:"key"`
	URL       string        `mapstructure:"url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"`
}

// OutputConfig sets how results are printed
type OutputConfig struct {
	Format  string   `mapstructure:"format"`
	Columns []string `mapstructure:"columns"`
}

// FilterConfig contains named filter expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// LegacyKey returns the key used for the v1 API
func (c *Config) LegacyKey() string {
	if c.Legacy.Key != "" {
		return c.Legacy.Key
	}
	return c.Petfinder.Key
}
