package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Petfinder: PetfinderConfig{
			Key:         "key",
			Secret:      "secret",
			Concurrency: 4,
		},
		Output: OutputConfig{
			Format: "table",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:   "no credentials",
			mutate: func(c *Config) { c.Petfinder = PetfinderConfig{Concurrency: 4} },
		},
		{
			name:    "negative legacy timeout",
			mutate:  func(c *Config) { c.Legacy.Timeout = -time.Second },
			wantErr: "legacy.timeout must not be negative",
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Petfinder.Concurrency = 0 },
			wantErr: "petfinder.concurrency must be at least 1",
		},
		{
			name:   "raw output",
			mutate: func(c *Config) { c.Output.Format = "raw" },
		},
		{
			name:   "yaml output",
			mutate: func(c *Config) { c.Output.Format = "YAML" },
		},
		{
			name:    "unknown output",
			mutate:  func(c *Config) { c.Output.Format = "xml" },
			wantErr: "invalid output format: xml",
		},
		{
			name:    "invalid level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "invalid logging level: trace",
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "text" },
			wantErr: "invalid logging format: text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
petfinder:
  key: file-key
  secret: file-secret
  timeout: 5s
output:
  format: csv
  columns: [animal_id, name]
filter:
  presets:
    Babies: age == "Baby"
logging:
  level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.Petfinder.Key)
	assert.Equal(t, 5*time.Second, cfg.Petfinder.Timeout)
	assert.Equal(t, "https://api.petfinder.com/v2", cfg.Petfinder.URL)
	assert.Equal(t, 4, cfg.Petfinder.Concurrency)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, []string{"animal_id", "name"}, cfg.Output.Columns)
	assert.Equal(t, `age == "Baby"`, cfg.Filter.Presets["babies"])
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "file-key", cfg.LegacyKey())
	assert.Equal(t, 30*time.Second, cfg.Legacy.Timeout)
	assert.Equal(t, float64(10), cfg.Legacy.RateLimit)
}

func TestLoadEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PETPY_PETFINDER_KEY", "env-key")
	t.Setenv("PETPY_PETFINDER_SECRET", "env-secret")
	t.Setenv("PETPY_LEGACY_KEY", "v1-key")
	t.Setenv("PETPY_OUTPUT_FORMAT", "json")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Petfinder.Key)
	assert.Equal(t, "env-secret", cfg.Petfinder.Secret)
	assert.Equal(t, "v1-key", cfg.LegacyKey())
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoadLegacyOnlyEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PETPY_LEGACY_KEY", "v1-key")
	t.Setenv("PETPY_LEGACY_RATE_LIMIT", "2.5")
	t.Setenv("PETPY_LEGACY_TIMEOUT", "10s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, cfg.Petfinder.Key)
	assert.Empty(t, cfg.Petfinder.Secret)
	assert.Equal(t, "v1-key", cfg.LegacyKey())
	assert.Equal(t, 2.5, cfg.Legacy.RateLimit)
	assert.Equal(t, 10*time.Second, cfg.Legacy.Timeout)
	assert.Equal(t, "http://api.petfinder.com/", cfg.Legacy.URL)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "error reading config")
}
