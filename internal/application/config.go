// Package application wires the scoring engine to its infrastructure:
// configuration loading, logging, trek-type resolution, cached program
// scores, and bulk recalculation.
package application

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config is the top-level service configuration, loaded from YAML.
type Config struct {
	// Storage configures the backing SQLite database.
	Storage StorageConfig `yaml:"storage" validate:"required"`

	// Cache configures the optional Redis program-score cache.
	Cache CacheConfig `yaml:"cache"`

	// Logging configures structured log output.
	Logging LoggingConfig `yaml:"logging"`

	// Factors holds scoring factor overrides keyed by factor code.
	// Codes absent here fall back to database overrides, then defaults.
	Factors map[string]float64 `yaml:"factors"`

	// Recalculate bounds the bulk cache-warming pass.
	Recalculate RecalculateConfig `yaml:"recalculate"`
}

// StorageConfig locates the SQLite database file.
type StorageConfig struct {
	// Path is the database file path. ":memory:" is accepted for tests.
	Path string `yaml:"path" validate:"required"`
}

// CacheConfig configures the Redis program-score cache. When Enabled is
// false the service computes scores on every request.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr" validate:"required_if=Enabled true,omitempty,hostname_port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"min=0,max=15"`

	// TTLSeconds is how long cached program scores stay fresh. Zero means
	// no expiry; invalidation is then entirely explicit.
	TTLSeconds int `yaml:"ttl_seconds" validate:"min=0"`
}

// TTL returns the configured cache TTL as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// LoggingConfig controls log level and encoding.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=json console"`
}

// RecalculateConfig bounds the concurrency and request rate of the
// bulk recalculation pass so it cannot starve interactive traffic.
type RecalculateConfig struct {
	// Concurrency is the number of crews recalculated in parallel.
	Concurrency int `yaml:"concurrency" validate:"min=0,max=64"`

	// CrewsPerSecond rate-limits how fast crews are picked up.
	CrewsPerSecond float64 `yaml:"crews_per_second" validate:"min=0"`
}

// DefaultConfig returns a configuration suitable for local development:
// an on-disk database next to the binary, cache disabled, console logs.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{Path: "trekrank.db"},
		Cache: CacheConfig{
			Enabled:    false,
			Addr:       "localhost:6379",
			TTLSeconds: 900,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Recalculate: RecalculateConfig{
			Concurrency:    4,
			CrewsPerSecond: 10,
		},
	}
}

// LoadConfig reads and validates a YAML configuration file. Fields the
// file omits keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration against its declared constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
