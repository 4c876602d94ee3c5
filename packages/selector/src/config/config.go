package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultCacheSize is the number of parsed selector sources kept in memory
	DefaultCacheSize = 4096
	// MaxWorkers caps the parallelism used while building registries
	MaxWorkers = 64
)

// MatcherConfig represents the configuration of a directive registry
type MatcherConfig struct {
	Workers   int  `yaml:"workers"`
	CacheSize int  `yaml:"cache_size"`
	Strict    bool `yaml:"strict"`
}

// NewMatcherConfig creates a new MatcherConfig with optional parameters
func NewMatcherConfig(opts ...MatcherConfigOption) *MatcherConfig {
	config := &MatcherConfig{}
	config.fillDefault()

	for _, opt := range opts {
		opt(config)
	}

	return config
}

// MatcherConfigOption is a function that modifies MatcherConfig
type MatcherConfigOption func(*MatcherConfig)

// WithWorkers sets the number of parallel selector parsers
func WithWorkers(workers int) MatcherConfigOption {
	return func(c *MatcherConfig) {
		c.Workers = workers
	}
}

// WithCacheSize sets the selector cache size
func WithCacheSize(size int) MatcherConfigOption {
	return func(c *MatcherConfig) {
		c.CacheSize = size
	}
}

// WithStrict makes malformed selectors fail the build instead of being skipped
func WithStrict(strict bool) MatcherConfigOption {
	return func(c *MatcherConfig) {
		c.Strict = strict
	}
}

// EffectiveWorkers returns Workers clamped to [1, MaxWorkers], defaulting to GOMAXPROCS
func (c *MatcherConfig) EffectiveWorkers() int {
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}
	return workers
}

func (c *MatcherConfig) fillDefault() {
	if c.CacheSize <= 0 {
		c.CacheSize = DefaultCacheSize
	}
}

// Validate checks the configuration for values that cannot be used
func (c *MatcherConfig) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	return nil
}

// LoadConfig reads a MatcherConfig from a YAML file
func LoadConfig(path string) (*MatcherConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open config file: %w", err)
	}
	defer file.Close()

	config := &MatcherConfig{}
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	config.fillDefault()

	return config, nil
}
