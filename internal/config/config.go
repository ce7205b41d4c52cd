// Package config loads the lca CLI configuration from ~/.lca/config.yaml
// (or LCA_CONFIG), applies environment overrides and owns the global
// application logger.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/lcaengine/internal/cache"
)

// Environment variables read by ApplyEnvOverrides and the path helpers.
const (
	EnvConfigPath         = "LCA_CONFIG"
	EnvHome               = "LCA_HOME"
	EnvLogLevel           = "LCA_LOG_LEVEL"
	EnvDefaultRegion      = "LCA_DEFAULT_REGION"
	EnvOutputFormat       = "LCA_OUTPUT_FORMAT"
	EnvPriceCacheTTL      = "LCA_PRICE_CACHE_TTL_SECONDS"
	EnvValuationTimeoutMS = "LCA_VALUATION_TIMEOUT_MS"
)

// Defaults.
const (
	DefaultRegion        = "global"
	DefaultConcurrency   = 4
	DefaultOutputFormat  = "table"
	DefaultMarket        = "LME"
	DefaultMetal         = "copper"
	DefaultTimeout       = 2 * time.Second
	DefaultCacheTTL      = cache.DefaultTTLSeconds
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	configFileName       = "config.yaml"
	configFilePermission = 0o600
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Validation errors.
const (
	ErrInvalidOutputFormat = constError("invalid output format")
	ErrInvalidLogLevel     = constError("invalid log level")
	ErrInvalidLogFormat    = constError("invalid log format")
	ErrInvalidConcurrency  = constError("concurrency must be at least 1")
	ErrInvalidCacheTTL     = constError("price cache TTL out of range")
	ErrInvalidTimeout      = constError("valuation timeout must be positive")
)

// Config is the full CLI configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"   json:"logging"`
	Engine    EngineConfig    `yaml:"engine"    json:"engine"`
	Factors   FactorsConfig   `yaml:"factors"   json:"factors"`
	Valuation ValuationConfig `yaml:"valuation" json:"valuation"`
	Output    OutputConfig    `yaml:"output"    json:"output"`
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// EngineConfig configures LCA calculation.
type EngineConfig struct {
	DefaultRegion string `yaml:"default_region" json:"default_region"`
	Concurrency   int    `yaml:"concurrency"    json:"concurrency"`
}

// FactorsConfig configures the reference-factor catalog.
type FactorsConfig struct {
	// Catalog is an optional YAML overlay merged onto the built-in catalog.
	Catalog string `yaml:"catalog,omitempty" json:"catalog,omitempty"`
}

// ValuationConfig configures market valuation.
type ValuationConfig struct {
	Market          string        `yaml:"market"                    json:"market"`
	Metal           string        `yaml:"metal"                     json:"metal"`
	Timeout         time.Duration `yaml:"timeout"                   json:"timeout"`
	CacheTTLSeconds int           `yaml:"cache_ttl_seconds"         json:"cache_ttl_seconds"`
	CacheDir        string        `yaml:"cache_dir,omitempty"       json:"cache_dir,omitempty"`
	PersistentCache bool          `yaml:"persistent_cache,omitempty" json:"persistent_cache,omitempty"`
}

// OutputConfig configures rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Engine: EngineConfig{
			DefaultRegion: DefaultRegion,
			Concurrency:   DefaultConcurrency,
		},
		Valuation: ValuationConfig{
			Market:          DefaultMarket,
			Metal:           DefaultMetal,
			Timeout:         DefaultTimeout,
			CacheTTLSeconds: DefaultCacheTTL,
		},
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
		},
	}
}

// Load builds a Config from defaults, the file at path (when it exists)
// and environment overrides, then validates it. An empty path means
// GetConfigPath().
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return nil, err
		}
	}

	cfg := New()
	if _, err := os.Stat(path); err == nil {
		if mergeErr := ShallowMergeYAML(cfg, path); mergeErr != nil {
			return nil, mergeErr
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking config file %s: %w", path, err)
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, configFilePermission); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// ApplyEnvOverrides applies LCA_* environment variables. Unset variables
// leave the config untouched; unparsable numeric values are errors.
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvDefaultRegion); v != "" {
		c.Engine.DefaultRegion = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := os.Getenv(EnvPriceCacheTTL); v != "" {
		ttl, err := cache.ParseTTL(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvPriceCacheTTL, err)
		}
		c.Valuation.CacheTTLSeconds = ttl
	}
	if v := os.Getenv(EnvValuationTimeoutMS); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvValuationTimeoutMS, err)
		}
		c.Valuation.Timeout = time.Duration(ms) * time.Millisecond
	}
	return nil
}

// Validate checks every section and joins all problems.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Output.DefaultFormat) {
	case "table", "json", "ndjson":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidOutputFormat, c.Output.DefaultFormat))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level))
	}

	switch strings.ToLower(c.Logging.Format) {
	case "console", "json", "":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format))
	}

	if c.Engine.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidConcurrency, c.Engine.Concurrency))
	}

	if _, err := cache.NewTTLConfig(c.Valuation.CacheTTLSeconds); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidCacheTTL, err))
	}

	if c.Valuation.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %s", ErrInvalidTimeout, c.Valuation.Timeout))
	}

	return errors.Join(errs...)
}

// CacheTTL returns the price cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Valuation.CacheTTLSeconds) * time.Second
}
