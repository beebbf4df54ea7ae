package config

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/GriffinCanCode/polyprec/internal/apfloat"
	"github.com/GriffinCanCode/polyprec/internal/orthopoly"
	"github.com/GriffinCanCode/polyprec/internal/ziv"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Eval      EvalConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// EvalConfig holds evaluator limits and defaults.
type EvalConfig struct {
	MaxDegree        int  `envconfig:"EVAL_MAX_DEGREE" default:"8192"`
	MaxPrecision     uint `envconfig:"EVAL_MAX_PRECISION" default:"16777216"`
	DefaultPrecision uint `envconfig:"EVAL_DEFAULT_PRECISION" default:"53"`
	Emin             int  `envconfig:"EVAL_EMIN" default:"-1073741823"`
	Emax             int  `envconfig:"EVAL_EMAX" default:"1073741823"`
	Workers          int  `envconfig:"EVAL_WORKERS" default:"4"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Eval: EvalConfig{
			MaxDegree:        orthopoly.DefaultMaxDegree,
			MaxPrecision:     ziv.DefaultLimit,
			DefaultPrecision: 53,
			Emin:             apfloat.DefaultEmin,
			Emax:             apfloat.DefaultEmax,
			Workers:          4,
		},
	}
}

// Validate checks the evaluator section for values the core cannot use.
func (c *Config) Validate() error {
	e := c.Eval
	switch {
	case e.MaxDegree < 0:
		return errors.New("EVAL_MAX_DEGREE must not be negative")
	case e.DefaultPrecision == 0:
		return errors.New("EVAL_DEFAULT_PRECISION must be positive")
	case e.MaxPrecision != 0 && e.MaxPrecision < e.DefaultPrecision:
		return errors.New("EVAL_MAX_PRECISION is below EVAL_DEFAULT_PRECISION")
	case e.Emin >= 0 || e.Emax <= 0:
		return fmt.Errorf("exponent range [%d, %d] must contain zero", e.Emin, e.Emax)
	case e.Workers < 1:
		return errors.New("EVAL_WORKERS must be at least 1")
	}
	return nil
}

// Range returns the configured exponent range.
func (e EvalConfig) Range() apfloat.Range {
	return apfloat.Range{Emin: e.Emin, Emax: e.Emax}
}

// Evaluator builds an evaluator from the Eval section. Extra options are
// applied last.
func (c *Config) Evaluator(opts ...orthopoly.Option) *orthopoly.Evaluator {
	base := []orthopoly.Option{
		orthopoly.WithMaxDegree(c.Eval.MaxDegree),
		orthopoly.WithMaxPrecision(c.Eval.MaxPrecision),
		orthopoly.WithRange(c.Eval.Range()),
	}
	return orthopoly.New(append(base, opts...)...)
}
