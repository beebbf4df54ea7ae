// Package config provides 12-factor configuration for the polyprec service.
//
// Configuration is loaded from environment variables with defaults.
// CLI flags can override environment variables.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting
//   - Eval: degree ceiling, precision limits, exponent range, batch workers
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	ev := cfg.Evaluator(orthopoly.WithLogger(logger))
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - EVAL_MAX_DEGREE, EVAL_MAX_PRECISION, EVAL_DEFAULT_PRECISION
//   - EVAL_EMIN, EVAL_EMAX, EVAL_WORKERS
package config
