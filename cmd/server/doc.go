// Package main is the entry point for the polyprec HTTP server.
//
// The server exposes correctly rounded Legendre and Hermite evaluation and
// exact-rounding arithmetic as tools of the "math" service.
//
// Configuration comes from environment variables (PORT, HOST, LOG_LEVEL,
// LOG_DEV, RATE_LIMIT_*, EVAL_*). Flags override the port and log mode.
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
