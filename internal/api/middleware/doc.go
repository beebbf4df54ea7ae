// Package middleware provides gin middleware for the HTTP API: CORS, per-IP
// and global rate limiting, request IDs and request body limits.
//
// Example Usage:
//
//	router.Use(middleware.RequestID(nil))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
