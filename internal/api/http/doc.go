// Package http provides the HTTP handlers of the polyprec REST API.
//
// Endpoints:
//   - Health: / and /health
//   - Services: /services, /services/discover, /services/execute
//   - Metrics: /metrics
//
// Tool failures the caller can fix (bad params, out-of-range precision)
// come back as 200 with success false. Malformed requests are 400, unknown
// services 404 and provider errors 500.
//
// Example Usage:
//
//	handlers := http.NewHandlers(registry, metrics, logger)
//	router.GET("/health", handlers.Health)
//	router.POST("/services/execute", handlers.ExecuteService)
package http
