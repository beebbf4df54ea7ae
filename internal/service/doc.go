// Package service is the registry that dispatches "service.tool" IDs to
// providers.
//
// Components:
//   - Registry: thread-safe catalog of providers
//   - Provider: interface implemented by each service
//
// Tool calls are timed through monitoring.Metrics when the registry is built
// with WithMetrics, and traced as child spans with WithTracer. Discover ranks services by keyword matches against
// names, descriptions, capabilities and tool names.
//
// Example Usage:
//
//	registry := service.NewRegistry().WithMetrics(metrics)
//	registry.Register(math.NewProvider(ev, 53))
//	result, err := registry.Execute(ctx, "math.legendre", params, nil)
package service
