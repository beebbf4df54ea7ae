/*
Package monitoring provides Prometheus metrics for the polyprec service.

# Overview

Metrics covers three layers: HTTP requests (through Middleware), service tool
calls (through Timer), and polynomial evaluations. *Metrics implements
orthopoly.Observer, so passing it to orthopoly.WithObserver records the path,
Ziv passes, cancellation restarts and final working precision of every
evaluation.

# Usage

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	router.Use(monitoring.Middleware(metrics))
	ev := cfg.Evaluator(orthopoly.WithObserver(metrics))

	timer := monitoring.NewTimer(metrics, "math", "math.legendre")
	// ... execute the tool ...
	timer.Stop("success")

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
*/
package monitoring
