/*
Package tracing provides lightweight request tracing logged through zap.

Spans carry a trace ID shared across a request flow and a span ID per
operation. The server opens a span per HTTP request, the service registry
opens a child span per tool call, and the remote client forwards the trace
so server-side spans join the caller's trace.

# Usage

	tracer := tracing.New("polyprec", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	err := tracer.Trace(ctx, "tool math.legendre", func(ctx context.Context) error {
		...
	})

# Propagation

  - X-Trace-ID: identifier for the entire request flow
  - X-Span-ID: identifier of the calling span

Finished spans are buffered (1000) and logged by one collector goroutine:
errors at warn level, the rest at debug.
*/
package tracing
