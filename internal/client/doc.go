// Package client is the remote evaluation client used by `polyeval batch
// --remote`.
//
// Requests go through resty with sonic as the JSON codec. The transport is
// a go-retryablehttp client, which retries connection errors, 429 and 5xx
// with backoff. Each call first waits on a token-bucket limiter and then
// runs inside a circuit breaker. Rejections (4xx) and failed tool results
// do not count as breaker failures. The trace context of the caller's
// context is forwarded as X-Trace-ID and X-Span-ID.
//
// Example Usage:
//
//	c := client.New(client.DefaultConfig("http://localhost:8000"), logger)
//	defer c.Close()
//	ev, err := c.Evaluate(ctx, client.EvalRequest{Family: "legendre", N: 10, X: "0.5"})
package client
