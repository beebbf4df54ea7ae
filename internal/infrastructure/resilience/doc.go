/*
Package resilience provides the circuit breaker that guards calls to a remote
evaluation server.

# Usage

	breaker := resilience.New("polyprec-server", resilience.Settings{
		MaxRequests: 2,
		Timeout:     10 * time.Second,
		IsFailure: func(err error) bool {
			return err != nil && !errors.Is(err, client.ErrRejected)
		},
	})

	res, err := resilience.Do(ctx, breaker, func(ctx context.Context) (*Result, error) {
		return c.evaluate(ctx, req)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                       [failure]
	                                           v
	                                         Open

Each transition, and each closed-state interval, starts a new generation.
Outcomes of calls admitted in an older generation are ignored.
*/
package resilience
