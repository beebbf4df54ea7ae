package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/GriffinCanCode/polyprec/internal/infrastructure/config"
	"github.com/GriffinCanCode/polyprec/internal/infrastructure/logging"
	"github.com/GriffinCanCode/polyprec/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/polyprec/internal/infrastructure/server"
	"github.com/GriffinCanCode/polyprec/internal/infrastructure/tracing"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig(url string) Config {
	cfg := DefaultConfig(url)
	cfg.Timeout = 5 * time.Second
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = 5 * time.Millisecond
	return cfg
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.RateLimit.Enabled = false
	srv, err := server.NewServerWithLogger(cfg, logging.Nop())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		require.NoError(t, srv.Shutdown(context.Background()))
	})
	return ts
}

func TestEvaluateAgainstServer(t *testing.T) {
	ts := newServer(t)
	c := New(testConfig(ts.URL), nil)
	defer c.Close()

	ev, err := c.Evaluate(context.Background(), EvalRequest{Family: "legendre", N: 3, X: "0.5"})
	require.NoError(t, err)
	assert.Equal(t, &Evaluation{Value: "-0.4375", Ternary: 0, Precision: 53, Rounding: "RNDN"}, ev)

	ev, err = c.Evaluate(context.Background(), EvalRequest{
		Family: "hermite", N: 1, X: "0.1", Precision: 24, XPrecision: 80, Rounding: "RNDU",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, ev.Ternary)
	assert.Equal(t, uint(24), ev.Precision)
	assert.Equal(t, "RNDU", ev.Rounding)

	health, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", health["status"])
}

func TestToolFailureDoesNotTrip(t *testing.T) {
	ts := newServer(t)
	cfg := testConfig(ts.URL)
	cfg.Breaker.ReadyToTrip = func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 1 }
	c := New(cfg, nil)
	defer c.Close()

	for i := 0; i < 3; i++ {
		_, err := c.Evaluate(context.Background(), EvalRequest{Family: "legendre", N: 3, X: "half"})
		assert.ErrorIs(t, err, ErrToolFailed)
	}
	_, err := c.Evaluate(context.Background(), EvalRequest{Family: "chebyshev", N: 3, X: "0.5"})
	assert.ErrorIs(t, err, ErrToolFailed)

	_, err = c.Execute(context.Background(), "physics.gravity", nil)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, se.Message, "service not found")

	assert.Equal(t, resilience.StateClosed, c.BreakerState())
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"value":"1","ternary":0,"precision":53,"rounding":"RNDN","nan":false}}`))
	}))
	defer ts.Close()

	c := New(testConfig(ts.URL), nil)
	defer c.Close()

	ev, err := c.Evaluate(context.Background(), EvalRequest{Family: "legendre", N: 0, X: "0.3"})
	require.NoError(t, err)
	assert.Equal(t, "1", ev.Value)
	assert.Equal(t, int32(3), calls.Load())
}

func TestBreakerOpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer ts.Close()

	cfg := testConfig(ts.URL)
	cfg.RetryMax = 0
	cfg.Breaker.ReadyToTrip = func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 2 }
	c := New(cfg, nil)
	defer c.Close()

	for i := 0; i < 2; i++ {
		_, err := c.Execute(context.Background(), "math.legendre", nil)
		assert.ErrorIs(t, err, ErrServer)
		assert.Contains(t, err.Error(), "boom")
	}
	assert.Equal(t, resilience.StateOpen, c.BreakerState())

	_, err := c.Execute(context.Background(), "math.legendre", nil)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load(), "an open breaker short-circuits")
}

func TestRejectionsDoNotTrip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad tool_id"}`))
	}))
	defer ts.Close()

	cfg := testConfig(ts.URL)
	cfg.Breaker.ReadyToTrip = func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 1 }
	c := New(cfg, nil)
	defer c.Close()

	for i := 0; i < 3; i++ {
		_, err := c.Execute(context.Background(), "x.y", nil)
		assert.ErrorIs(t, err, ErrRejected)
	}
	assert.Equal(t, resilience.StateClosed, c.BreakerState())
	assert.Equal(t, uint32(3), c.BreakerCounts().TotalSuccesses)
}

func TestForwardsTraceContext(t *testing.T) {
	headers := make(chan http.Header, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer ts.Close()

	c := New(testConfig(ts.URL), nil)
	defer c.Close()

	ctx := tracing.WithSpanContext(context.Background(), "trace-7", "span-7")
	_, err := c.Execute(ctx, "math.legendre", nil)
	require.NoError(t, err)

	h := <-headers
	assert.Equal(t, "trace-7", h.Get(tracing.TraceHeader))
	assert.Equal(t, "span-7", h.Get(tracing.SpanHeader))
	assert.Equal(t, "polyprec-client/1.0", h.Get("User-Agent"))
}

func TestCanceledContext(t *testing.T) {
	c := New(testConfig("http://127.0.0.1:1"), nil)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Execute(ctx, "math.legendre", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint32(0), c.BreakerCounts().Requests)
}
