package server

import (
	"context"
	"encoding/json"
	"net"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/GriffinCanCode/polyprec/internal/infrastructure/config"
	"github.com/GriffinCanCode/polyprec/internal/infrastructure/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"
	if mutate != nil {
		mutate(cfg)
	}
	s, err := NewServerWithLogger(cfg, logging.Nop())
	require.NoError(t, err)
	return s
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	defer s.Shutdown(context.Background())

	for _, path := range []string{"/", "/health", "/services", "/services/discover?q=hermite", "/metrics"} {
		req := httptest.NewRequest(stdhttp.MethodGet, path, nil)
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		assert.Equal(t, stdhttp.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
		assert.NotEmpty(t, w.Header().Get("X-Trace-ID"), path)
	}
}

func TestExecuteThroughServer(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Eval.DefaultPrecision = 24 })
	defer s.Shutdown(context.Background())

	body := `{"tool_id":"math.legendre","params":{"n":2,"x":"0.5"}}`
	req := httptest.NewRequest(stdhttp.MethodPost, "/services/execute", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, stdhttp.StatusOK, w.Code, w.Body.String())

	var out struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.Equal(t, "-0.125", out.Data["value"])
	assert.Equal(t, 24.0, out.Data["precision"])

	req = httptest.NewRequest(stdhttp.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "polyprec_evaluations_total")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRateLimitFromConfig(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.RateLimit.RequestsPerSecond = 1
		c.RateLimit.Burst = 1
	})
	defer s.Shutdown(context.Background())

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, httptest.NewRequest(stdhttp.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{stdhttp.StatusOK, stdhttp.StatusTooManyRequests}, codes)
}

func TestInvalidConfigRejected(t *testing.T) {
	cfg := config.Default()
	cfg.Eval.DefaultPrecision = 0
	_, err := NewServerWithLogger(cfg, logging.Nop())
	assert.Error(t, err)
}

func TestServeAndShutdown(t *testing.T) {
	s := newTestServer(t, nil)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Serve(l) }()

	client := &stdhttp.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + l.Addr().String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	client.CloseIdleConnections()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.NoError(t, <-done)
}
