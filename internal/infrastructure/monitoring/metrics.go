package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/GriffinCanCode/polyprec/internal/orthopoly"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Service metrics
	ServiceCalls    *prometheus.CounterVec
	ServiceDuration *prometheus.HistogramVec
	ServiceErrors   *prometheus.CounterVec

	// Evaluation metrics
	Evaluations        *prometheus.CounterVec
	EvaluationDuration *prometheus.HistogramVec
	EvaluationPasses   *prometheus.HistogramVec
	EvaluationRestarts *prometheus.CounterVec
	WorkingPrecision   *prometheus.HistogramVec

	startTime time.Time

	// Snapshot for the JSON health view
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds running totals for the JSON health view.
type Snapshot struct {
	TotalRequests    int64   `json:"total_requests"`
	TotalErrors      int64   `json:"total_errors"`
	TotalDuration    float64 `json:"total_duration_seconds"`
	Evaluations      int64   `json:"evaluations"`
	EvaluationErrors int64   `json:"evaluation_errors"`
	NaNResults       int64   `json:"nan_results"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses the default Prometheus registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polyprec_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polyprec_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polyprec_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method", "path"},
		),
		ResponseSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polyprec_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method", "path"},
		),

		ServiceCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polyprec_service_calls_total",
				Help: "Total number of service tool calls",
			},
			[]string{"service", "tool", "status"},
		),
		ServiceDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polyprec_service_duration_seconds",
				Help:    "Service tool call duration in seconds",
				Buckets: []float64{.0001, .001, .005, .01, .025, .05, .1, .25, .5, 1, 5},
			},
			[]string{"service", "tool"},
		),
		ServiceErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polyprec_service_errors_total",
				Help: "Total number of service tool errors",
			},
			[]string{"service", "tool", "error_type"},
		),

		Evaluations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polyprec_evaluations_total",
				Help: "Total number of polynomial evaluations",
			},
			[]string{"family", "path", "rounding", "outcome"},
		),
		EvaluationDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polyprec_evaluation_duration_seconds",
				Help:    "Polynomial evaluation time in seconds",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
			},
			[]string{"family", "path"},
		),
		EvaluationPasses: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polyprec_evaluation_passes",
				Help:    "Ziv passes per evaluation",
				Buckets: []float64{1, 2, 3, 4, 6, 8, 12, 16},
			},
			[]string{"family", "path"},
		),
		EvaluationRestarts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polyprec_evaluation_restarts_total",
				Help: "Recurrence restarts after catastrophic cancellation",
			},
			[]string{"family"},
		),
		WorkingPrecision: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polyprec_working_precision_bits",
				Help:    "Final working precision of accepted evaluations",
				Buckets: prometheus.ExponentialBuckets(64, 2, 12),
			},
			[]string{"family"},
		),
	}

	f.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "polyprec_uptime_seconds",
			Help: "Service uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordServiceCall records a service tool call
func (m *Metrics) RecordServiceCall(service, tool, status string, duration time.Duration) {
	m.ServiceCalls.WithLabelValues(service, tool, status).Inc()
	m.ServiceDuration.WithLabelValues(service, tool).Observe(duration.Seconds())
}

// RecordServiceError records a service tool error
func (m *Metrics) RecordServiceError(service, tool, errorType string) {
	m.ServiceErrors.WithLabelValues(service, tool, errorType).Inc()
}

// ObserveEvaluation implements orthopoly.Observer.
func (m *Metrics) ObserveEvaluation(s orthopoly.Stats) {
	family, path := s.Family.String(), s.Path.String()

	outcome := "ok"
	switch {
	case s.Err != nil:
		outcome = "error"
	case s.NaN:
		outcome = "nan"
	case s.Ternary == 0:
		outcome = "exact"
	}

	m.Evaluations.WithLabelValues(family, path, s.Rounding.String(), outcome).Inc()
	m.EvaluationDuration.WithLabelValues(family, path).Observe(s.Elapsed.Seconds())
	if s.Path != orthopoly.PathSpecial {
		m.EvaluationPasses.WithLabelValues(family, path).Observe(float64(s.Passes))
	}
	if s.Restarts > 0 {
		m.EvaluationRestarts.WithLabelValues(family).Add(float64(s.Restarts))
	}
	if s.Err == nil && s.Precision > 0 {
		m.WorkingPrecision.WithLabelValues(family).Observe(float64(s.Precision))
	}

	m.mu.Lock()
	m.snapshot.Evaluations++
	if s.Err != nil {
		m.snapshot.EvaluationErrors++
	}
	if s.NaN {
		m.snapshot.NaNResults++
	}
	m.mu.Unlock()
}

// Snapshot returns the running totals.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	s := m.snapshot
	m.mu.RUnlock()
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}

// statusLabel formats an HTTP status code for labels.
func statusLabel(code int) string {
	return strconv.Itoa(code)
}
