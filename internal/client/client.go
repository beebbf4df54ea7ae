package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/polyprec/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/polyprec/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/polyprec/internal/types"
)

var (
	// ErrRejected marks 4xx responses. They do not count against the breaker.
	ErrRejected = errors.New("request rejected")
	// ErrServer marks 5xx responses left after retries.
	ErrServer = errors.New("server error")
	// ErrToolFailed marks tool results with success false.
	ErrToolFailed = errors.New("tool failed")
)

// StatusError is a non-2xx response
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d", e.Code)
	}
	return fmt.Sprintf("http %d: %s", e.Code, e.Message)
}

// Unwrap classifies the status as ErrRejected or ErrServer
func (e *StatusError) Unwrap() error {
	if e.Code < http.StatusInternalServerError {
		return ErrRejected
	}
	return ErrServer
}

// Config configures a Client
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// RateLimit caps outgoing requests per second. Zero is unlimited.
	RateLimit float64
	Breaker   resilience.Settings
	UserAgent string
}

// DefaultConfig returns the settings used by the CLI
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:      baseURL,
		Timeout:      30 * time.Second,
		RetryMax:     3,
		RetryWaitMin: 250 * time.Millisecond,
		RetryWaitMax: 5 * time.Second,
		Breaker: resilience.Settings{
			MaxRequests: 2,
			Interval:    60 * time.Second,
			Timeout:     15 * time.Second,
			ReadyToTrip: func(counts resilience.Counts) bool {
				return counts.ConsecutiveFailures >= 5 ||
					(counts.Requests >= 20 && float64(counts.TotalFailures)/float64(counts.Requests) > 0.5)
			},
		},
		UserAgent: "polyprec-client/1.0",
	}
}

// Client calls a polyprec server with retries, rate limiting and a
// circuit breaker
type Client struct {
	resty   *resty.Client
	retry   *retryablehttp.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
	logger  *zap.Logger
}

type errorBody struct {
	Error string `json:"error"`
}

// New creates a client. logger may be nil.
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = leveledLogger{logger.Named("retry").Sugar()}
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	restyClient := resty.NewWithClient(retryClient.StandardClient())
	restyClient.
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.UserAgent)
	restyClient.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		tracing.Inject(r.Context(), r.Header)
		return nil
	})

	settings := cfg.Breaker
	settings.IsFailure = isFailure
	name := "polyprec-remote"
	settings.OnStateChange = func(_ string, from, to resilience.State) {
		logger.Warn("circuit breaker state changed",
			zap.String("breaker", name),
			zap.Stringer("from", from),
			zap.Stringer("to", to))
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(int(cfg.RateLimit), 1))
	}

	return &Client{
		resty:   restyClient,
		retry:   retryClient,
		limiter: limiter,
		breaker: resilience.New(name, settings),
		logger:  logger,
	}
}

func isFailure(err error) bool {
	return err != nil &&
		!errors.Is(err, ErrRejected) &&
		!errors.Is(err, ErrToolFailed) &&
		!errors.Is(err, context.Canceled)
}

// Execute runs a tool on the server. A result with success false is
// returned together with an ErrToolFailed error.
func (c *Client) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	result, err := resilience.Do(ctx, c.breaker, func(ctx context.Context) (*types.Result, error) {
		var (
			result types.Result
			apiErr errorBody
		)
		resp, err := c.resty.R().
			SetContext(ctx).
			SetBody(types.ExecuteRequest{ToolID: toolID, Params: params}).
			SetResult(&result).
			SetError(&apiErr).
			Post("/services/execute")
		if err != nil {
			return nil, fmt.Errorf("execute %s: %w", toolID, err)
		}
		if resp.IsError() {
			return nil, &StatusError{Code: resp.StatusCode(), Message: apiErr.Error}
		}
		return &result, nil
	})
	if err != nil {
		c.logger.Debug("remote call failed", zap.String("tool_id", toolID), zap.Error(err))
		return nil, err
	}

	if !result.Success {
		msg := "unknown error"
		if result.Error != nil {
			msg = *result.Error
		}
		return result, fmt.Errorf("%w: %s: %s", ErrToolFailed, toolID, msg)
	}
	return result, nil
}

// Health fetches /health
func (c *Client) Health(ctx context.Context) (map[string]interface{}, error) {
	return resilience.Do(ctx, c.breaker, func(ctx context.Context) (map[string]interface{}, error) {
		var body map[string]interface{}
		resp, err := c.resty.R().SetContext(ctx).SetResult(&body).Get("/health")
		if err != nil {
			return nil, fmt.Errorf("health: %w", err)
		}
		if resp.IsError() {
			return nil, &StatusError{Code: resp.StatusCode(), Message: resp.String()}
		}
		return body, nil
	})
}

// BreakerState returns the current circuit breaker state
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

// BreakerCounts returns circuit breaker statistics
func (c *Client) BreakerCounts() resilience.Counts {
	return c.breaker.Counts()
}

// Close releases idle connections
func (c *Client) Close() {
	c.retry.HTTPClient.CloseIdleConnections()
}

// leveledLogger adapts zap to retryablehttp.LeveledLogger
type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.s.Errorw(msg, kv...) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.s.Warnw(msg, kv...) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.s.Debugw(msg, kv...) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
