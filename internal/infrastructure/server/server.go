package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/polyprec/internal/api/http"
	"github.com/GriffinCanCode/polyprec/internal/api/middleware"
	"github.com/GriffinCanCode/polyprec/internal/infrastructure/config"
	"github.com/GriffinCanCode/polyprec/internal/infrastructure/logging"
	"github.com/GriffinCanCode/polyprec/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/polyprec/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/polyprec/internal/orthopoly"
	mathProvider "github.com/GriffinCanCode/polyprec/internal/providers/math"
	"github.com/GriffinCanCode/polyprec/internal/service"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *stdhttp.Server
	registry *service.Registry
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	return NewServerWithLogger(cfg, logging.NewFromLevel(cfg.Logging.Level, cfg.Logging.Development))
}

// NewServerWithLogger creates a server that logs to logger
func NewServerWithLogger(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger.Info("Initializing polyprec server",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.Int("max_degree", cfg.Eval.MaxDegree),
		zap.Uint("max_precision", cfg.Eval.MaxPrecision),
	)

	// Metrics go to a private registry so tests can build several servers.
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(reg)
	tracer := tracing.New("polyprec", logger.Logger)

	ev := cfg.Evaluator(
		orthopoly.WithLogger(logger.Named("orthopoly")),
		orthopoly.WithObserver(metrics),
	)

	serviceRegistry := service.NewRegistry().WithMetrics(metrics).WithTracer(tracer)
	if err := serviceRegistry.Register(mathProvider.NewProvider(ev, cfg.Eval.DefaultPrecision)); err != nil {
		tracer.Close()
		return nil, fmt.Errorf("register math provider: %w", err)
	}
	logger.Info("Service registry initialized", zap.Any("stats", serviceRegistry.Stats()))

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(nil))
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := http.NewHandlers(serviceRegistry, metrics, logger.Logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	router.GET("/services", handlers.ListServices)
	router.GET("/services/discover", handlers.DiscoverServices)
	router.POST("/services/execute", middleware.MaxBodySize(middleware.DefaultMaxBodySize), handlers.ExecuteService)

	router.GET("/metrics", http.MetricsHandler(reg))

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		registry: serviceRegistry,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
		tracer:   tracer,
		http: &stdhttp.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler returns the HTTP handler
func (s *Server) Handler() stdhttp.Handler {
	return s.router
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.http.Addr
}

// Run serves until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve serves on an existing listener until Shutdown is called
func (s *Server) Serve(l net.Listener) error {
	if err := s.http.Serve(l); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then stops the tracer and flushes logs
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	err := s.http.Shutdown(ctx)
	s.tracer.Close()
	_ = s.logger.Sync()
	return err
}
