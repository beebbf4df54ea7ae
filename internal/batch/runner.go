package batch

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GriffinCanCode/polyprec/internal/apfloat"
	"github.com/GriffinCanCode/polyprec/internal/orthopoly"
	"github.com/GriffinCanCode/polyprec/internal/shared/id"
)

// Result is the outcome of one job
type Result struct {
	ID        string `json:"id"`
	Family    string `json:"family"`
	N         int    `json:"n"`
	X         string `json:"x"`
	Precision uint   `json:"precision"`
	Rounding  string `json:"rounding"`
	Value     string `json:"value,omitempty"`
	Ternary   int    `json:"ternary"`
	Error     string `json:"error,omitempty"`
}

// Report is the output of a run, results in input order
type Report struct {
	RunID   string   `json:"run_id"`
	Results []Result `json:"results"`
	Failed  int      `json:"failed"`
}

// Runner evaluates jobs concurrently
type Runner struct {
	backend     Backend
	workers     int
	defaultPrec uint
	logger      *zap.Logger
}

// Option configures a Runner
type Option func(*Runner)

// WithWorkers sets the number of concurrent evaluations
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithDefaultPrecision sets the result precision of jobs that name none
func WithDefaultPrecision(prec uint) Option {
	return func(r *Runner) {
		if prec > 0 {
			r.defaultPrec = prec
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a runner over backend
func NewRunner(backend Backend, opts ...Option) *Runner {
	r := &Runner{
		backend:     backend,
		workers:     4,
		defaultPrec: 53,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run evaluates jobs. A failing job is reported in its result; only
// cancellation of ctx fails the run.
func (r *Runner) Run(ctx context.Context, jobs []Job) (*Report, error) {
	runID := id.NewRunID()
	start := time.Now()
	logger := r.logger.With(zap.Stringer("run_id", runID))
	logger.Info("batch started", zap.Int("jobs", len(jobs)), zap.Int("workers", r.workers))

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range jobs {
		job := r.normalize(jobs[i])
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			results[i] = r.runJob(gctx, logger, job)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep := &Report{RunID: runID.String(), Results: results}
	for _, res := range results {
		if res.Error != "" {
			rep.Failed++
		}
	}
	logger.Info("batch finished",
		zap.Int("jobs", len(jobs)),
		zap.Int("failed", rep.Failed),
		zap.Duration("elapsed", time.Since(start)))
	return rep, nil
}

func (r *Runner) normalize(job Job) Job {
	if job.ID == "" {
		job.ID = id.NewJobID().String()
	}
	if job.Precision == 0 {
		job.Precision = r.defaultPrec
	}
	if job.XPrecision == 0 {
		job.XPrecision = max(job.Precision, 64)
	}
	if f, err := orthopoly.ParseFamily(job.Family); err == nil {
		job.Family = f.String()
	}
	if rnd, err := apfloat.ParseRoundingMode(job.Rounding); err == nil {
		job.Rounding = rnd.String()
	}
	return job
}

func (r *Runner) runJob(ctx context.Context, logger *zap.Logger, job Job) Result {
	res := Result{
		ID:        job.ID,
		Family:    job.Family,
		N:         job.N,
		X:         string(job.X),
		Precision: job.Precision,
		Rounding:  job.Rounding,
	}

	out, err := r.backend.Eval(ctx, job)
	if err != nil {
		logger.Debug("job failed", zap.String("job_id", job.ID), zap.Error(err))
		res.Error = err.Error()
		return res
	}
	res.Value, res.Ternary = out.Value, out.Ternary
	return res
}
