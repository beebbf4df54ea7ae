package orthopoly

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/polyprec/internal/apfloat"
	"github.com/GriffinCanCode/polyprec/internal/ziv"
)

// DefaultMaxDegree is the default degree ceiling.
const DefaultMaxDegree = 8192

// Evaluator evaluates Legendre and Hermite polynomials with correct rounding.
type Evaluator struct {
	maxDegree int
	maxPrec   uint
	rng       apfloat.Range
	logger    *zap.Logger
	observer  Observer
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMaxDegree sets the degree ceiling. Degrees above it return NaN.
// Zero disables the ceiling.
func WithMaxDegree(n int) Option {
	return func(e *Evaluator) {
		e.maxDegree = max(n, 0)
	}
}

// WithMaxPrecision caps the working precision in bits. Zero restores
// ziv.DefaultLimit.
func WithMaxPrecision(prec uint) Option {
	return func(e *Evaluator) {
		if prec == 0 {
			prec = ziv.DefaultLimit
		}
		e.maxPrec = prec
	}
}

// WithRange sets the exponent range of results.
func WithRange(r apfloat.Range) Option {
	return func(e *Evaluator) {
		e.rng = r
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver registers an observer for evaluation statistics.
func WithObserver(o Observer) Option {
	return func(e *Evaluator) {
		if o != nil {
			e.observer = o
		}
	}
}

// New returns an Evaluator with the given options applied over the defaults.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		maxDegree: DefaultMaxDegree,
		maxPrec:   ziv.DefaultLimit,
		rng:       apfloat.DefaultRange(),
		logger:    zap.NewNop(),
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxDegree returns the degree ceiling, zero when disabled.
func (e *Evaluator) MaxDegree() int {
	return e.maxDegree
}

// MaxPrecision returns the working precision ceiling in bits.
func (e *Evaluator) MaxPrecision() uint {
	return e.maxPrec
}

// Legendre sets res to Pₙ(x) correctly rounded to res's precision by rnd and
// returns the ternary value. The only error is ziv.ErrPrecisionLimit, in
// which case res is NaN.
func (e *Evaluator) Legendre(res *apfloat.Float, n int, x *apfloat.Float, rnd apfloat.RoundingMode) (apfloat.Ternary, error) {
	return e.evaluate(FamilyLegendre, res, n, x, rnd)
}

// Hermite sets res to Hₙ(x) correctly rounded to res's precision by rnd and
// returns the ternary value. The only error is ziv.ErrPrecisionLimit, in
// which case res is NaN.
func (e *Evaluator) Hermite(res *apfloat.Float, n int, x *apfloat.Float, rnd apfloat.RoundingMode) (apfloat.Ternary, error) {
	return e.evaluate(FamilyHermite, res, n, x, rnd)
}

// Evaluate dispatches on the family.
func (e *Evaluator) Evaluate(f Family, res *apfloat.Float, n int, x *apfloat.Float, rnd apfloat.RoundingMode) (apfloat.Ternary, error) {
	switch f {
	case FamilyLegendre, FamilyHermite:
		return e.evaluate(f, res, n, x, rnd)
	default:
		return apfloat.Exact, fmt.Errorf("orthopoly: unknown family %s", f)
	}
}

// task is a ziv.Task that also knows its start precision and how to
// deliver its result.
type task interface {
	ziv.Task
	initial() uint
	round(res *apfloat.Float, rng apfloat.Range) apfloat.Ternary
	release()
}

func (e *Evaluator) evaluate(f Family, res *apfloat.Float, n int, x *apfloat.Float, rnd apfloat.RoundingMode) (t apfloat.Ternary, err error) {
	start := time.Now()
	st := Stats{Family: f, Degree: n, Rounding: rnd, Target: res.Prec()}
	defer func() {
		st.Ternary = t
		st.NaN = res.IsNaN()
		st.Elapsed = time.Since(start)
		st.Err = err
		e.observer.ObserveEvaluation(st)
	}()

	r, t := e.classify(f, res, n, x, rnd)

	var tk task
	switch r {
	case routeDone:
		st.Path = PathSpecial
		return t, nil
	case routeLeadingTerm:
		st.Path = PathLeadingTerm
		return t, nil
	case routeClosedForm:
		st.Path = PathClosedForm
		tk = newClosedFormTask(f, n, res.Prec(), rnd, e.rng)
	case routeRecurrence:
		st.Path = PathRecurrence
		if f == FamilyLegendre {
			tk = newLegendreTask(n, x, res.Prec(), rnd)
		} else {
			tk = newHermiteTask(n, x, res.Prec(), rnd)
		}
	}
	defer tk.release()

	loop, err := ziv.New(tk.initial(), e.maxPrec, e.logger)
	if err == nil {
		err = loop.Run(tk)
		ls := loop.Stats()
		st.Precision, st.Passes, st.Restarts = ls.Precision, ls.Passes, ls.Restarts
	}
	if err != nil {
		res.SetNaN()
		e.logger.Warn("orthopoly: evaluation abandoned",
			zap.Stringer("family", f),
			zap.Int("degree", n),
			zap.Uint("target", res.Prec()),
			zap.Error(err))
		return apfloat.Exact, fmt.Errorf("orthopoly: %s degree %d: %w", f, n, err)
	}

	t = tk.round(res, e.rng)
	e.logger.Debug("orthopoly: evaluated",
		zap.Stringer("family", f),
		zap.Int("degree", n),
		zap.Stringer("path", st.Path),
		zap.Uint("target", res.Prec()),
		zap.Uint("prec", st.Precision),
		zap.Int("passes", st.Passes),
		zap.Int("restarts", st.Restarts))
	return t, nil
}

var defaultEvaluator = New()

// Legendre sets res to Pₙ(x) correctly rounded to res's precision by rnd and
// returns the ternary value, using the default degree ceiling and precision
// limit. Exhausting the precision limit is fatal and panics.
func Legendre(res *apfloat.Float, n int, x *apfloat.Float, rnd apfloat.RoundingMode) apfloat.Ternary {
	t, err := defaultEvaluator.Legendre(res, n, x, rnd)
	if err != nil {
		panic(err)
	}
	return t
}

// Hermite sets res to Hₙ(x) correctly rounded to res's precision by rnd and
// returns the ternary value, using the default degree ceiling and precision
// limit. Exhausting the precision limit is fatal and panics.
func Hermite(res *apfloat.Float, n int, x *apfloat.Float, rnd apfloat.RoundingMode) apfloat.Ternary {
	t, err := defaultEvaluator.Hermite(res, n, x, rnd)
	if err != nil {
		panic(err)
	}
	return t
}
