package batch

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/polyprec/internal/apfloat"
	"github.com/GriffinCanCode/polyprec/internal/client"
	"github.com/GriffinCanCode/polyprec/internal/orthopoly"
)

// Outcome is a rounded value
type Outcome struct {
	Value   string
	Ternary int
}

// Backend evaluates one job whose defaults are already filled in
type Backend interface {
	Eval(ctx context.Context, job Job) (Outcome, error)
}

// Local evaluates in process
type Local struct {
	Evaluator *orthopoly.Evaluator
}

// Eval implements Backend
func (l Local) Eval(ctx context.Context, job Job) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	family, err := orthopoly.ParseFamily(job.Family)
	if err != nil {
		return Outcome{}, err
	}
	rnd, err := apfloat.ParseRoundingMode(job.Rounding)
	if err != nil {
		return Outcome{}, err
	}
	if job.Precision > l.Evaluator.MaxPrecision() || job.XPrecision > l.Evaluator.MaxPrecision() {
		return Outcome{}, fmt.Errorf("precision exceeds %d bits", l.Evaluator.MaxPrecision())
	}
	x, _, err := apfloat.Parse(string(job.X), job.XPrecision, apfloat.RoundNearest)
	if err != nil {
		return Outcome{}, err
	}

	res := apfloat.New(job.Precision)
	t, err := l.Evaluator.Evaluate(family, res, job.N, x, rnd)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Value: res.Text('g', -1), Ternary: int(t)}, nil
}

// Remote evaluates on a polyprec server
type Remote struct {
	Client *client.Client
}

// Eval implements Backend
func (r Remote) Eval(ctx context.Context, job Job) (Outcome, error) {
	ev, err := r.Client.Evaluate(ctx, client.EvalRequest{
		Family:     job.Family,
		N:          job.N,
		X:          string(job.X),
		Precision:  job.Precision,
		XPrecision: job.XPrecision,
		Rounding:   job.Rounding,
	})
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Value: ev.Value, Ternary: ev.Ternary}, nil
}
