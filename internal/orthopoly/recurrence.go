package orthopoly

import (
	"math/big"

	"github.com/GriffinCanCode/polyprec/internal/apfloat"
	"github.com/GriffinCanCode/polyprec/internal/errbound"
	"github.com/GriffinCanCode/polyprec/internal/ziv"
)

// recurrence holds what the Legendre and Hermite steppers share: the
// workspace, the target, and the Check and final rounding.
type recurrence struct {
	n      int
	x      *big.Float // borrowed from the caller, read only
	target uint
	rnd    apfloat.RoundingMode
	ws     *workspace
}

func newRecurrence(n int, x *apfloat.Float, target uint, rnd apfloat.RoundingMode) recurrence {
	return recurrence{
		n:      n,
		x:      x.Big(),
		target: target,
		rnd:    rnd,
		ws:     acquireWorkspace(),
	}
}

// Resize implements ziv.Task.
func (r *recurrence) Resize(prec uint) {
	r.ws.resize(prec)
}

// Check implements ziv.Task.
func (r *recurrence) Check(uint) ziv.Verdict {
	v, err := r.ws.newest()
	if apfloat.CanRound(v, err, r.target, r.rnd) {
		return ziv.Verdict{Done: true}
	}
	return ziv.Verdict{Shortfall: shortfall(v, err, r.target)}
}

// cancels reports whether s − c loses more bits than the margin allows.
// Exact operands never abort: their difference is rounded once.
func (r *recurrence) cancels(prec uint, s *big.Float, es errbound.Bound, c *big.Float, ec errbound.Bound) (uint, bool) {
	if es.IsZero() && ec.IsZero() {
		return 0, false
	}
	lost, ok := errbound.Cancellation(s, c)
	if !ok || prec <= r.target || lost <= prec-r.target {
		return 0, false
	}
	return lost, true
}

func (r *recurrence) round(res *apfloat.Float, rng apfloat.Range) apfloat.Ternary {
	v, _ := r.ws.newest()
	return rng.Round(res, v, r.rnd)
}

func (r *recurrence) release() {
	r.ws.release()
	r.ws = nil
}

// shortfall estimates the bits missing for err to sit well below the
// target ulp of v, or 0 when v carries no information.
func shortfall(v *big.Float, err errbound.Bound, target uint) uint {
	if v.Sign() == 0 || err.IsZero() {
		return 0
	}
	need := v.MantExp(nil) - int(target) - 2
	if have := err.Log2(); have > need {
		return uint(have - need)
	}
	return 0
}
