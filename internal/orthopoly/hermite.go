package orthopoly

import (
	"github.com/GriffinCanCode/polyprec/internal/apfloat"
	"github.com/GriffinCanCode/polyprec/internal/errbound"
	"github.com/GriffinCanCode/polyprec/internal/ziv"
)

// hermiteTask runs the recursion
//
//	p_{i+1} = 2x·p_i − 2i·p_{i−1}
//
// from p_0 = 1, p_1 = 2x.
type hermiteTask struct {
	recurrence

	// overflow is set when a term leaves the big.Float exponent range. For
	// such x the leading term (2x)^n dominates, so the result overflows too
	// with the sign of x^n.
	overflow bool
}

func newHermiteTask(n int, x *apfloat.Float, target uint, rnd apfloat.RoundingMode) *hermiteTask {
	return &hermiteTask{recurrence: newRecurrence(n, x, target, rnd)}
}

func (t *hermiteTask) initial() uint {
	return ziv.Initial(t.target, t.x.Prec(), errbound.HermiteGuard(t.n))
}

// Compute implements ziv.Task.
func (t *hermiteTask) Compute(prec uint) ziv.Signal {
	ws := t.ws
	t.overflow = false

	// a = 2x, scaling is exact
	acc := ws.a.Set(t.x).Acc()
	ea := errbound.Rounding(ws.a, acc).Scale(1)
	if ws.a.SetMantExp(ws.a, 1).IsInf() {
		t.overflow = true
		return ziv.Signal{}
	}
	ws.reset(ws.a, ea)

	for i := 1; i < t.n; i++ {
		newer, older := ws.slots()
		p1, e1 := ws.win[newer], ws.err[newer]
		p0, e0 := ws.win[older], ws.err[older]
		u := uint64(i)

		// s = 2x·p_i, exact unless out of range
		sacc := apfloat.ExactMul(ws.s, ws.a, p1)

		// c = 2i·p_{i−1}
		cacc := apfloat.MulUint(ws.c, p0, 2*u)

		if ws.s.IsInf() || ws.c.IsInf() {
			t.overflow = true
			return ziv.Signal{}
		}
		es := errbound.MulErr(ws.s, sacc, ws.a, ea, p1, e1)
		ec := errbound.MulUintErr(ws.c, cacc, e0, 2*u)

		if lost, abort := t.cancels(prec, ws.s, es, ws.c, ec); abort {
			return ziv.Signal{Restart: true, Lost: lost}
		}

		// p_{i+1} overwrites p_{i−1}
		acc = p0.Sub(ws.s, ws.c).Acc()
		if p0.IsInf() {
			t.overflow = true
			return ziv.Signal{}
		}
		ws.rotate(older, errbound.SubErr(p0, acc, es, ec))
	}
	return ziv.Signal{}
}

// Check implements ziv.Task.
func (t *hermiteTask) Check(prec uint) ziv.Verdict {
	if t.overflow {
		return ziv.Verdict{Done: true}
	}
	return t.recurrence.Check(prec)
}

func (t *hermiteTask) round(res *apfloat.Float, rng apfloat.Range) apfloat.Ternary {
	if t.overflow {
		return rng.Overflow(res, t.rnd, t.x.Signbit() && t.n%2 == 1)
	}
	return t.recurrence.round(res, rng)
}
