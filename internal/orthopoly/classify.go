package orthopoly

import (
	"math/big"

	"github.com/GriffinCanCode/polyprec/internal/apfloat"
)

type route int

const (
	routeDone route = iota
	routeLeadingTerm
	routeClosedForm
	routeRecurrence
)

// classify settles every input that needs no iteration. For routeDone and
// routeLeadingTerm, res holds the result and the ternary is returned.
func (e *Evaluator) classify(f Family, res *apfloat.Float, n int, x *apfloat.Float, rnd apfloat.RoundingMode) (route, apfloat.Ternary) {
	if n < 0 || (e.maxDegree > 0 && n > e.maxDegree) || !x.IsFinite() {
		res.SetNaN()
		return routeDone, apfloat.Exact
	}

	if f == FamilyLegendre {
		hi, _ := x.CmpInt64(1)
		lo, _ := x.CmpInt64(-1)
		switch {
		case hi > 0 || lo < 0:
			res.SetNaN()
			return routeDone, apfloat.Exact
		case hi == 0:
			return routeDone, res.SetInt64(1, rnd)
		case lo == 0:
			return routeDone, res.SetInt64(1-2*int64(n%2), rnd)
		}
	}

	switch {
	case n == 0:
		return routeDone, res.SetInt64(1, rnd)

	case n == 1 && f == FamilyLegendre:
		return routeDone, e.rng.Round(res, x.Big(), rnd)

	case n == 1:
		var twice big.Float
		if twice.SetMantExp(x.Big(), 1).IsInf() {
			return routeDone, e.rng.Overflow(res, rnd, twice.Signbit())
		}
		return routeDone, e.rng.Round(res, &twice, rnd)

	case x.IsZero() && n%2 == 1:
		// odd polynomials keep the sign of zero
		res.SetZero(x.Signbit())
		return routeDone, apfloat.Exact

	case x.IsZero():
		return routeClosedForm, apfloat.Exact
	}

	if t, ok := e.leadingTerm(f, res, n, x, rnd); ok {
		return routeLeadingTerm, t
	}
	return routeRecurrence, apfloat.Exact
}
