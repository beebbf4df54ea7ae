package apfloat

import (
	"math/big"

	"github.com/GriffinCanCode/polyprec/internal/errbound"
)

// CanRound reports whether every real y with |y − v| ≤ err rounds, at prec
// bits under rnd, to the same value as v, with the same ternary sign.
//
// The interval [|v|−err, |v|+err] must exclude zero and lie strictly inside a
// single cell of the truncation grid at prec bits, or at prec+1 bits when
// rounding to nearest, where the midpoints of the prec-bit grid are the
// boundaries. An exact v (zero err) always rounds.
func CanRound(v *big.Float, err errbound.Bound, prec uint, rnd RoundingMode) bool {
	if err.IsZero() {
		return true
	}
	if v.Sign() == 0 || v.IsInf() {
		return false
	}

	p := prec
	if rnd.nearest() {
		p++
	}

	ve := v.MantExp(nil)
	e := err.Log2()
	// An error of at least one grid step can never fit in one cell.
	if e >= ve-int(p) {
		return false
	}

	// Below a quarter unit of the finer of v's grid and the rounding grid,
	// the size of the error no longer matters: the interval fits exactly
	// when v is not itself a cell boundary.
	eps := err.Float()
	if floor := ve - int(max(v.Prec(), p)) - 2; e < floor {
		e = floor
		eps.SetMantExp(big.NewFloat(0.5), e+1)
	}

	// lo and hi are exact at this precision.
	wp := max(v.Prec(), uint(ve-e)) + 56

	var abs, lo, hi big.Float
	abs.SetPrec(wp).Abs(v)
	lo.SetPrec(wp).Sub(&abs, eps)
	hi.SetPrec(wp).Add(&abs, eps)
	if lo.Sign() <= 0 {
		return false
	}

	var tlo, thi big.Float
	tlo.SetPrec(p).SetMode(big.ToZero).Set(&lo)
	if tlo.Acc() == big.Exact {
		return false
	}
	thi.SetPrec(p).SetMode(big.ToZero).Set(&hi)
	return tlo.Cmp(&thi) == 0
}
