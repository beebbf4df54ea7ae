package orthopoly

import (
	"errors"
	"math/big"
	"math/bits"

	"github.com/GriffinCanCode/polyprec/internal/apfloat"
	"github.com/GriffinCanCode/polyprec/internal/errbound"
	"github.com/GriffinCanCode/polyprec/internal/ziv"
)

// closedFormTask evaluates an even degree n = 2k at x = 0:
//
//	H_n(0) = (−1)^k · (2k)!/k!           = ±exp(lnΓ(n+1) − lnΓ(k+1))
//	P_n(0) = (−1)^k · (2k)!/(k!)² · 2^−n = ±exp(lnΓ(n+1) − 2lnΓ(k+1)) · 2^−n
//
// The sign is applied before the final rounding.
type closedFormTask struct {
	family Family
	n      int
	target uint
	rnd    apfloat.RoundingMode
	emax   int

	g1, g2, l, v *big.Float
	err          errbound.Bound

	overflow bool // the exponential left the exponent range
	unstable bool // the pass produced no usable bound
}

func newClosedFormTask(f Family, n int, target uint, rnd apfloat.RoundingMode, rng apfloat.Range) *closedFormTask {
	return &closedFormTask{
		family: f,
		n:      n,
		target: target,
		rnd:    rnd,
		emax:   rng.Emax,
		g1:     new(big.Float),
		g2:     new(big.Float),
		l:      new(big.Float),
		v:      new(big.Float),
	}
}

func (t *closedFormTask) initial() uint {
	return ziv.Initial(t.target, 0, uint(2*bits.Len(uint(t.n))+16))
}

// scale is the power of two dividing the integer numerator of the result.
func (t *closedFormTask) scale() int {
	if t.family == FamilyLegendre {
		return t.n
	}
	return 0
}

// Resize implements ziv.Task.
func (t *closedFormTask) Resize(prec uint) {
	for _, f := range []*big.Float{t.g1, t.g2, t.l, t.v} {
		f.SetMode(big.ToNearestEven)
		f.SetPrec(prec)
	}
}

// Compute implements ziv.Task.
func (t *closedFormTask) Compute(uint) ziv.Signal {
	t.overflow, t.unstable = false, false
	k := t.n / 2

	e1 := apfloat.Lngamma(t.g1, uint64(t.n)+1)
	e2 := apfloat.Lngamma(t.g2, uint64(k)+1)
	if t.family == FamilyLegendre {
		t.g2.SetMantExp(t.g2, 1)
		e2 = e2.Scale(1)
	}
	acc := t.l.Sub(t.g1, t.g2).Acc()
	le := errbound.SubErr(t.l, acc, e1, e2)

	rel, err := apfloat.Exp(t.v, t.l, le)
	switch {
	case errors.Is(err, apfloat.ErrExpRange):
		t.overflow = true
		return ziv.Signal{}
	case err != nil || !rel.Less(errbound.Pow2(-2)):
		t.unstable = true
		return ziv.Signal{}
	}
	if t.v.MantExp(nil) > t.emax {
		t.overflow = true
		return ziv.Signal{}
	}

	t.v.SetMantExp(t.v, -t.scale())
	if k%2 == 1 {
		t.v.Neg(t.v)
	}

	// relative to the exact value: |v − Y| ≤ rel·|Y| ≤ rel·|v|·(1 + 2rel)
	abs := rel.Mul(errbound.Of(t.v))
	t.err = abs.Add(abs.Mul(rel.Scale(1)))
	return ziv.Signal{}
}

// Check implements ziv.Task.
func (t *closedFormTask) Check(uint) ziv.Verdict {
	switch {
	case t.overflow:
		return ziv.Verdict{Done: true}
	case t.unstable:
		return ziv.Verdict{}
	case apfloat.CanRound(t.v, t.err, t.target, t.rnd):
		return ziv.Verdict{Done: true}
	case t.recoverExact():
		return ziv.Verdict{Done: true}
	}
	return ziv.Verdict{Shortfall: shortfall(t.v, t.err, t.target)}
}

// recoverExact replaces v by the exact result once the error on the
// integer numerator is below 1/4, so the nearest integer is the numerator.
// This settles results that are representable at the target precision,
// which no error interval can prove on its own.
func (t *closedFormTask) recoverExact() bool {
	s := t.scale()
	if t.err.Scale(s).Log2() > -2 {
		return false
	}

	num := new(big.Float).SetMantExp(t.v, s)
	i, _ := num.Int(nil)
	whole := new(big.Float).SetInt(i)
	frac := new(big.Float).SetPrec(num.Prec()).Sub(num, whole)

	switch {
	case frac.Cmp(big.NewFloat(0.5)) >= 0:
		i.Add(i, big.NewInt(1))
	case frac.Cmp(big.NewFloat(-0.5)) <= 0:
		i.Sub(i, big.NewInt(1))
	}

	t.v.SetPrec(uint(max(i.BitLen(), 1))).SetInt(i)
	t.v.SetMantExp(t.v, -s)
	t.err = errbound.Zero()
	return true
}

func (t *closedFormTask) round(res *apfloat.Float, rng apfloat.Range) apfloat.Ternary {
	if t.overflow {
		res.SetNaN()
		return apfloat.Exact
	}
	return rng.Round(res, t.v, t.rnd)
}

func (t *closedFormTask) release() {
	t.g1, t.g2, t.l, t.v = nil, nil, nil, nil
}
