package apfloat

import "math/big"

// Default exponent limits, matching the usual MPFR build.
const (
	DefaultEmax = 1<<30 - 1
	DefaultEmin = -DefaultEmax
)

// Range holds the exponent limits applied to final results.
// A finite nonzero result must satisfy Emin ≤ Exp() ≤ Emax.
type Range struct {
	Emin int
	Emax int
}

// DefaultRange returns the range [DefaultEmin, DefaultEmax].
func DefaultRange() Range {
	return Range{Emin: DefaultEmin, Emax: DefaultEmax}
}

// Contains reports whether exponent e lies within r.
func (r Range) Contains(e int) bool {
	return e >= r.Emin && e <= r.Emax
}

// Round sets z to v rounded to z's precision by rnd and applies the exponent
// limits of r. Overflow produces ±Inf or the largest finite value, underflow
// produces ±0 or the smallest positive value, each as rnd dictates.
func (r Range) Round(z *Float, v *big.Float, rnd RoundingMode) Ternary {
	t := z.SetBig(v, rnd)
	if z.v.Sign() == 0 || z.v.IsInf() {
		return t
	}

	e := z.v.MantExp(nil)
	switch {
	case e > r.Emax:
		return r.Overflow(z, rnd, z.v.Signbit())
	case e < r.Emin:
		return r.underflow(z, v, rnd, z.v.Signbit())
	}
	return t
}

// Overflow sets z to the overflowed result of sign neg: ±Inf, or the largest
// finite value of z's precision when rnd rounds toward zero.
func (r Range) Overflow(z *Float, rnd RoundingMode, neg bool) Ternary {
	if rnd.nearest() || rnd == RoundAway || (rnd == RoundUp && !neg) || (rnd == RoundDown && neg) {
		z.SetInf(neg)
		return signed(neg, Above)
	}

	// (1 − 2^-p)·2^Emax
	z.nan = false
	p := z.Prec()
	var m big.Int
	m.Lsh(big.NewInt(1), p).Sub(&m, big.NewInt(1))
	z.v.SetInt(&m)
	z.v.SetMantExp(&z.v, r.Emax-int(p))
	if neg {
		z.v.Neg(&z.v)
	}
	return signed(neg, Below)
}

func (r Range) underflow(z *Float, v *big.Float, rnd RoundingMode, neg bool) Ternary {
	away := rnd == RoundAway || (rnd == RoundUp && !neg) || (rnd == RoundDown && neg)
	if rnd.nearest() {
		// Halfway to the smallest value 2^(Emin−1) rounds to zero.
		var half, abs big.Float
		half.SetMantExp(big.NewFloat(0.5), r.Emin-1)
		abs.Abs(v)
		away = abs.Cmp(&half) > 0
	}

	if !away {
		z.SetZero(neg)
		return signed(neg, Below)
	}
	z.v.SetMantExp(big.NewFloat(0.5), r.Emin)
	if neg {
		z.v.Neg(&z.v)
	}
	return signed(neg, Above)
}

// signed returns t for a positive value and its mirror for a negative one.
func signed(neg bool, t Ternary) Ternary {
	if neg {
		return -t
	}
	return t
}
