package apfloat

import "math/big"

// MulUint sets z to x·u rounded to nearest at z's precision.
func MulUint(z, x *big.Float, u uint64) big.Accuracy {
	var y big.Float
	y.SetUint64(u)
	return z.Mul(x, &y).Acc()
}

// DivUint sets z to x/u rounded to nearest at z's precision. u must be nonzero.
func DivUint(z, x *big.Float, u uint64) big.Accuracy {
	var y big.Float
	y.SetUint64(u)
	return z.Quo(x, &y).Acc()
}

// ExactMul sets t to the product a·b, growing t's precision so that only
// leaving the big.Float exponent range can make it inexact.
func ExactMul(t, a, b *big.Float) big.Accuracy {
	t.SetPrec(max(a.MinPrec()+b.MinPrec(), 1))
	return t.Mul(a, b).Acc()
}

// Add sets z to x+y rounded by rnd.
func (z *Float) Add(x, y *Float, rnd RoundingMode) Ternary {
	if x.nan || y.nan || (x.IsInf() && y.IsInf() && x.v.Signbit() != y.v.Signbit()) {
		z.SetNaN()
		return Exact
	}
	z.nan = false
	z.v.SetMode(rnd.Big()).Add(&x.v, &y.v)
	return ternaryOf(z.v.Acc())
}

// Sub sets z to x−y rounded by rnd.
func (z *Float) Sub(x, y *Float, rnd RoundingMode) Ternary {
	if x.nan || y.nan || (x.IsInf() && y.IsInf() && x.v.Signbit() == y.v.Signbit()) {
		z.SetNaN()
		return Exact
	}
	z.nan = false
	z.v.SetMode(rnd.Big()).Sub(&x.v, &y.v)
	return ternaryOf(z.v.Acc())
}

// Mul sets z to x·y rounded by rnd.
func (z *Float) Mul(x, y *Float, rnd RoundingMode) Ternary {
	if x.nan || y.nan || (x.IsInf() && y.IsZero()) || (x.IsZero() && y.IsInf()) {
		z.SetNaN()
		return Exact
	}
	z.nan = false
	z.v.SetMode(rnd.Big()).Mul(&x.v, &y.v)
	return ternaryOf(z.v.Acc())
}

// Quo sets z to x/y rounded by rnd. x/±0 is ±Inf for nonzero x.
func (z *Float) Quo(x, y *Float, rnd RoundingMode) Ternary {
	if x.nan || y.nan || (x.IsZero() && y.IsZero()) || (x.IsInf() && y.IsInf()) {
		z.SetNaN()
		return Exact
	}
	z.nan = false
	z.v.SetMode(rnd.Big()).Quo(&x.v, &y.v)
	return ternaryOf(z.v.Acc())
}

// MulUint sets z to x·u rounded by rnd.
func (z *Float) MulUint(x *Float, u uint64, rnd RoundingMode) Ternary {
	if x.nan || (x.IsInf() && u == 0) {
		z.SetNaN()
		return Exact
	}
	z.nan = false
	z.v.SetMode(rnd.Big())
	return ternaryOf(MulUint(&z.v, &x.v, u))
}

// DivUint sets z to x/u rounded by rnd.
func (z *Float) DivUint(x *Float, u uint64, rnd RoundingMode) Ternary {
	if u == 0 {
		var zero Float
		zero.v.SetPrec(1)
		return z.Quo(x, &zero, rnd)
	}
	if x.nan {
		z.SetNaN()
		return Exact
	}
	z.nan = false
	z.v.SetMode(rnd.Big())
	return ternaryOf(DivUint(&z.v, &x.v, u))
}

// FMS sets z to a·b − c with a single rounding by rnd.
func (z *Float) FMS(a, b, c *Float, rnd RoundingMode) Ternary {
	if !a.IsFinite() || !b.IsFinite() || !c.IsFinite() {
		p := New(max(a.Prec()+b.Prec(), 1))
		p.Mul(a, b, RoundNearest)
		return z.Sub(p, c, rnd)
	}
	var t big.Float
	z.nan = false
	if acc := ExactMul(&t, &a.v, &b.v); acc != big.Exact {
		switch {
		case t.IsInf():
			z.SetInf(t.Signbit())
			return signed(t.Signbit(), Above)
		case c.v.Sign() != 0:
			// An underflowed product only decides the direction of
			// rounding: stand in a same-signed value below every
			// boundary near c.
			q := max(c.Prec(), z.Prec()) + 2
			if e := c.v.MantExp(nil) - int(q) - 2; e > big.MinExp {
				neg := a.v.Signbit() != b.v.Signbit()
				t.SetPrec(1).SetMantExp(big.NewFloat(0.5), e+1)
				if neg {
					t.Neg(&t)
				}
			}
		}
	}
	z.v.SetMode(rnd.Big()).Sub(&t, &c.v)
	return ternaryOf(z.v.Acc())
}
