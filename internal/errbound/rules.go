package errbound

import "math/big"

// Rounding bounds the error of a round-to-nearest result r at r's precision.
// Exact results contribute nothing. An inexact zero is an underflow, whose
// exact value lies below the smallest positive big.Float.
func Rounding(r *big.Float, acc big.Accuracy) Bound {
	switch {
	case acc == big.Exact:
		return Bound{}
	case r.Sign() == 0:
		return Pow2(big.MinExp)
	}
	return Pow2(r.MantExp(nil) - int(r.Prec()) - 1)
}

// ProductErr bounds |a·b − A·B| where |a − A| ≤ ea and |b − B| ≤ eb and
// a·b is computed exactly. a and b must be finite.
func ProductErr(a *big.Float, ea Bound, b *big.Float, eb Bound) Bound {
	return Of(a).Mul(eb).Add(ea.Mul(Of(b))).Add(ea.Mul(eb))
}

// MulErr bounds the error of r = RN(a·b).
func MulErr(r *big.Float, acc big.Accuracy, a *big.Float, ea Bound, b *big.Float, eb Bound) Bound {
	return ProductErr(a, ea, b, eb).Add(Rounding(r, acc))
}

// MulUintErr bounds the error of r = RN(u·a).
func MulUintErr(r *big.Float, acc big.Accuracy, ea Bound, u uint64) Bound {
	return ea.MulUint(u).Add(Rounding(r, acc))
}

// SubErr bounds the error of r = RN(a − b), and equally of RN(a + b).
func SubErr(r *big.Float, acc big.Accuracy, ea, eb Bound) Bound {
	return ea.Add(eb).Add(Rounding(r, acc))
}

// DivUintErr bounds the error of r = RN(a / u).
func DivUintErr(r *big.Float, acc big.Accuracy, ea Bound, u uint64) Bound {
	return ea.DivUint(u).Add(Rounding(r, acc))
}
