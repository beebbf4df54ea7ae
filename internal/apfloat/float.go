package apfloat

import (
	"fmt"
	"math"
	"math/big"
)

// Float is an arbitrary-precision binary floating-point number with the
// singular values ±0, ±Inf and NaN. Floats must be created with New.
type Float struct {
	v   big.Float
	nan bool
}

// New returns +0 with the given precision in bits.
func New(prec uint) *Float {
	if prec == 0 || prec > big.MaxPrec {
		panic(fmt.Sprintf("apfloat: precision %d out of range", prec))
	}
	z := new(Float)
	z.v.SetPrec(prec)
	return z
}

// NewFloat64 returns x as a 53-bit Float.
func NewFloat64(x float64) *Float {
	z := New(53)
	z.SetFloat64(x, RoundNearest)
	return z
}

// Prec returns the precision of z in bits.
func (z *Float) Prec() uint {
	return z.v.Prec()
}

// SetPrec changes the precision of z, rounding its value to nearest.
func (z *Float) SetPrec(prec uint) *Float {
	if prec == 0 || prec > big.MaxPrec {
		panic(fmt.Sprintf("apfloat: precision %d out of range", prec))
	}
	z.v.SetMode(big.ToNearestEven).SetPrec(prec)
	return z
}

// IsNaN reports whether z is NaN.
func (z *Float) IsNaN() bool {
	return z.nan
}

// IsInf reports whether z is ±Inf.
func (z *Float) IsInf() bool {
	return !z.nan && z.v.IsInf()
}

// IsZero reports whether z is ±0.
func (z *Float) IsZero() bool {
	return !z.nan && z.v.Sign() == 0
}

// IsFinite reports whether z is neither NaN nor ±Inf.
func (z *Float) IsFinite() bool {
	return !z.nan && !z.v.IsInf()
}

// Sign returns -1, 0 or +1 by the sign of z. NaN and ±0 report 0.
func (z *Float) Sign() int {
	if z.nan {
		return 0
	}
	return z.v.Sign()
}

// Signbit reports whether z is negative or negative zero.
func (z *Float) Signbit() bool {
	return !z.nan && z.v.Signbit()
}

// SetNaN sets z to NaN.
func (z *Float) SetNaN() *Float {
	z.v.SetUint64(0)
	z.nan = true
	return z
}

// SetInf sets z to -Inf if signbit is set, +Inf otherwise.
func (z *Float) SetInf(signbit bool) *Float {
	z.nan = false
	z.v.SetInf(signbit)
	return z
}

// SetZero sets z to -0 if signbit is set, +0 otherwise.
func (z *Float) SetZero(signbit bool) *Float {
	z.nan = false
	z.v.SetUint64(0)
	if signbit {
		z.v.Neg(&z.v)
	}
	return z
}

// SetInt64 sets z to x rounded to z's precision.
func (z *Float) SetInt64(x int64, rnd RoundingMode) Ternary {
	z.nan = false
	z.v.SetMode(rnd.Big()).SetInt64(x)
	return ternaryOf(z.v.Acc())
}

// SetUint64 sets z to x rounded to z's precision.
func (z *Float) SetUint64(x uint64, rnd RoundingMode) Ternary {
	z.nan = false
	z.v.SetMode(rnd.Big()).SetUint64(x)
	return ternaryOf(z.v.Acc())
}

// SetFloat64 sets z to x rounded to z's precision. NaN is accepted.
func (z *Float) SetFloat64(x float64, rnd RoundingMode) Ternary {
	if math.IsNaN(x) {
		z.SetNaN()
		return Exact
	}
	z.nan = false
	z.v.SetMode(rnd.Big()).SetFloat64(x)
	return ternaryOf(z.v.Acc())
}

// Set sets z to x rounded to z's precision.
func (z *Float) Set(x *Float, rnd RoundingMode) Ternary {
	if x.nan {
		z.SetNaN()
		return Exact
	}
	return z.SetBig(&x.v, rnd)
}

// SetBig sets z to x rounded to z's precision.
func (z *Float) SetBig(x *big.Float, rnd RoundingMode) Ternary {
	z.nan = false
	z.v.SetMode(rnd.Big()).Set(x)
	return ternaryOf(z.v.Acc())
}

// Big returns the value of z as a *big.Float, or nil for NaN.
// The result aliases z and must not be modified.
func (z *Float) Big() *big.Float {
	if z.nan {
		return nil
	}
	return &z.v
}

// Cmp compares z and y. ok is false when either is NaN.
func (z *Float) Cmp(y *Float) (c int, ok bool) {
	if z.nan || y.nan {
		return 0, false
	}
	return z.v.Cmp(&y.v), true
}

// CmpInt64 compares z with the integer y. ok is false when z is NaN.
func (z *Float) CmpInt64(y int64) (c int, ok bool) {
	if z.nan {
		return 0, false
	}
	var w big.Float
	w.SetInt64(y)
	return z.v.Cmp(&w), true
}

// Exp returns the exponent e with 2^(e−1) ≤ |z| < 2^e. It is 0 for zero,
// infinite and NaN values.
func (z *Float) Exp() int {
	if !z.IsFinite() {
		return 0
	}
	return z.v.MantExp(nil)
}

// MinPrec returns the minimum precision needed to represent z exactly.
func (z *Float) MinPrec() uint {
	if z.nan {
		return 0
	}
	return z.v.MinPrec()
}

// Float64 returns the float64 nearest to z.
func (z *Float) Float64() float64 {
	if z.nan {
		return math.NaN()
	}
	f, _ := z.v.Float64()
	return f
}

// Text formats z like big.Float.Text. NaN formats as "NaN".
func (z *Float) Text(format byte, digits int) string {
	if z.nan {
		return "NaN"
	}
	return z.v.Text(format, digits)
}

// String formats z with 10 significant digits.
func (z *Float) String() string {
	return z.Text('g', 10)
}
