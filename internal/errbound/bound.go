package errbound

import (
	"fmt"
	"math"
	"math/big"
)

// Bound is an upper bound mant·2^exp on a non-negative quantity.
// The zero value is the exact bound.
type Bound struct {
	mant float64 // zero, or normalized into [0.5, 1)
	exp  int
}

// Zero returns the bound of an exact value.
func Zero() Bound {
	return Bound{}
}

// Pow2 returns the bound 2^e.
func Pow2(e int) Bound {
	return Bound{mant: 0.5, exp: e + 1}
}

// FromUint returns a bound on u.
func FromUint(u uint64) Bound {
	if u == 0 {
		return Bound{}
	}
	f := float64(u)
	if u > 1<<53 {
		f = up(f)
	}
	return normalize(f, 0)
}

// Of returns an upper bound on |x|. x must be finite.
func Of(x *big.Float) Bound {
	if x == nil || x.Sign() == 0 {
		return Bound{}
	}
	if x.IsInf() {
		panic("errbound: infinite operand")
	}

	var m big.Float
	e := x.MantExp(&m)
	m.Abs(&m)

	f, acc := m.Float64()
	if acc == big.Below {
		f = up(f)
	}
	return normalize(f, e)
}

// IsZero reports whether b bounds an exact value.
func (b Bound) IsZero() bool {
	return b.mant == 0
}

// Add returns a bound on the sum of two bounded quantities.
func (b Bound) Add(c Bound) Bound {
	if b.IsZero() {
		return c
	}
	if c.IsZero() {
		return b
	}
	if b.exp < c.exp {
		b, c = c, b
	}

	m := b.mant
	// Below 2^-64 relative, c is absorbed by rounding m upward.
	if d := c.exp - b.exp; d > -64 {
		m += math.Ldexp(c.mant, d)
	}
	return normalize(up(m), b.exp)
}

// Mul returns a bound on the product of two bounded quantities.
func (b Bound) Mul(c Bound) Bound {
	if b.IsZero() || c.IsZero() {
		return Bound{}
	}
	return normalize(up(b.mant*c.mant), b.exp+c.exp)
}

// MulUint returns a bound on u times the bounded quantity.
func (b Bound) MulUint(u uint64) Bound {
	return b.Mul(FromUint(u))
}

// DivUint returns a bound on the bounded quantity divided by u.
func (b Bound) DivUint(u uint64) Bound {
	if u == 0 {
		panic("errbound: division by zero")
	}
	if b.IsZero() {
		return b
	}
	d := float64(u)
	if u > 1<<53 {
		d = math.Nextafter(d, 0)
	}
	return normalize(up(b.mant/d), b.exp)
}

// Scale returns b·2^k.
func (b Bound) Scale(k int) Bound {
	if b.IsZero() {
		return b
	}
	b.exp += k
	return b
}

// Log2 returns the smallest e with b ≤ 2^e, or math.MinInt for the zero bound.
func (b Bound) Log2() int {
	if b.IsZero() {
		return math.MinInt
	}
	if b.mant == 0.5 {
		return b.exp - 1
	}
	return b.exp
}

// Less reports whether b < c.
func (b Bound) Less(c Bound) bool {
	switch {
	case c.IsZero():
		return false
	case b.IsZero():
		return true
	case b.exp != c.exp:
		return b.exp < c.exp
	default:
		return b.mant < c.mant
	}
}

// Float returns the bound as an exact big.Float.
func (b Bound) Float() *big.Float {
	f := new(big.Float)
	if b.IsZero() {
		return f
	}
	f.SetFloat64(b.mant)
	return f.SetMantExp(f, b.exp)
}

// String formats the bound for logs.
func (b Bound) String() string {
	if b.IsZero() {
		return "0"
	}
	return fmt.Sprintf("%.6g*2^%d", b.mant, b.exp)
}

func normalize(m float64, e int) Bound {
	if m == 0 {
		return Bound{}
	}
	frac, fe := math.Frexp(m)
	return Bound{mant: frac, exp: e + fe}
}

func up(f float64) float64 {
	return math.Nextafter(f, math.Inf(1))
}
