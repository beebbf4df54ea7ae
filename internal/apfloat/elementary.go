package apfloat

import (
	"errors"
	"math"
	"math/big"
	"math/bits"

	"github.com/GriffinCanCode/polyprec/internal/errbound"
)

var (
	// ErrExpRange reports an exponential whose binary exponent does not fit
	// the big.Float exponent range.
	ErrExpRange = errors.New("apfloat: exponent out of range")

	// ErrInputError reports an argument whose own error bound is too large
	// for the requested function to return a useful bound.
	ErrInputError = errors.New("apfloat: argument error too large")
)

// |y| beyond this makes 2^k overflow the big.Float exponent.
const maxExpArg = 1e9

// atanh sets z to atanh(t) for |t| ≤ 1/3 and returns a bound on the absolute
// error, including te, the error already carried by t.
func atanh(z, t *big.Float, te errbound.Bound) errbound.Bound {
	w := z.Prec()
	sum := new(big.Float).SetPrec(w).Set(t)

	var k uint64
	if t.Sign() != 0 {
		t2 := new(big.Float).SetPrec(w).Mul(t, t)
		pow := new(big.Float).SetPrec(w).Set(t)
		term := new(big.Float).SetPrec(w)
		for {
			k++
			pow.Mul(pow, t2)
			if pow.MantExp(nil) < -int(w)-4 {
				break
			}
			DivUint(term, pow, 2*k+1)
			sum.Add(sum, term)
		}
	}
	z.Set(sum)

	// series rounding and truncation, plus atanh'(t) ≤ 9/8 on the input error
	return errbound.FromUint(8 + k).Scale(-int(w)).Add(te.MulUint(9).DivUint(8))
}

// Ln2 sets z to ln 2 and returns a bound on the absolute error.
func Ln2(z *big.Float) errbound.Bound {
	z.SetMode(big.ToNearestEven)
	w := z.Prec() + 8 + uint(bits.Len(z.Prec()))

	// ln 2 = 2·atanh(1/3)
	t := new(big.Float).SetPrec(w)
	acc := t.Quo(big.NewFloat(1), big.NewFloat(3)).Acc()

	s := new(big.Float).SetPrec(w)
	err := atanh(s, t, errbound.Rounding(t, acc)).Scale(1)
	s.SetMantExp(s, 1)

	acc = z.Set(s).Acc()
	return err.Add(errbound.Rounding(z, acc))
}

// Log sets z to ln x for finite x > 0 and returns a bound on the absolute error.
func Log(z, x *big.Float) errbound.Bound {
	if x.Sign() <= 0 || x.IsInf() {
		panic("apfloat: Log of non-positive or infinite value")
	}
	z.SetMode(big.ToNearestEven)
	w := z.Prec() + 10 + 2*uint(bits.Len(z.Prec()))

	// x = m·2^e with m in [0.75, 1.5)
	m := new(big.Float)
	e := x.MantExp(m)
	if m.Cmp(big.NewFloat(0.75)) < 0 {
		m.SetMantExp(m, 1)
		e--
	}

	one := big.NewFloat(1)
	num := new(big.Float).SetPrec(w).Sub(m, one)
	den := new(big.Float).SetPrec(w).Add(m, one)
	t := new(big.Float).SetPrec(w).Quo(num, den)
	// three roundings, each relative 2^-w
	te := errbound.Of(t).MulUint(4).Scale(-int(w))

	// ln m = 2·atanh((m−1)/(m+1))
	s := new(big.Float).SetPrec(w)
	err := atanh(s, t, te).Scale(1)
	s.SetMantExp(s, 1)

	if e != 0 {
		ae := uint64(e)
		if e < 0 {
			ae = uint64(-e)
		}
		extra := uint(bits.Len64(ae))

		l2 := new(big.Float).SetPrec(w + extra)
		el2 := Ln2(l2)

		var ef big.Float
		ef.SetInt64(int64(e))
		p := new(big.Float).SetPrec(w + extra)
		acc := p.Mul(l2, &ef).Acc()
		err = err.Add(el2.MulUint(ae)).Add(errbound.Rounding(p, acc))

		acc = s.Add(s, p).Acc()
		err = err.Add(errbound.Rounding(s, acc))
	}

	acc := z.Set(s).Acc()
	return err.Add(errbound.Rounding(z, acc))
}

// Exp sets z to e^y, where y approximates Y with |y − Y| ≤ ye, and returns a
// bound on the relative error of z with respect to e^Y.
//
// ErrExpRange is returned when |y| is too large for the result's exponent.
// ErrInputError is returned when ye exceeds 1/2.
func Exp(z, y *big.Float, ye errbound.Bound) (errbound.Bound, error) {
	z.SetMode(big.ToNearestEven)
	if errbound.Pow2(-1).Less(ye) {
		return errbound.Zero(), ErrInputError
	}
	if y.IsInf() {
		return errbound.Zero(), ErrExpRange
	}
	yf, _ := y.Float64()
	if math.Abs(yf) > maxExpArg {
		return errbound.Zero(), ErrExpRange
	}

	q := z.Prec()
	k := int64(math.Round(yf / math.Ln2))
	ak := uint64(k)
	if k < 0 {
		ak = uint64(-k)
	}
	extra := uint(bits.Len64(ak))
	w := q + 12 + 2*uint(bits.Len(q)) + extra

	// r = y − k·ln 2, |r| < 0.35
	r := new(big.Float).SetPrec(w)
	re := ye
	if k == 0 {
		acc := r.Set(y).Acc()
		re = re.Add(errbound.Rounding(r, acc))
	} else {
		l2 := new(big.Float).SetPrec(w + extra)
		el2 := Ln2(l2)

		var kf big.Float
		kf.SetInt64(k)
		kl := new(big.Float).SetPrec(w + extra)
		acc := kl.Mul(l2, &kf).Acc()
		re = re.Add(el2.MulUint(ak)).Add(errbound.Rounding(kl, acc))

		acc = r.Sub(y, kl).Acc()
		re = re.Add(errbound.Rounding(r, acc))
	}

	// e^r by its Taylor series
	sum := new(big.Float).SetPrec(w).SetInt64(1)
	term := new(big.Float).SetPrec(w).SetInt64(1)
	var j uint64
	for {
		j++
		term.Mul(term, r)
		DivUint(term, term, j)
		if term.Sign() == 0 || term.MantExp(nil) < -int(w)-4 {
			break
		}
		sum.Add(sum, term)
	}

	series := errbound.FromUint(2 + 3*j).Scale(-int(w))
	// e^ε − 1 ≤ 2ε for ε ≤ 1/2
	input := re.Scale(1)
	rel := series.Add(input).Add(series.Mul(input))

	acc := z.Set(sum).Acc()
	if acc != big.Exact {
		round := errbound.Pow2(-int(q))
		rel = rel.Add(round).Add(rel.Mul(round))
	}
	z.SetMantExp(z, int(k))
	return rel, nil
}

// Lngamma sets z to ln Γ(m) = ln((m−1)!) for an integer m ≥ 1 and returns a
// bound on the absolute error.
func Lngamma(z *big.Float, m uint64) errbound.Bound {
	z.SetMode(big.ToNearestEven)
	if m <= 2 {
		z.SetInt64(0)
		return errbound.Zero()
	}

	w := z.Prec() + 8 + uint(bits.Len64(m))
	prod := new(big.Float).SetPrec(w).SetInt64(1)
	var inexact uint64
	for j := uint64(2); j < m; j++ {
		if MulUint(prod, prod, j) != big.Exact {
			inexact++
		}
	}

	// each inexact product shifts the logarithm by at most 2·2^-w
	err := errbound.FromUint(2 * inexact).Scale(-int(w))
	return Log(z, prod).Add(err)
}
