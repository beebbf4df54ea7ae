/*
Package apfloat is the arbitrary-precision number layer used by the polynomial
evaluators.

# Overview

Float extends math/big.Float with a NaN state so that every IEEE-754 singular
value (±0, ±Inf, NaN) is representable, and pairs every rounded operation with
a Ternary value: the sign of (rounded − exact). Rounding modes follow the
MPFR naming (RNDN, RNDZ, RNDU, RNDD, RNDA, RNDF).

# Features

  - NaN-capable Float with explicit per-operation rounding mode
  - Ternary results for every rounded operation
  - Exponent Range with overflow and underflow handling by rounding mode
  - CanRound, the interval test deciding whether an approximation with a
    proven error bound rounds correctly
  - Log, Exp, Ln2 and Lngamma with rigorous error bounds

# Exponents

Exponents follow the 0.5 ≤ |m| < 1 convention of big.Float.MantExp, so a
Float x with Exp() == e satisfies 2^(e−1) ≤ |x| < 2^e.

# Usage

	x := apfloat.New(53)
	if _, err := x.SetString("0.5", 0, apfloat.RoundNearest); err != nil {
		return err
	}

	res := apfloat.New(113)
	t := res.Mul(x, x, apfloat.RoundUp)
*/
package apfloat
