package apfloat

import (
	"errors"
	"fmt"
	"strings"
)

// ErrParse is returned when a string is not a valid number.
var ErrParse = errors.New("apfloat: invalid number")

// SetString sets z to the value of s rounded to z's precision by rnd.
// Besides the syntax of big.Float.Parse, it accepts "nan" and "inf" in any
// case, optionally signed.
func (z *Float) SetString(s string, base int, rnd RoundingMode) (Ternary, error) {
	str := strings.TrimSpace(s)
	switch strings.ToLower(strings.TrimLeft(str, "+-")) {
	case "nan":
		z.SetNaN()
		return Exact, nil
	case "inf", "infinity":
		z.SetInf(strings.HasPrefix(str, "-"))
		return Exact, nil
	}

	z.nan = false
	z.v.SetMode(rnd.Big())
	if _, _, err := z.v.Parse(str, base); err != nil {
		z.SetNaN()
		return Exact, fmt.Errorf("%w %q: %v", ErrParse, s, err)
	}
	return ternaryOf(z.v.Acc()), nil
}

// Parse returns s as a Float of the given precision, rounded by rnd.
func Parse(s string, prec uint, rnd RoundingMode) (*Float, Ternary, error) {
	z := New(prec)
	t, err := z.SetString(s, 0, rnd)
	if err != nil {
		return nil, Exact, err
	}
	return z, t, nil
}
