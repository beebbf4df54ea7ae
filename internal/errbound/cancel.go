package errbound

import "math/big"

// Cancellation measures how many leading bits cancel in a − b.
//
// ok is false unless a and b are nonzero, share a sign and have exponents
// within 2 of each other. The difference is formed exactly, so lost is
// max(EXP(a), EXP(b)) − EXP(a − b). An exactly vanishing difference reports
// the larger operand precision.
func Cancellation(a, b *big.Float) (lost uint, ok bool) {
	if a.Sign() == 0 || b.Sign() == 0 || a.Sign() != b.Sign() {
		return 0, false
	}

	ea, eb := a.MantExp(nil), b.MantExp(nil)
	if ea-eb > 2 || eb-ea > 2 {
		return 0, false
	}

	prec := max(a.Prec(), b.Prec())
	d := new(big.Float).SetPrec(prec+4).Sub(a, b)
	if d.Sign() == 0 {
		return prec, true
	}
	return uint(max(ea, eb) - d.MantExp(nil)), true
}
