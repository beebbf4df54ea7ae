package orthopoly

import (
	"math/big"
	"math/bits"

	"github.com/GriffinCanCode/polyprec/internal/apfloat"
)

// leadingTerm settles n ≥ 2 and x ≠ 0 so close to zero that the recurrence
// would only rediscover the lowest-order term. Both families have real zeros
// symmetric about 0, so
//
//	p_n(x) = c·x^(n mod 2)·∏(1 − x²/z_k²) = c·x^(n mod 2)·(1 − ε)
//
// with 0 < ε ≤ n²x² over the positive zeros z_k. On a q-bit grid at least
// two bits finer than the target that holds the exact leading term, once the
// shrink is below half a unit the value rounds like that term nudged half a
// unit toward zero.
// Arguments that small also keep the recurrence's squares clear of the
// big.Float exponent floor.
func (e *Evaluator) leadingTerm(f Family, res *apfloat.Float, n int, x *apfloat.Float, rnd apfloat.RoundingMode) (apfloat.Ternary, bool) {
	xb := x.Big()
	ex := xb.MantExp(nil)
	nb := bits.Len(uint(n))

	q := max(int(res.Prec()), leadingBits(f, n, nb)+int(xb.MinPrec())) + 2
	if 2*ex+2*nb+q+4 > 0 {
		return apfloat.Exact, false
	}

	num, shift := leadingCoefficient(f, n)
	var lead big.Float
	lead.SetPrec(uint(q)).SetInt(num)
	lead.SetMantExp(&lead, -shift)
	if n%2 == 1 {
		lead.Mul(&lead, xb)
	}

	var nudge, v big.Float
	nudge.SetMantExp(big.NewFloat(0.5), lead.MantExp(nil)-q)
	if lead.Signbit() {
		nudge.Neg(&nudge)
	}
	v.SetPrec(uint(q)+1).Sub(&lead, &nudge)
	return e.rng.Round(res, &v, rnd), true
}

// leadingBits bounds the bit length of the numerator of leadingCoefficient.
func leadingBits(f Family, n, nb int) int {
	if f == FamilyLegendre {
		return n + nb + 1
	}
	return (n/2+1)*nb + 2
}

// leadingCoefficient returns num and shift with num·2^−shift the constant
// term of p_n for even n, or the linear coefficient for odd n. With k = ⌊n/2⌋:
//
//	P_2k(0)    = (−1)^k · C(2k,k) / 2^2k
//	P'_2k+1(0) = (−1)^k · (2k+1)·C(2k,k) / 2^2k
//	H_2k(0)    = (−1)^k · (2k)!/k!
//	H'_2k+1(0) = (−1)^k · 2(2k+1)·(2k)!/k!
func leadingCoefficient(f Family, n int) (*big.Int, int) {
	k := int64(n / 2)
	num := new(big.Int)
	shift := 0

	if f == FamilyLegendre {
		num.Binomial(2*k, k)
		shift = int(2 * k)
		if n%2 == 1 {
			num.Mul(num, big.NewInt(int64(n)))
		}
	} else {
		num.MulRange(k+1, 2*k)
		if n%2 == 1 {
			num.Mul(num, big.NewInt(2*int64(n)))
		}
	}

	if k%2 == 1 {
		num.Neg(num)
	}
	return num, shift
}
