package orthopoly

import (
	"math/big"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/polyprec/internal/apfloat"
)

var allModes = []apfloat.RoundingMode{
	apfloat.RoundNearest,
	apfloat.RoundToZero,
	apfloat.RoundUp,
	apfloat.RoundDown,
	apfloat.RoundAway,
	apfloat.RoundFaithful,
}

// legendreExact runs Bonnet's recursion over the rationals.
func legendreExact(n int, x *big.Rat) *big.Rat {
	p0, p1 := big.NewRat(1, 1), new(big.Rat).Set(x)
	if n == 0 {
		return p0
	}
	for i := 2; i <= n; i++ {
		a := new(big.Rat).Mul(big.NewRat(int64(2*i-1), 1), x)
		a.Mul(a, p1)
		b := new(big.Rat).Mul(big.NewRat(int64(i-1), 1), p0)
		a.Sub(a, b)
		a.Quo(a, big.NewRat(int64(i), 1))
		p0, p1 = p1, a
	}
	return p1
}

// hermiteExact runs the Hermite recursion in exact decimal arithmetic.
// x must be dyadic, which every binary float is.
func hermiteExact(t *testing.T, n int, x *big.Rat) *big.Rat {
	t.Helper()
	den := x.Denom()
	k := den.BitLen() - 1
	require.Zero(t, new(big.Int).Sub(den, new(big.Int).Lsh(big.NewInt(1), uint(k))).Sign(), "x is not dyadic")

	// x = num/2^k = num·5^k/10^k
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(k)), nil)
	dx := decimal.NewFromBigInt(new(big.Int).Mul(x.Num(), five), int32(-k))

	x2 := dx.Mul(decimal.NewFromInt(2))
	p0, p1 := decimal.NewFromInt(1), x2
	if n == 0 {
		return p0.Rat()
	}
	for i := 1; i < n; i++ {
		next := x2.Mul(p1).Sub(decimal.NewFromInt(int64(2 * i)).Mul(p0))
		p0, p1 = p1, next
	}
	return p1.Rat()
}

// expect rounds the exact value r to prec bits by rnd.
func expect(r *big.Rat, prec uint, rnd apfloat.RoundingMode) (*big.Float, apfloat.Ternary) {
	z := new(big.Float).SetPrec(prec).SetMode(rnd.Big()).SetRat(r)
	return z, apfloat.Ternary(z.Acc())
}

// ratOf returns the exact rational value of a finite Float.
func ratOf(t *testing.T, x *apfloat.Float) *big.Rat {
	t.Helper()
	require.True(t, x.IsFinite())
	r, _ := x.Big().Rat(nil)
	return r
}

// parseBinary reads the MPFR binary notation "-0.0101e-5", where the
// exponent is a power of two.
func parseBinary(t *testing.T, s string, prec uint) *big.Float {
	t.Helper()
	s = strings.Replace(s, "e", "p", 1)
	f, _, err := big.ParseFloat(s, 2, prec, big.ToNearestEven)
	require.NoError(t, err)
	return f
}

// pow2Arg returns 2^e, which need not fit a float64.
func pow2Arg(e int) *apfloat.Float {
	x := apfloat.New(53)
	x.SetBig(new(big.Float).SetMantExp(big.NewFloat(1), e), apfloat.RoundNearest)
	return x
}

// parseHex reads a hexadecimal float such as "-0x1.8p-3" at 53 bits.
func parseHex(t *testing.T, s string) *big.Float {
	t.Helper()
	f, _, err := big.ParseFloat(s, 0, 53, big.ToNearestEven)
	require.NoError(t, err)
	return f
}

// requireMatches asserts res and tern agree with the correctly rounded exact value.
func requireMatches(t *testing.T, exact *big.Rat, res *apfloat.Float, tern apfloat.Ternary, rnd apfloat.RoundingMode, msg string) {
	t.Helper()
	want, wantTern := expect(exact, res.Prec(), rnd)
	require.False(t, res.IsNaN(), msg)
	require.Zerof(t, res.Big().Cmp(want), "%s: got %s want %s", msg, res.Text('p', 0), want.Text('p', 0))
	require.Equalf(t, wantTern, tern, "%s: ternary", msg)
}
