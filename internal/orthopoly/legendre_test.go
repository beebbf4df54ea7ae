package orthopoly

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/GriffinCanCode/polyprec/internal/apfloat"
)

func TestLegendreAtOneHalf(t *testing.T) {
	half := apfloat.NewFloat64(0.5)
	cases := []struct {
		n    int
		want string
	}{
		{2, "-0.00100000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000"},
		{3, "-0.01110000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000"},
		{10, "-0.00110000001011111100000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000"},
		{50, "-0.11111110011011111010011011101111010001100110010000011011100111001011011101000001101100101111000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000e-5"},
		{128, "-0.10100000000001110010100100000001010100100100100110100000000110011010001001111001010101100101000100110011011001000100100000001011011110011111100010011110111000001000111000111001110011111111101000111101e-5"},
		{1024, "-0.10011011001011010000011110100001001010000100011101101001111011101111100001001000000001001001111000111010100010110101101100101110100011000100010001101010010001111010101001110011010101011000110011001001e-5"},
		{8192, "-0.10100000101010101110101000101101101011000101000000110110011000110011100011010000111011000101100110010101010100011110011001001111001111110111101101010000100110001110101100110000010110100001001110000100e-8"},
	}

	e := New()
	for _, tc := range cases {
		t.Run(fmt.Sprintf("P%d", tc.n), func(t *testing.T) {
			if tc.n > 1024 && testing.Short() {
				t.Skip("long recurrence")
			}
			res := apfloat.New(200)
			_, err := e.Legendre(res, tc.n, half, apfloat.RoundNearest)
			require.NoError(t, err)

			want := parseBinary(t, tc.want, 200)
			assert.Zerof(t, res.Big().Cmp(want), "got %s", res.Text('p', 0))
		})
	}
}

func TestLegendreSmallDegreesExact(t *testing.T) {
	half := apfloat.NewFloat64(0.5)
	res := apfloat.New(53)

	tern := Legendre(res, 2, half, apfloat.RoundNearest)
	assert.Equal(t, -0.125, res.Float64())
	assert.Equal(t, apfloat.Exact, tern)

	tern = Legendre(res, 3, half, apfloat.RoundNearest)
	assert.Equal(t, -0.4375, res.Float64())
	assert.Equal(t, apfloat.Exact, tern)

	tern = Legendre(res, 10, half, apfloat.RoundNearest)
	assert.Equal(t, -0x1.817ep-3, res.Float64())
	assert.Equal(t, apfloat.Exact, tern)
}

func TestLegendreMatchesRationalOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	precs := []uint{1, 2, 10, 24, 53, 113}

	for iter := 0; iter < 150; iter++ {
		n := 2 + rng.Intn(60)
		x := apfloat.NewFloat64(2*rng.Float64() - 1)
		exact := legendreExact(n, ratOf(t, x))

		for _, prec := range precs {
			for _, rnd := range allModes {
				res := apfloat.New(prec)
				tern, err := New().Legendre(res, n, x, rnd)
				require.NoError(t, err)
				requireMatches(t, exact, res, tern, rnd, fmt.Sprintf("P%d(%s) prec %d %s", n, x.Text('p', 0), prec, rnd))
			}
		}
	}
}

func TestLegendreWideArgument(t *testing.T) {
	// x carries more bits than the target
	rng := rand.New(rand.NewSource(5))
	for iter := 0; iter < 20; iter++ {
		num := new(big.Int).Rand(rng, new(big.Int).Lsh(big.NewInt(1), 150))
		r := new(big.Rat).SetFrac(num, new(big.Int).Lsh(big.NewInt(1), 150))
		if iter%2 == 1 {
			r.Neg(r)
		}
		x := apfloat.New(150)
		x.SetBig(new(big.Float).SetPrec(150).SetRat(r), apfloat.RoundNearest)

		n := 3 + rng.Intn(40)
		exact := legendreExact(n, ratOf(t, x))
		for _, rnd := range allModes {
			res := apfloat.New(30)
			tern, err := New().Legendre(res, n, x, rnd)
			require.NoError(t, err)
			requireMatches(t, exact, res, tern, rnd, fmt.Sprintf("P%d iter %d %s", n, iter, rnd))
		}
	}
}

func TestLegendreNearRoots(t *testing.T) {
	for _, n := range []int{5, 16, 33} {
		nodes := make([]float64, n)
		weights := make([]float64, n)
		quad.Legendre{}.FixedLocations(nodes, weights, -1, 1)

		for _, node := range nodes {
			x := apfloat.NewFloat64(node)
			exact := legendreExact(n, ratOf(t, x))
			for _, rnd := range []apfloat.RoundingMode{apfloat.RoundNearest, apfloat.RoundUp, apfloat.RoundToZero} {
				res := apfloat.New(53)
				tern, err := New().Legendre(res, n, x, rnd)
				require.NoError(t, err)
				requireMatches(t, exact, res, tern, rnd, fmt.Sprintf("P%d near root %v", n, node))
				assert.True(t, scalar.EqualWithinAbs(res.Float64(), 0, 1e-10), "P%d(%v) = %v", n, node, res.Float64())
			}
		}
	}
}

func TestLegendreCancellationRestarts(t *testing.T) {
	// x is the double nearest the root √(3/5) of P₃
	x := apfloat.NewFloat64(math.Sqrt(0.6))

	tk := newLegendreTask(3, x, 53, apfloat.RoundNearest)
	defer tk.release()
	tk.Resize(60)
	sig := tk.Compute(60)
	require.True(t, sig.Restart)
	assert.Greater(t, sig.Lost, uint(60-53))

	exact := legendreExact(3, ratOf(t, x))
	for _, rnd := range allModes {
		res := apfloat.New(53)
		tern, err := New().Legendre(res, 3, x, rnd)
		require.NoError(t, err)
		requireMatches(t, exact, res, tern, rnd, "P3 at root")
	}
}

func TestLegendreDirectedRoundingComposes(t *testing.T) {
	x := apfloat.NewFloat64(0.3141592653589793)
	directed := []apfloat.RoundingMode{apfloat.RoundToZero, apfloat.RoundUp, apfloat.RoundDown, apfloat.RoundAway}

	for _, n := range []int{7, 40, 200} {
		for _, rnd := range directed {
			wide := apfloat.New(200)
			_, err := New().Legendre(wide, n, x, rnd)
			require.NoError(t, err)

			narrow := apfloat.New(40)
			narrow.Set(wide, rnd)

			direct := apfloat.New(40)
			_, err = New().Legendre(direct, n, x, rnd)
			require.NoError(t, err)

			c, ok := narrow.Cmp(direct)
			require.True(t, ok)
			assert.Zerof(t, c, "P%d %s: %s vs %s", n, rnd, narrow.Text('p', 0), direct.Text('p', 0))
		}
	}
}

func TestLegendreTernaryBracketsValue(t *testing.T) {
	x := apfloat.NewFloat64(-0.7071)
	for _, n := range []int{4, 9, 25, 100} {
		down, up := apfloat.New(24), apfloat.New(24)
		td, err := New().Legendre(down, n, x, apfloat.RoundDown)
		require.NoError(t, err)
		tu, err := New().Legendre(up, n, x, apfloat.RoundUp)
		require.NoError(t, err)

		require.Equal(t, apfloat.Below, td)
		require.Equal(t, apfloat.Above, tu)

		// adjacent 24-bit values
		gap := new(big.Float).Sub(up.Big(), down.Big())
		ulp := new(big.Float).SetMantExp(big.NewFloat(1), min(up.Exp(), down.Exp())-24)
		assert.Zero(t, gap.Cmp(ulp), "P%d", n)
	}
}

func TestLegendreBelowExponentFloor(t *testing.T) {
	// P₂(x) = −1/2 + 3x²/2 with x² far below the smallest big.Float.
	x := pow2Arg(-1100000000)
	cases := []struct {
		rnd  apfloat.RoundingMode
		want string
		tern apfloat.Ternary
	}{
		{apfloat.RoundNearest, "-0x1p-1", apfloat.Below},
		{apfloat.RoundFaithful, "-0x1p-1", apfloat.Below},
		{apfloat.RoundDown, "-0x1p-1", apfloat.Below},
		{apfloat.RoundAway, "-0x1p-1", apfloat.Below},
		{apfloat.RoundToZero, "-0x1.fffffffffffffp-2", apfloat.Above},
		{apfloat.RoundUp, "-0x1.fffffffffffffp-2", apfloat.Above},
	}
	for _, tc := range cases {
		res := apfloat.New(53)
		tern, err := New().Legendre(res, 2, x, tc.rnd)
		require.NoError(t, err, tc.rnd.String())
		assert.Equal(t, tc.tern, tern, tc.rnd.String())
		assert.Zero(t, res.Big().Cmp(parseHex(t, tc.want)), "%s: got %s", tc.rnd, res.Text('p', 0))
	}
}

func TestLegendreTinyArguments(t *testing.T) {
	var paths []Path
	e := New(WithObserver(ObserverFunc(func(s Stats) { paths = append(paths, s.Path) })))
	for _, exp := range []int{-1000, -600} {
		for _, neg := range []bool{false, true} {
			x := pow2Arg(exp)
			if neg {
				x = negate(x)
			}
			for _, n := range []int{2, 3, 6, 11, 40} {
				exact := legendreExact(n, ratOf(t, x))
				for _, rnd := range allModes {
					res := apfloat.New(64)
					tern, err := e.Legendre(res, n, x, rnd)
					require.NoError(t, err)
					requireMatches(t, exact, res, tern, rnd, fmt.Sprintf("P%d(x) neg=%v exp=%d", n, neg, exp))
				}
			}
		}
	}
	require.NotEmpty(t, paths)
	for _, p := range paths {
		require.Equal(t, PathLeadingTerm, p)
	}
}

func TestLeadingCoefficient(t *testing.T) {
	// Compare with the exact recursion's lowest-order term.
	for _, f := range []Family{FamilyLegendre, FamilyHermite} {
		for n := 2; n <= 30; n++ {
			num, shift := leadingCoefficient(f, n)
			got := new(big.Rat).SetFrac(num, new(big.Int).Lsh(big.NewInt(1), uint(shift)))

			// p_n(h)/h^(n mod 2) at a tiny dyadic h tends to the coefficient.
			h := new(big.Rat).SetFrac64(1, 1<<40)
			var v *big.Rat
			if f == FamilyLegendre {
				v = legendreExact(n, h)
			} else {
				v = hermiteExact(t, n, h)
			}
			if n%2 == 1 {
				v.Quo(v, h)
			}
			diff := new(big.Rat).Sub(v, got)
			diff.Quo(diff, got)
			d, _ := diff.Abs(diff).Float64()
			assert.Less(t, d, 0x1p-60, "%s%d", f, n)
			assert.LessOrEqual(t, num.BitLen(), leadingBits(f, n, bits.Len(uint(n))), "%s%d", f, n)
		}
	}
}
