package orthopoly

import (
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/polyprec/internal/apfloat"
)

func TestHermiteReferenceValues(t *testing.T) {
	cases := []struct {
		n    int
		x    float64
		want string
	}{
		{3, 3.49376, "299.24358881463500799999999999999999999961"},
		{6, -2.2364, "-518.92977013945504945520448445364119704459"},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("H%d", tc.n), func(t *testing.T) {
			want, err := strconv.ParseFloat(tc.want, 64)
			require.NoError(t, err)

			x := apfloat.NewFloat64(tc.x)
			res := apfloat.New(53)
			tern := Hermite(res, tc.n, x, apfloat.RoundNearest)
			assert.Equal(t, want, res.Float64())
			assert.NotEqual(t, apfloat.Exact, tern)

			requireMatches(t, hermiteExact(t, tc.n, ratOf(t, x)), res, tern, apfloat.RoundNearest, "reference")
		})
	}
}

func TestHermiteMatchesDecimalOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	precs := []uint{1, 3, 24, 53, 100}

	for iter := 0; iter < 120; iter++ {
		n := 2 + rng.Intn(50)
		x := apfloat.NewFloat64(20*rng.Float64() - 10)
		exact := hermiteExact(t, n, ratOf(t, x))

		for _, prec := range precs {
			for _, rnd := range allModes {
				res := apfloat.New(prec)
				tern, err := New().Hermite(res, n, x, rnd)
				require.NoError(t, err)
				requireMatches(t, exact, res, tern, rnd, fmt.Sprintf("H%d(%s) prec %d %s", n, x.Text('p', 0), prec, rnd))
			}
		}
	}
}

func TestHermiteLargeArguments(t *testing.T) {
	for _, xv := range []float64{0x1p40, -0x1p-30, 1e6 + 0.5, 123.456} {
		for _, n := range []int{17, 64, 300} {
			x := apfloat.NewFloat64(xv)
			exact := hermiteExact(t, n, ratOf(t, x))
			for _, rnd := range []apfloat.RoundingMode{apfloat.RoundNearest, apfloat.RoundDown, apfloat.RoundAway} {
				res := apfloat.New(64)
				tern, err := New().Hermite(res, n, x, rnd)
				require.NoError(t, err)
				requireMatches(t, exact, res, tern, rnd, fmt.Sprintf("H%d(%v)", n, xv))
			}
		}
	}
}

func TestHermiteCancellationRestarts(t *testing.T) {
	// x is the double nearest the root √(3/2) of H₃
	x := apfloat.NewFloat64(math.Sqrt(1.5))

	tk := newHermiteTask(3, x, 53, apfloat.RoundNearest)
	defer tk.release()
	tk.Resize(60)
	sig := tk.Compute(60)
	require.True(t, sig.Restart)
	assert.Greater(t, sig.Lost, uint(60-53))

	var restarts int
	e := New(WithObserver(ObserverFunc(func(s Stats) { restarts += s.Restarts })))
	exact := hermiteExact(t, 3, ratOf(t, x))
	for _, rnd := range allModes {
		res := apfloat.New(53)
		tern, err := e.Hermite(res, 3, x, rnd)
		require.NoError(t, err)
		requireMatches(t, exact, res, tern, rnd, "H3 at root")
	}
	t.Logf("restarts across modes: %d", restarts)
}

func TestHermiteParity(t *testing.T) {
	for _, n := range []int{5, 8, 21, 40} {
		pos, neg := apfloat.New(80), apfloat.New(80)
		Hermite(pos, n, apfloat.NewFloat64(1.75), apfloat.RoundNearest)
		Hermite(neg, n, apfloat.NewFloat64(-1.75), apfloat.RoundNearest)

		if n%2 == 1 {
			neg = negate(neg)
		}
		c, ok := pos.Cmp(neg)
		require.True(t, ok)
		assert.Zero(t, c, "H%d", n)
	}
}

func negate(x *apfloat.Float) *apfloat.Float {
	z := apfloat.New(x.Prec())
	z.Sub(apfloat.New(x.Prec()), x, apfloat.RoundNearest)
	return z
}

func TestHermiteOverflow(t *testing.T) {
	huge := new(big.Float).SetMantExp(big.NewFloat(1), 1073741900)
	cases := []struct {
		n    int
		neg  bool
		rnd  apfloat.RoundingMode
		inf  bool
		want apfloat.Ternary
	}{
		{3, false, apfloat.RoundNearest, true, apfloat.Above},
		{3, false, apfloat.RoundToZero, false, apfloat.Below},
		{3, false, apfloat.RoundDown, false, apfloat.Below},
		{3, false, apfloat.RoundAway, true, apfloat.Above},
		{3, true, apfloat.RoundNearest, true, apfloat.Below},
		{3, true, apfloat.RoundUp, false, apfloat.Above},
		{3, true, apfloat.RoundDown, true, apfloat.Below},
		{4, true, apfloat.RoundNearest, true, apfloat.Above},
		{4, true, apfloat.RoundToZero, false, apfloat.Below},
	}
	for _, tc := range cases {
		name := fmt.Sprintf("H%d neg=%v %s", tc.n, tc.neg, tc.rnd)
		xb := new(big.Float).Set(huge)
		if tc.neg {
			xb.Neg(xb)
		}
		x := apfloat.New(53)
		x.SetBig(xb, apfloat.RoundNearest)

		res := apfloat.New(53)
		tern, err := New().Hermite(res, tc.n, x, tc.rnd)
		require.NoError(t, err, name)
		assert.Equal(t, tc.want, tern, name)
		assert.Equal(t, tc.inf, res.IsInf(), name)
		if !tc.inf {
			assert.Equal(t, apfloat.DefaultEmax, res.Exp(), name)
			assert.Equal(t, uint(53), res.MinPrec(), name)
		}
		assert.Equal(t, tc.neg && tc.n%2 == 1, res.Signbit(), name)
	}
}

func TestHermiteOverflowLateInRecurrence(t *testing.T) {
	var paths []Path
	e := New(WithObserver(ObserverFunc(func(s Stats) { paths = append(paths, s.Path) })))

	res := apfloat.New(53)
	tern, err := e.Hermite(res, 8000, pow2Arg(300000), apfloat.RoundNearest)
	require.NoError(t, err)
	assert.True(t, res.IsInf())
	assert.False(t, res.Signbit())
	assert.Equal(t, apfloat.Above, tern)
	assert.Equal(t, []Path{PathRecurrence}, paths)
}

func TestHermiteDegreeOneOverflow(t *testing.T) {
	x := apfloat.New(53)
	x.SetBig(new(big.Float).SetMantExp(big.NewFloat(0.5), big.MaxExp), apfloat.RoundNearest)

	res := apfloat.New(53)
	tern, err := New().Hermite(res, 1, x, apfloat.RoundNearest)
	require.NoError(t, err)
	assert.True(t, res.IsInf())
	assert.Equal(t, apfloat.Above, tern)

	tern, err = New().Hermite(res, 1, x, apfloat.RoundToZero)
	require.NoError(t, err)
	assert.True(t, res.IsFinite())
	assert.Equal(t, apfloat.Below, tern)
}

func TestHermiteBelowExponentFloor(t *testing.T) {
	// H₂(x) = −2 + 4x² with x² far below the smallest big.Float.
	x := pow2Arg(-1100000000)
	cases := []struct {
		rnd  apfloat.RoundingMode
		want string
		tern apfloat.Ternary
	}{
		{apfloat.RoundNearest, "-0x1p+1", apfloat.Below},
		{apfloat.RoundFaithful, "-0x1p+1", apfloat.Below},
		{apfloat.RoundDown, "-0x1p+1", apfloat.Below},
		{apfloat.RoundAway, "-0x1p+1", apfloat.Below},
		{apfloat.RoundToZero, "-0x1.fffffffffffffp+0", apfloat.Above},
		{apfloat.RoundUp, "-0x1.fffffffffffffp+0", apfloat.Above},
	}
	for _, tc := range cases {
		res := apfloat.New(53)
		tern, err := New().Hermite(res, 2, x, tc.rnd)
		require.NoError(t, err, tc.rnd.String())
		assert.Equal(t, tc.tern, tern, tc.rnd.String())
		assert.Zero(t, res.Big().Cmp(parseHex(t, tc.want)), "%s: got %s", tc.rnd, res.Text('p', 0))
	}
}

func TestHermiteTinyArguments(t *testing.T) {
	var paths []Path
	e := New(WithObserver(ObserverFunc(func(s Stats) { paths = append(paths, s.Path) })))
	for _, exp := range []int{-1000, -600} {
		for _, sign := range []float64{1, -1} {
			x := pow2Arg(exp)
			if sign < 0 {
				x = negate(x)
			}
			for _, n := range []int{2, 3, 7, 10, 25} {
				exact := hermiteExact(t, n, ratOf(t, x))
				for _, rnd := range allModes {
					res := apfloat.New(53)
					tern, err := e.Hermite(res, n, x, rnd)
					require.NoError(t, err)
					requireMatches(t, exact, res, tern, rnd, fmt.Sprintf("H%d(%v·2^%d)", n, sign, exp))
				}
			}
		}
	}
	for _, p := range paths {
		require.Equal(t, PathLeadingTerm, p)
	}
}
