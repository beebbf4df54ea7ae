/*
Package orthopoly evaluates Legendre polynomials Pₙ(x) and physicist's Hermite
polynomials Hₙ(x) with correct rounding at any target precision.

# Overview

An evaluation runs in three stages:

  - Classification: NaN and infinite inputs, out-of-domain arguments, the
    degree ceiling and the base cases (n = 0, n = 1, x = ±1 for Legendre,
    odd degree at x = 0) return immediately.
  - Adaptive computation: the three-term recurrence, or the log-gamma closed
    form for even degree at x = 0, runs under a ziv.Loop. Every term carries a
    rigorous error bound, and a pass is accepted only once apfloat.CanRound
    proves the rounding.
  - Final rounding: the accepted approximation is rounded once into the
    caller's result, which yields the ternary value.

# Usage

	x := apfloat.NewFloat64(0.5)
	res := apfloat.New(53)
	t := orthopoly.Legendre(res, 10, x, apfloat.RoundNearest)

	ev := orthopoly.New(
		orthopoly.WithMaxDegree(1<<16),
		orthopoly.WithLogger(logger),
	)
	t, err := ev.Hermite(res, 40, x, apfloat.RoundUp)

# Results

NaN results always carry an exact ternary. The result's precision selects the
target precision. x is only written when it is also the result. An Evaluator holds no per-call
state and is safe for concurrent use.
*/
package orthopoly
