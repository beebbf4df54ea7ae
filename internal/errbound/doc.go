/*
Package errbound tracks rigorous upper bounds on the rounding error carried by
arbitrary-precision approximations.

# Overview

Every value produced by a rounded operation is paired with a Bound, an upper
bound on its absolute distance from the exact real it approximates. The
propagation rules in this package combine the bounds of the operands with the
local rounding error of the operation, so the bound on the last term of a
recurrence is provable rather than estimated.

# Features

  - Bound: m·2^e upper bounds that never overflow and always round upward
  - Local rounding error of round-to-nearest results (half an ulp)
  - Propagation rules for multiply, exact product, subtract and small-integer scaling
  - Cancellation detection for same-sign subtractions
  - Static guard-bit estimates per polynomial family

# Usage

	acc := b.Mul(a, p)
	eb := errbound.MulErr(b, acc, a, ea, p, ep)

	if lost, ok := errbound.Cancellation(b, c); ok && lost > margin {
		// not enough precision for this subtraction
	}

A zero Bound means the value is exact.
*/
package errbound
