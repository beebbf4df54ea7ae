/*
Package ziv drives adaptive-precision computations with Ziv's strategy.

# Overview

A Task computes an approximation at a working precision and then checks
whether its proven error bound allows a correct rounding to the target. The
Loop owns the precision and moves the task through

	Init → Compute → Check → Done
	                   |
	                   +--> Escalate → Compute

Compute may also return a restart signal (for example after catastrophic
cancellation) which raises the precision and reruns Compute without passing
through Check.

# Precision policy

  - Init: Initial(target, input, guard) picks the first working precision
  - Escalate: grow by twice the reported shortfall, or by the Ziv increment
  - Restart: grow by the lost bits plus a fixed slack

Precision never decreases. Growing past the configured limit fails with
ErrPrecisionLimit instead of attempting an unbounded allocation.
*/
package ziv
