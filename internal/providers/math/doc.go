// Package math provides the "math" service: correctly rounded Legendre and
// Hermite polynomials (math.legendre, math.hermite) and single-rounding
// arithmetic (math.precise.*).
//
// Numbers are accepted as strings (decimal, 0x or 0b, nan, inf) or JSON
// numbers and read to nearest at an operand precision. Results carry the
// formatted value, the ternary (-1, 0, +1 for below, exact, above), the
// result precision and the rounding mode. Parameter problems are reported as
// failed results, not Go errors.
package math
