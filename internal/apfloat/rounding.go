package apfloat

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidRounding is returned for an unknown rounding mode name.
var ErrInvalidRounding = errors.New("apfloat: invalid rounding mode")

// RoundingMode selects how a result is rounded to its target precision.
type RoundingMode int

const (
	// RoundNearest rounds to nearest, ties to even (RNDN).
	RoundNearest RoundingMode = iota
	// RoundToZero rounds toward zero (RNDZ).
	RoundToZero
	// RoundUp rounds toward +Inf (RNDU).
	RoundUp
	// RoundDown rounds toward -Inf (RNDD).
	RoundDown
	// RoundAway rounds away from zero (RNDA).
	RoundAway
	// RoundFaithful returns one of the two neighbours of the exact value (RNDF).
	// It is realized as RoundNearest.
	RoundFaithful
)

var roundingNames = [...]string{"RNDN", "RNDZ", "RNDU", "RNDD", "RNDA", "RNDF"}

var roundingAliases = map[string]RoundingMode{
	"RNDN": RoundNearest, "NEAREST": RoundNearest, "N": RoundNearest,
	"RNDZ": RoundToZero, "ZERO": RoundToZero, "TOWARDZERO": RoundToZero, "Z": RoundToZero,
	"RNDU": RoundUp, "UP": RoundUp, "CEIL": RoundUp, "U": RoundUp,
	"RNDD": RoundDown, "DOWN": RoundDown, "FLOOR": RoundDown, "D": RoundDown,
	"RNDA": RoundAway, "AWAY": RoundAway, "A": RoundAway,
	"RNDF": RoundFaithful, "FAITHFUL": RoundFaithful, "F": RoundFaithful,
}

// ParseRoundingMode parses an MPFR-style name (RNDN, RNDZ, ...) or a long
// name such as "nearest" or "toward_zero". Matching is case-insensitive.
func ParseRoundingMode(s string) (RoundingMode, error) {
	key := strings.ToUpper(strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.TrimSpace(s)))
	if key == "" {
		return RoundNearest, nil
	}
	if m, ok := roundingAliases[key]; ok {
		return m, nil
	}
	return RoundNearest, fmt.Errorf("%w: %q", ErrInvalidRounding, s)
}

// Valid reports whether m is one of the defined modes.
func (m RoundingMode) Valid() bool {
	return m >= RoundNearest && m <= RoundFaithful
}

// String returns the MPFR name of the mode.
func (m RoundingMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("RoundingMode(%d)", int(m))
	}
	return roundingNames[m]
}

// Big returns the math/big rounding mode implementing m.
func (m RoundingMode) Big() big.RoundingMode {
	switch m {
	case RoundToZero:
		return big.ToZero
	case RoundUp:
		return big.ToPositiveInf
	case RoundDown:
		return big.ToNegativeInf
	case RoundAway:
		return big.AwayFromZero
	default:
		return big.ToNearestEven
	}
}

// nearest reports whether m rounds to nearest.
func (m RoundingMode) nearest() bool {
	return m == RoundNearest || m == RoundFaithful || !m.Valid()
}

// Ternary is the sign of (rounded − exact): Below, Exact or Above.
type Ternary int

const (
	Below Ternary = -1
	Exact Ternary = 0
	Above Ternary = 1
)

func ternaryOf(acc big.Accuracy) Ternary {
	return Ternary(acc)
}

// String implements fmt.Stringer.
func (t Ternary) String() string {
	switch {
	case t < 0:
		return "below"
	case t > 0:
		return "above"
	default:
		return "exact"
	}
}
