package orthopoly

import (
	"fmt"
	"strings"
	"time"

	"github.com/GriffinCanCode/polyprec/internal/apfloat"
)

// Family selects the polynomial family.
type Family int

const (
	FamilyLegendre Family = iota
	FamilyHermite
)

// String returns the lower-case family name.
func (f Family) String() string {
	switch f {
	case FamilyLegendre:
		return "legendre"
	case FamilyHermite:
		return "hermite"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// ParseFamily parses "legendre" or "hermite" (case-insensitive, "P" and "H"
// accepted).
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "legendre", "p":
		return FamilyLegendre, nil
	case "hermite", "h":
		return FamilyHermite, nil
	default:
		return 0, fmt.Errorf("orthopoly: unknown family %q", s)
	}
}

// Path is the route an evaluation took.
type Path int

const (
	PathSpecial Path = iota
	PathClosedForm
	PathRecurrence
	PathLeadingTerm
)

// String returns the path name used in logs and metric labels.
func (p Path) String() string {
	switch p {
	case PathSpecial:
		return "special"
	case PathClosedForm:
		return "closed_form"
	case PathRecurrence:
		return "recurrence"
	case PathLeadingTerm:
		return "leading_term"
	default:
		return "unknown"
	}
}

// Stats describes one finished evaluation.
type Stats struct {
	Family   Family
	Degree   int
	Path     Path
	Rounding apfloat.RoundingMode
	Target   uint

	// Precision is the final working precision, zero on the special path.
	Precision uint
	Passes    int
	Restarts  int

	Ternary apfloat.Ternary
	NaN     bool
	Elapsed time.Duration
	Err     error
}

// Observer receives the Stats of every evaluation.
type Observer interface {
	ObserveEvaluation(Stats)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Stats)

// ObserveEvaluation calls f(s).
func (f ObserverFunc) ObserveEvaluation(s Stats) {
	f(s)
}

type nopObserver struct{}

func (nopObserver) ObserveEvaluation(Stats) {}
