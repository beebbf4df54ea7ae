package ziv

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"

	"go.uber.org/zap"
)

// ErrPrecisionLimit is returned when a computation needs more working
// precision than the loop allows.
var ErrPrecisionLimit = errors.New("ziv: working precision limit exceeded")

const (
	// firstIncrement is the first Ziv increment, one machine word.
	firstIncrement = 64

	// restartSlack is added on top of the lost bits when Compute restarts.
	restartSlack = 16

	// DefaultLimit caps working precision at 16 Mbit.
	DefaultLimit = 1 << 24
)

// State is a step of the escalation state machine.
type State int

const (
	StateInit State = iota
	StateCompute
	StateCheck
	StateEscalate
	StateDone
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateCompute:
		return "compute"
	case StateCheck:
		return "check"
	case StateEscalate:
		return "escalate"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Signal is the outcome of one Compute pass.
type Signal struct {
	// Restart asks the loop to raise precision and compute again.
	Restart bool
	// Lost is the number of bits lost to cancellation.
	Lost uint
}

// Verdict is the outcome of Check.
type Verdict struct {
	// Done reports that the result rounds correctly.
	Done bool
	// Shortfall estimates the missing bits, or 0 when unknown.
	Shortfall uint
}

// Task is one adaptive computation.
type Task interface {
	// Resize reallocates the task's temporaries at prec bits.
	Resize(prec uint)
	// Compute runs a full pass at prec bits.
	Compute(prec uint) Signal
	// Check decides whether the last pass rounds correctly.
	Check(prec uint) Verdict
}

// Stats describes a finished run.
type Stats struct {
	Passes    int
	Restarts  int
	Escalated int
	Precision uint
}

// Loop owns the working precision of one computation.
type Loop struct {
	prec   uint
	inc    uint
	limit  uint
	state  State
	stats  Stats
	logger *zap.Logger
}

// Initial returns the first working precision for a result of target bits
// from an input of input bits, with guard extra bits.
func Initial(target, input, guard uint) uint {
	base := target + 10
	if input > target {
		base = input
	}
	base += guard
	return base + CeilLog2(base)
}

// CeilLog2 returns ⌈log2 p⌉ for p ≥ 1.
func CeilLog2(p uint) uint {
	if p <= 1 {
		return 0
	}
	return uint(bits.Len(p - 1))
}

// New returns a loop starting at prec bits that refuses to exceed limit.
// A zero limit means DefaultLimit.
func New(prec, limit uint, logger *zap.Logger) (*Loop, error) {
	if limit == 0 || limit > big.MaxPrec {
		limit = min(DefaultLimit, big.MaxPrec)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if prec > limit {
		return nil, fmt.Errorf("%w: initial %d bits, limit %d", ErrPrecisionLimit, prec, limit)
	}
	return &Loop{
		prec:   max(prec, 2),
		inc:    firstIncrement,
		limit:  limit,
		state:  StateInit,
		logger: logger,
	}, nil
}

// Prec returns the current working precision.
func (l *Loop) Prec() uint {
	return l.prec
}

// State returns the current state.
func (l *Loop) State() State {
	return l.state
}

// Stats returns the counters of the run so far.
func (l *Loop) Stats() Stats {
	s := l.stats
	s.Precision = l.prec
	return s
}

// Run drives task until Check succeeds or the precision limit is reached.
func (l *Loop) Run(task Task) error {
	var verdict Verdict

	l.state = StateInit
	task.Resize(l.prec)
	l.state = StateCompute

	for {
		switch l.state {
		case StateCompute:
			l.stats.Passes++
			sig := task.Compute(l.prec)
			if !sig.Restart {
				l.state = StateCheck
				continue
			}
			l.stats.Restarts++
			l.logger.Debug("ziv: restart after cancellation",
				zap.Uint("prec", l.prec),
				zap.Uint("lost_bits", sig.Lost))
			if err := l.grow(sig.Lost + restartSlack); err != nil {
				return err
			}
			task.Resize(l.prec)

		case StateCheck:
			verdict = task.Check(l.prec)
			if verdict.Done {
				l.state = StateDone
				return nil
			}
			l.state = StateEscalate

		case StateEscalate:
			l.stats.Escalated++
			step := l.inc
			if s := 2 * verdict.Shortfall; s > step {
				step = s
			}
			l.logger.Debug("ziv: escalate",
				zap.Uint("prec", l.prec),
				zap.Uint("shortfall", verdict.Shortfall),
				zap.Uint("step", step))
			if err := l.grow(step); err != nil {
				return err
			}
			l.inc = l.prec / 2
			task.Resize(l.prec)
			l.state = StateCompute

		default:
			return fmt.Errorf("ziv: unexpected state %s", l.state)
		}
	}
}

func (l *Loop) grow(step uint) error {
	next := l.prec + step
	if next < l.prec || next > l.limit {
		return fmt.Errorf("%w: need more than %d bits, limit %d", ErrPrecisionLimit, l.prec, l.limit)
	}
	l.prec = next
	return nil
}
