package sim

import (
	"fmt"

	"github.com/rustyeddy/hedger/market"
)

// Phase is where the hedge is in its single roll lifecycle.
type Phase int

const (
	HeldAtInitialStrike Phase = iota
	Rolled
)

func (p Phase) String() string {
	switch p {
	case HeldAtInitialStrike:
		return "HELD_AT_INITIAL_STRIKE"
	case Rolled:
		return "ROLLED"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is carried from one day to the next.
type State struct {
	Phase              Phase
	ActiveStrike       float64
	CumulativeInterest float64
}

// ErrNumerical is wrapped by NumericalError and by price path failures.
var ErrNumerical = market.ErrNumerical

// NumericalError reports the first non-finite quantity met during a run.
type NumericalError struct {
	Day      int
	Quantity string
	Value    float64
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("numerical error on day %d: %s is %v", e.Day, e.Quantity, e.Value)
}

func (e *NumericalError) Unwrap() error { return ErrNumerical }
