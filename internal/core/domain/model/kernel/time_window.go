package kernel

import (
	"fmt"
	"time"

	"foodbridge/internal/pkg/errs"
	"foodbridge/internal/pkg/guard"
)

// ErrTimeWindowIsNotConstructed is returned when validating a zero-value
// TimeWindow. Windows must be created via NewTimeWindow.
var ErrTimeWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"time window must be created via NewTimeWindow constructor")

// ErrTimeWindowIsInverted indicates that the window's start does not precede
// its end.
var ErrTimeWindowIsInverted = errs.NewValueIsInvalidError("pickup window: start must be before end")

// TimeWindow is the half-open interval [start, end) during which a package
// is available for pickup at the store. start < end is enforced at
// construction.
type TimeWindow struct {
	start time.Time
	end   time.Time
	guard guard.ConstructorGuard
}

// NewTimeWindow creates a TimeWindow. Both bounds are required and start
// must be strictly before end.
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if start.IsZero() {
		return TimeWindow{}, errs.NewValueIsRequiredError("pickup window start")
	}
	if end.IsZero() {
		return TimeWindow{}, errs.NewValueIsRequiredError("pickup window end")
	}
	if !start.Before(end) {
		return TimeWindow{}, ErrTimeWindowIsInverted
	}

	return TimeWindow{start: start, end: end, guard: guard.NewConstructorGuard()}, nil
}

// Validate checks that the TimeWindow was created through NewTimeWindow.
func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

// Start returns the opening bound of the window.
func (w TimeWindow) Start() time.Time {
	return w.start
}

// End returns the closing bound of the window.
func (w TimeWindow) End() time.Time {
	return w.end
}

// Remaining returns the time left until the window closes as of now.
// Negative durations mean the window has already closed.
func (w TimeWindow) Remaining(now time.Time) time.Duration {
	return w.end.Sub(now)
}

// String implements fmt.Stringer.
func (w TimeWindow) String() string {
	return fmt.Sprintf("TimeWindow(%s..%s)", w.start.Format(time.RFC3339), w.end.Format(time.RFC3339))
}
