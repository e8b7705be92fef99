package foodpackage

import (
	"fmt"

	"foodbridge/internal/pkg/errs"
)

// Status represents the lifecycle state of a package. It implements a
// strictly monotonic state machine:
//
//	Pending ──> Assigned ──> PickedUp ──> Completed
//
// No transition ever reverts, and Completed is terminal. Each transition
// method returns the next status or a StatusConflictError; the error is
// deliberately uniform so racing callers cannot tell "already assigned"
// from "already completed" without reading current state first.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the package awaits courier assignment
	// and is the only status visible to discovery.
	Pending

	// Assigned indicates exactly one courier has claimed the package.
	Assigned

	// PickedUp indicates the assigned courier presented the correct pickup
	// code at the store handoff.
	PickedUp

	// Completed indicates the delivery code was verified at the food bank.
	// Terminal state.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Assigned:  "Assigned",
		PickedUp:  "PickedUp",
		Completed: "Completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Assigned:  "Assigned",
		PickedUp:  "PickedUp",
		Completed: "Completed",
	}
}

// Validate checks that the Status is one of the four lifecycle states.
// Unknown (0) and any other values are invalid. Used when reconstructing
// packages from persistence or API input.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, implementing
// fmt.Stringer. Invalid values render as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateCanHaveCourier validates the consistency between status and
// courier assignment: a Pending package must not have a courier, every
// other valid status must have exactly one.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s package must not have a courier", s.String()),
		)
	}

	if !courier && (s == Assigned || s == PickedUp || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s package must have a courier", s.String()),
		)
	}

	return nil
}

// Assign transitions Pending -> Assigned. Any other current status yields
// a StatusConflictError.
func (s Status) Assign() (Status, error) {
	if s != Pending {
		return 0, errs.NewStatusConflictError("assign", s.String())
	}

	return Assigned, nil
}

// MarkPickedUp transitions Assigned -> PickedUp. Any other current status
// yields a StatusConflictError; a repeated confirmation therefore fails
// instead of silently re-applying.
func (s Status) MarkPickedUp() (Status, error) {
	if s != Assigned {
		return 0, errs.NewStatusConflictError("confirmPickup", s.String())
	}

	return PickedUp, nil
}

// Complete transitions PickedUp -> Completed, the terminal state.
func (s Status) Complete() (Status, error) {
	if s != PickedUp {
		return 0, errs.NewStatusConflictError("confirmDelivery", s.String())
	}

	return Completed, nil
}

// ValidateDelete checks that a package in this status may be removed.
// Only Pending packages are deletable: anything later carries assignment
// history that must be preserved.
func (s Status) ValidateDelete() error {
	if s != Pending {
		return errs.NewStatusConflictError("delete", s.String())
	}

	return nil
}
