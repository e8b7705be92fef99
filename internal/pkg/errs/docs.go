// Package errs provides standardized error types for the foodbridge
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The package covers the failure taxonomy of the package lifecycle engine:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     bad input, rejected before any state change
//   - ObjectNotFoundError: unknown package or aggregate identifier
//   - StatusConflictError: a lifecycle precondition on status or courier
//     assignment was not met (double-assign, double-confirm, late delete)
//   - CodeVerificationError: the access-code gate rejected a transition;
//     deliberately generic so callers cannot distinguish a wrong code from
//     a wrong courier binding
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrStatusConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
package errs
