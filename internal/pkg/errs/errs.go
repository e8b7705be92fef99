package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is.
var (
	ErrObjectNotFound         = errors.New("object not found")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrValueIsOutOfRange      = errors.New("value is out of range")
	ErrValueIsRequired        = errors.New("value is required")
	ErrStatusConflict         = errors.New("status conflict")
	ErrCodeVerificationFailed = errors.New("verification failed")
)

// sanitize strips newlines from values before they are interpolated into
// error messages, keeping single-line log output intact.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError indicates that an object with the given identifier
// does not exist in storage.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the named
// parameter and identifier.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an
// underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value does not satisfy its
// validation rules.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the named parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an
// underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a numeric value falls outside its
// allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError for the named
// parameter with the offending value and its bounds.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping
// an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s (cause: %s)",
			ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max), e.Cause)
	}
	return fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates that a mandatory value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the named
// parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an
// underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// StatusConflictError indicates that a lifecycle operation was attempted
// against a package whose current status does not allow it. It covers
// double-assignment, repeated confirmations, and deleting non-pending
// packages uniformly: callers learn only that the precondition failed, not
// which concurrent transition won.
type StatusConflictError struct {
	Operation string
	Status    string
	Cause     error
}

// NewStatusConflictError creates a StatusConflictError for an operation
// rejected in the given status.
func NewStatusConflictError(operation, status string) *StatusConflictError {
	return &StatusConflictError{Operation: operation, Status: status}
}

// NewStatusConflictErrorWithCause creates a StatusConflictError wrapping an
// underlying cause.
func NewStatusConflictErrorWithCause(operation, status string, cause error) *StatusConflictError {
	return &StatusConflictError{Operation: operation, Status: status, Cause: cause}
}

func (e *StatusConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s is not allowed in status %s (cause: %s)",
			ErrStatusConflict, e.Operation, sanitize(e.Status), e.Cause)
	}
	return fmt.Sprintf("%s: %s is not allowed in status %s", ErrStatusConflict, e.Operation, sanitize(e.Status))
}

func (e *StatusConflictError) Unwrap() error {
	return ErrStatusConflict
}

// CodeVerificationError indicates that an access-code gate rejected a
// transition. The message is intentionally constant: it must not reveal the
// expected code, whether the package exists, or whether the courier binding
// rather than the code was wrong.
type CodeVerificationError struct {
	Cause error
}

// NewCodeVerificationError creates a CodeVerificationError.
func NewCodeVerificationError() *CodeVerificationError {
	return &CodeVerificationError{}
}

// NewCodeVerificationErrorWithCause creates a CodeVerificationError wrapping
// an underlying cause. The cause is never rendered into the message; it is
// reachable for internal logging only via the struct field.
func NewCodeVerificationErrorWithCause(cause error) *CodeVerificationError {
	return &CodeVerificationError{Cause: cause}
}

func (e *CodeVerificationError) Error() string {
	return ErrCodeVerificationFailed.Error()
}

func (e *CodeVerificationError) Unwrap() error {
	return ErrCodeVerificationFailed
}
