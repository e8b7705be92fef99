// Package guard provides the constructor-guard pattern used by value objects,
// aggregates, commands, and queries throughout the application. Embedding a
// ConstructorGuard in a struct makes it possible to detect whether the struct
// was produced by its designated constructor or is an unchecked zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied and the object was not properly constructed.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having passed through its constructor.
// The zero value of ConstructorGuard is "not constructed", so any struct that
// embeds one and is created by direct literal initialization fails Validate.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard in the "properly constructed" state.
// Constructors set this as the last step of successful construction.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate reports whether the guarded object was created via its constructor.
// Returns validationError (or ErrDefaultConstructorGuard when validationError
// is nil) for zero-value guards, nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
