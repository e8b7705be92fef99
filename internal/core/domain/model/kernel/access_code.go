package kernel

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"

	"foodbridge/internal/pkg/errs"
)

// AccessCodeLength is the number of digits in a generated access code.
const AccessCodeLength = 4

// ErrAccessCodeIsNotConstructed is returned when validating a zero-value
// AccessCode. Codes must be created via NewRandomAccessCode or
// AccessCodeFromString.
var ErrAccessCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"access code must be created via NewRandomAccessCode or AccessCodeFromString")

// AccessCode is a short numeric secret gating a single lifecycle transition
// of a single package. Two independent codes are generated per package at
// creation: one for pickup, one for delivery. Codes are scoped per package,
// so collisions across packages are acceptable.
//
// The code value is never rendered by String or by errors; it is exposed
// only through Value for the create-package response to the owning store
// and for persistence.
type AccessCode struct {
	value string
}

// NewRandomAccessCode generates a fixed-length numeric access code using a
// cryptographic source. Leading zeros are preserved ("0042" is valid).
func NewRandomAccessCode() (AccessCode, error) {
	digits := make([]byte, AccessCodeLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return AccessCode{}, err
		}
		digits[i] = byte('0' + n.Int64())
	}

	return AccessCode{value: string(digits)}, nil
}

// AccessCodeFromString reconstructs an AccessCode from its stored form.
// The input must be exactly AccessCodeLength decimal digits.
func AccessCodeFromString(s string) (AccessCode, error) {
	if len(s) != AccessCodeLength {
		return AccessCode{}, errs.NewValueIsInvalidError("access code")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return AccessCode{}, errs.NewValueIsInvalidError("access code")
		}
	}

	return AccessCode{value: s}, nil
}

// Value returns the digits of the code. Callers are responsible for keeping
// the value out of logs and discovery responses.
func (c AccessCode) Value() string {
	return c.value
}

// Matches compares a supplied code string against this code in constant
// time. A zero-value AccessCode matches nothing.
func (c AccessCode) Matches(supplied string) bool {
	if c.value == "" || len(supplied) != len(c.value) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.value), []byte(supplied)) == 1
}

// IsEqual reports whether two codes hold the same digits.
func (c AccessCode) IsEqual(other AccessCode) bool {
	return c.value != "" && c.value == other.value
}

// String implements fmt.Stringer without revealing the digits.
func (c AccessCode) String() string {
	return "AccessCode(****)"
}

// Validate returns ErrAccessCodeIsNotConstructed for a zero-value code.
func (c AccessCode) Validate() error {
	if c.value == "" {
		return ErrAccessCodeIsNotConstructed
	}
	return nil
}
