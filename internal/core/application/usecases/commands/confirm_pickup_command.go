package commands

import (
	"errors"

	"foodbridge/internal/core/domain/model/kernel"
	"foodbridge/internal/pkg/guard"
)

var (
	ErrConfirmPickupCommandIsNotConstructed = errors.New(
		"ConfirmPickupCommand must be created via NewConfirmPickupCommand constructor",
	)
	ErrCodeIsRequired = errors.New("code is required")
)

// ConfirmPickupCommand represents a courier's attempt to confirm physical
// pickup at the store by presenting the package's pickup code.
type ConfirmPickupCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	courierID kernel.UUID
	code      string

	guard guard.ConstructorGuard
}

// NewConfirmPickupCommand creates a command to confirm a store pickup.
// Validates that both identifiers are valid and a code was presented.
// The code itself is only checked against the stored one inside the domain,
// so a malformed code fails verification rather than validation.
func NewConfirmPickupCommand(
	packageID kernel.UUID,
	courierID kernel.UUID,
	code string,
) (ConfirmPickupCommand, error) {
	pickupCommand := ConfirmPickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		pickupCommand.setPackageID(packageID),
		pickupCommand.setCourierID(courierID),
		pickupCommand.setCode(code),
	); err != nil {
		return ConfirmPickupCommand{}, err
	}

	return pickupCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrConfirmPickupCommandIsNotConstructed if validation fails.
func (c ConfirmPickupCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPickupCommandIsNotConstructed)
}

// PackageID returns the identifier of the package being picked up.
func (c ConfirmPickupCommand) PackageID() kernel.UUID {
	return c.packageID
}

// CourierID returns the identifier of the courier at the store.
func (c ConfirmPickupCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Code returns the pickup code presented by the courier.
func (c ConfirmPickupCommand) Code() string {
	return c.code
}

func (c *ConfirmPickupCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}

func (c *ConfirmPickupCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *ConfirmPickupCommand) setCode(code string) error {
	if code == "" {
		return ErrCodeIsRequired
	}

	c.code = code
	return nil
}
