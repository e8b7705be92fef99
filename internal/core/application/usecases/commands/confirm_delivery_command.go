package commands

import (
	"errors"

	"foodbridge/internal/core/domain/model/kernel"
	"foodbridge/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand represents the confirmation of the final handoff at
// the receiving food bank, gated by the package's delivery code.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	code      string

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a command to confirm a delivery.
// Validates that the package identifier is valid and a code was presented.
func NewConfirmDeliveryCommand(packageID kernel.UUID, code string) (ConfirmDeliveryCommand, error) {
	deliveryCommand := ConfirmDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		deliveryCommand.setPackageID(packageID),
		deliveryCommand.setCode(code),
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return deliveryCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrConfirmDeliveryCommandIsNotConstructed if validation fails.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// PackageID returns the identifier of the package being delivered.
func (c ConfirmDeliveryCommand) PackageID() kernel.UUID {
	return c.packageID
}

// Code returns the delivery code presented at the food bank.
func (c ConfirmDeliveryCommand) Code() string {
	return c.code
}

func (c *ConfirmDeliveryCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}

func (c *ConfirmDeliveryCommand) setCode(code string) error {
	if code == "" {
		return ErrCodeIsRequired
	}

	c.code = code
	return nil
}
