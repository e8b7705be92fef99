package commands

import (
	"errors"

	"foodbridge/internal/core/domain/model/kernel"
	"foodbridge/internal/pkg/guard"
)

var ErrAssignPackageCommandIsNotConstructed = errors.New(
	"AssignPackageCommand must be created via NewAssignPackageCommand constructor",
)

// AssignPackageCommand represents a courier's request to claim a pending
// package for exclusive pickup.
type AssignPackageCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignPackageCommand creates a command to claim a package for a courier.
// Validates that both identifiers are valid.
func NewAssignPackageCommand(packageID kernel.UUID, courierID kernel.UUID) (AssignPackageCommand, error) {
	assignCommand := AssignPackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assignCommand.setPackageID(packageID),
		assignCommand.setCourierID(courierID),
	); err != nil {
		return AssignPackageCommand{}, err
	}

	return assignCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignPackageCommandIsNotConstructed if validation fails.
func (c AssignPackageCommand) Validate() error {
	return c.guard.Validate(ErrAssignPackageCommandIsNotConstructed)
}

// PackageID returns the identifier of the package being claimed.
func (c AssignPackageCommand) PackageID() kernel.UUID {
	return c.packageID
}

// CourierID returns the identifier of the claiming courier.
func (c AssignPackageCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *AssignPackageCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}

func (c *AssignPackageCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
