package commands

import (
	"errors"

	"foodbridge/internal/core/domain/model/kernel"
	"foodbridge/internal/pkg/guard"
)

var ErrDeletePackageCommandIsNotConstructed = errors.New(
	"DeletePackageCommand must be created via NewDeletePackageCommand constructor",
)

// DeletePackageCommand represents a store's request to withdraw a package
// it published. Only unclaimed (pending) packages may be withdrawn.
type DeletePackageCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeletePackageCommand creates a command to withdraw a package.
func NewDeletePackageCommand(packageID kernel.UUID) (DeletePackageCommand, error) {
	deleteCommand := DeletePackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := deleteCommand.setPackageID(packageID); err != nil {
		return DeletePackageCommand{}, err
	}

	return deleteCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDeletePackageCommandIsNotConstructed if validation fails.
func (c DeletePackageCommand) Validate() error {
	return c.guard.Validate(ErrDeletePackageCommandIsNotConstructed)
}

// PackageID returns the identifier of the package being withdrawn.
func (c DeletePackageCommand) PackageID() kernel.UUID {
	return c.packageID
}

func (c *DeletePackageCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}
