package commands

import (
	"errors"

	"foodbridge/internal/core/domain/model/kernel"
	"foodbridge/internal/pkg/guard"
)

var (
	ErrCreatePackageCommandIsNotConstructed = errors.New(
		"CreatePackageCommand must be created via NewCreatePackageCommand constructor",
	)
	ErrStoreNameIsRequired = errors.New("store name is required")
	ErrFoodTypeIsRequired  = errors.New("food type is required")
	ErrWeightIsInvalid     = errors.New("weight must be greater than 0")
)

// CreatePackageCommand represents a request to publish a surplus-food package.
// Encapsulates the store's donation details including weight, food type and
// the pickup window during which the package must be collected.
//
// Example:
//
//	packageID := kernel.NewUUID()
//	cmd, err := NewCreatePackageCommand(packageID, storeID, "Corner Bakery",
//	    "12 Main St", &location, 5.2, "bakery", "ask for manager", window)
//	if err != nil {
//	    return fmt.Errorf("invalid package data: %w", err)
//	}
//
//	handler := NewCreatePackageCommandHandler(uowFactory, cache)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create package: %w", err)
//	}
type CreatePackageCommand struct { //nolint:recvcheck //using for validation
	packageID     kernel.UUID
	storeID       kernel.UUID
	storeName     string
	storeAddress  string
	storeLocation *kernel.GeoPoint
	weightLbs     float64
	foodType      string
	instructions  string
	window        kernel.TimeWindow

	guard guard.ConstructorGuard
}

// NewCreatePackageCommand creates a command to publish a new package.
// Validates that identifiers are valid, store name and food type are not
// empty, weight is positive and the pickup window is well-formed.
func NewCreatePackageCommand(
	packageID kernel.UUID,
	storeID kernel.UUID,
	storeName string,
	storeAddress string,
	storeLocation *kernel.GeoPoint,
	weightLbs float64,
	foodType string,
	instructions string,
	window kernel.TimeWindow,
) (CreatePackageCommand, error) {
	packageCommand := CreatePackageCommand{
		storeAddress: storeAddress,
		instructions: instructions,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		packageCommand.setPackageID(packageID),
		packageCommand.setStoreID(storeID),
		packageCommand.setStoreName(storeName),
		packageCommand.setStoreLocation(storeLocation),
		packageCommand.setWeightLbs(weightLbs),
		packageCommand.setFoodType(foodType),
		packageCommand.setWindow(window),
	); err != nil {
		return CreatePackageCommand{}, err
	}

	return packageCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreatePackageCommandIsNotConstructed if validation fails.
func (c CreatePackageCommand) Validate() error {
	return c.guard.Validate(ErrCreatePackageCommandIsNotConstructed)
}

// PackageID returns the unique identifier for the package.
func (c CreatePackageCommand) PackageID() kernel.UUID {
	return c.packageID
}

// StoreID returns the identifier of the donating store.
func (c CreatePackageCommand) StoreID() kernel.UUID {
	return c.storeID
}

// StoreName returns the display name of the donating store.
func (c CreatePackageCommand) StoreName() string {
	return c.storeName
}

// StoreAddress returns the human-readable pickup address.
func (c CreatePackageCommand) StoreAddress() string {
	return c.storeAddress
}

// StoreLocation returns the pickup coordinates, or nil when unknown.
func (c CreatePackageCommand) StoreLocation() *kernel.GeoPoint {
	return c.storeLocation
}

// WeightLbs returns the package weight in pounds.
func (c CreatePackageCommand) WeightLbs() float64 {
	return c.weightLbs
}

// FoodType returns the food category of the package.
func (c CreatePackageCommand) FoodType() string {
	return c.foodType
}

// Instructions returns optional pickup instructions for the courier.
func (c CreatePackageCommand) Instructions() string {
	return c.instructions
}

// Window returns the pickup time window.
func (c CreatePackageCommand) Window() kernel.TimeWindow {
	return c.window
}

func (c *CreatePackageCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}

func (c *CreatePackageCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}

	c.storeID = storeID
	return nil
}

func (c *CreatePackageCommand) setStoreName(storeName string) error {
	if storeName == "" {
		return ErrStoreNameIsRequired
	}

	c.storeName = storeName
	return nil
}

func (c *CreatePackageCommand) setStoreLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}

	if err := location.Validate(); err != nil {
		return err
	}

	loc := *location
	c.storeLocation = &loc
	return nil
}

func (c *CreatePackageCommand) setWeightLbs(weightLbs float64) error {
	if weightLbs <= 0 {
		return ErrWeightIsInvalid
	}

	c.weightLbs = weightLbs
	return nil
}

func (c *CreatePackageCommand) setFoodType(foodType string) error {
	if foodType == "" {
		return ErrFoodTypeIsRequired
	}

	c.foodType = foodType
	return nil
}

func (c *CreatePackageCommand) setWindow(window kernel.TimeWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}

	c.window = window
	return nil
}
