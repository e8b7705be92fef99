package foodpackage

import (
	"errors"
	"fmt"
	"math"
	"time"

	"foodbridge/internal/core/domain/model/kernel"
	"foodbridge/internal/pkg/errs"
)

// ErrPackageIsNotConstructed is returned when a Package instance was not
// created through NewPackage or RestorePackage. This ensures all packages
// are properly validated.
var ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage or RestorePackage")

// RewardBasePoints and RewardPointsPerPound define the derived reward-point
// policy: floor(weightLbs * RewardPointsPerPound) + RewardBasePoints.
// The exact shape is a policy constant, not a contract; only monotonicity
// in weight matters to callers.
const (
	RewardBasePoints     = 50
	RewardPointsPerPound = 5
)

// Package is the aggregate root for one unit of surplus food.
//
// Invariants maintained by this type:
//   - weight is positive, foodType and storeName are non-empty
//   - the pickup window satisfies start < end
//   - status follows Pending -> Assigned -> PickedUp -> Completed, only
//     forward, with Completed terminal
//   - courierID is nil exactly while Pending and immutable once set
//   - assignedAt/pickedUpAt/completedAt are set exactly once, at their
//     transition
//   - pickupCode and deliveryCode are independent secrets generated at
//     creation; after completion they remain stored for audit but gate
//     nothing
//
// Private fields plus the construction flag keep the aggregate from being
// instantiated or mutated outside its validated methods.
type Package struct {
	id kernel.UUID

	storeID      kernel.UUID
	storeName    string
	storeAddress string

	// storeLocation is nil when the store has no recorded coordinates;
	// discovery then reports "distance unknown".
	storeLocation *kernel.GeoPoint

	weightLbs    float64
	foodType     string
	instructions string
	window       kernel.TimeWindow

	pickupCode   kernel.AccessCode
	deliveryCode kernel.AccessCode

	status    Status
	courierID *kernel.UUID

	createdAt   time.Time
	assignedAt  *time.Time
	pickedUpAt  *time.Time
	completedAt *time.Time

	isConstructed bool
}

// NewPackage creates a Pending package for a store donation. Two independent
// random access codes are generated: the pickup code gating the store
// handoff and the delivery code gating the food-bank handoff.
//
// Returns a validation error when weight is not positive, foodType or
// storeName is empty, the window is inverted, or any identifier is invalid.
func NewPackage(
	id kernel.UUID,
	storeID kernel.UUID,
	storeName string,
	storeAddress string,
	storeLocation *kernel.GeoPoint,
	weightLbs float64,
	foodType string,
	instructions string,
	window kernel.TimeWindow,
	createdAt time.Time,
) (*Package, error) {
	p := &Package{
		status:        Pending,
		storeAddress:  storeAddress,
		instructions:  instructions,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setStoreID(storeID),
		p.setStoreName(storeName),
		p.setStoreLocation(storeLocation),
		p.setWeightLbs(weightLbs),
		p.setFoodType(foodType),
		p.setWindow(window),
	); err != nil {
		return nil, err
	}

	pickupCode, err := kernel.NewRandomAccessCode()
	if err != nil {
		return nil, err
	}
	deliveryCode, err := kernel.NewRandomAccessCode()
	if err != nil {
		return nil, err
	}
	p.pickupCode = pickupCode
	p.deliveryCode = deliveryCode

	return p, nil
}

// RestorePackage reconstructs an aggregate from persistence. It revalidates
// every invariant, including the status/courier consistency rule, so a
// corrupted row cannot produce a package that violates the state machine.
func RestorePackage(
	id kernel.UUID,
	storeID kernel.UUID,
	storeName string,
	storeAddress string,
	storeLocation *kernel.GeoPoint,
	weightLbs float64,
	foodType string,
	instructions string,
	window kernel.TimeWindow,
	pickupCode kernel.AccessCode,
	deliveryCode kernel.AccessCode,
	status Status,
	courierID *kernel.UUID,
	createdAt time.Time,
	assignedAt, pickedUpAt, completedAt *time.Time,
) (*Package, error) {
	p := &Package{
		status:        status,
		storeAddress:  storeAddress,
		instructions:  instructions,
		createdAt:     createdAt,
		assignedAt:    assignedAt,
		pickedUpAt:    pickedUpAt,
		completedAt:   completedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setStoreID(storeID),
		p.setStoreName(storeName),
		p.setStoreLocation(storeLocation),
		p.setWeightLbs(weightLbs),
		p.setFoodType(foodType),
		p.setWindow(window),
		pickupCode.Validate(),
		deliveryCode.Validate(),
		status.Validate(),
		status.ValidateCanHaveCourier(courierID != nil),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		cID := *courierID
		p.courierID = &cID
	}

	p.pickupCode = pickupCode
	p.deliveryCode = deliveryCode

	return p, nil
}

// Validate ensures the Package was constructed through NewPackage or
// RestorePackage. Called by repositories before persisting.
func (p *Package) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPackageIsNotConstructed
	}

	return nil
}

// IsEqual compares two packages by identifier.
func (p *Package) IsEqual(other *Package) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the package's unique identifier.
func (p *Package) ID() kernel.UUID {
	return p.id
}

// StoreID returns the identifier of the donating store.
func (p *Package) StoreID() kernel.UUID {
	return p.storeID
}

// StoreName returns the display name of the donating store.
func (p *Package) StoreName() string {
	return p.storeName
}

// StoreAddress returns the store's street address, possibly empty.
func (p *Package) StoreAddress() string {
	return p.storeAddress
}

// StoreLocation returns the store coordinates, or nil when unknown.
func (p *Package) StoreLocation() *kernel.GeoPoint {
	return p.storeLocation
}

// WeightLbs returns the package weight in pounds.
func (p *Package) WeightLbs() float64 {
	return p.weightLbs
}

// FoodType returns the free-form food category.
func (p *Package) FoodType() string {
	return p.foodType
}

// Instructions returns the optional special handling instructions.
func (p *Package) Instructions() string {
	return p.instructions
}

// Window returns the pickup time window.
func (p *Package) Window() kernel.TimeWindow {
	return p.window
}

// PickupCode returns the access code gating the store handoff. Exposed for
// persistence and for the one-time create response to the owning store.
func (p *Package) PickupCode() kernel.AccessCode {
	return p.pickupCode
}

// DeliveryCode returns the access code gating the food-bank handoff.
func (p *Package) DeliveryCode() kernel.AccessCode {
	return p.deliveryCode
}

// Status returns the current lifecycle status.
func (p *Package) Status() Status {
	return p.status
}

// Courier returns the assigned courier's ID, or nil while Pending.
func (p *Package) Courier() *kernel.UUID {
	return p.courierID
}

// CreatedAt returns the creation timestamp.
func (p *Package) CreatedAt() time.Time {
	return p.createdAt
}

// AssignedAt returns the assignment timestamp, or nil before assignment.
func (p *Package) AssignedAt() *time.Time {
	return p.assignedAt
}

// PickedUpAt returns the pickup confirmation timestamp, or nil before it.
func (p *Package) PickedUpAt() *time.Time {
	return p.pickedUpAt
}

// CompletedAt returns the delivery confirmation timestamp, or nil before it.
func (p *Package) CompletedAt() *time.Time {
	return p.completedAt
}

// RewardPoints returns the derived reward value for delivering this package:
// floor(weightLbs * 5) + 50. Read-only; nothing in the lifecycle depends
// on it.
func (p *Package) RewardPoints() int {
	return int(math.Floor(p.weightLbs*RewardPointsPerPound)) + RewardBasePoints
}

// Assign claims the package for a courier, transitioning Pending ->
// Assigned and stamping assignedAt. Exactly one concurrent caller wins;
// the rest receive a StatusConflictError (the storage layer enforces the
// same guard atomically).
func (p *Package) Assign(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := p.status.Assign()
	if err != nil {
		return err
	}

	p.status = newStatus
	p.courierID = &courierID
	p.assignedAt = &now
	return nil
}

// ConfirmPickup verifies the store handoff, transitioning Assigned ->
// PickedUp and stamping pickedUpAt.
//
// A wrong status yields a StatusConflictError. A wrong courier identity or
// a wrong code both yield the same CodeVerificationError, so a caller
// probing the gate cannot learn which part of the binding failed.
func (p *Package) ConfirmPickup(courierID kernel.UUID, code string, now time.Time) error {
	newStatus, err := p.status.MarkPickedUp()
	if err != nil {
		return err
	}

	if p.courierID == nil || !p.courierID.IsEqual(courierID) {
		return errs.NewCodeVerificationErrorWithCause(
			fmt.Errorf("courier %s is not assigned to package %s", courierID, p.id))
	}
	if !p.pickupCode.Matches(code) {
		return errs.NewCodeVerificationErrorWithCause(
			fmt.Errorf("pickup code mismatch for package %s", p.id))
	}

	p.status = newStatus
	p.pickedUpAt = &now
	return nil
}

// ConfirmDelivery verifies the food-bank handoff, transitioning PickedUp ->
// Completed and stamping completedAt. Gated only on the delivery code; the
// receiving food bank is not bound to the package in advance.
func (p *Package) ConfirmDelivery(code string, now time.Time) error {
	newStatus, err := p.status.Complete()
	if err != nil {
		return err
	}

	if !p.deliveryCode.Matches(code) {
		return errs.NewCodeVerificationErrorWithCause(
			fmt.Errorf("delivery code mismatch for package %s", p.id))
	}

	p.status = newStatus
	p.completedAt = &now
	return nil
}

// ValidateDelete checks the Pending-only deletion rule without side effects.
func (p *Package) ValidateDelete() error {
	return p.status.ValidateDelete()
}

func (p *Package) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Package) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	p.storeID = storeID
	return nil
}

func (p *Package) setStoreName(storeName string) error {
	if storeName == "" {
		return errs.NewValueIsRequiredError("storeName")
	}
	p.storeName = storeName
	return nil
}

func (p *Package) setStoreLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	loc := *location
	p.storeLocation = &loc
	return nil
}

func (p *Package) setWeightLbs(weightLbs float64) error {
	if weightLbs <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weightLbs",
			fmt.Errorf("%g is not greater than 0", weightLbs))
	}
	p.weightLbs = weightLbs
	return nil
}

func (p *Package) setFoodType(foodType string) error {
	if foodType == "" {
		return errs.NewValueIsRequiredError("foodType")
	}
	p.foodType = foodType
	return nil
}

func (p *Package) setWindow(window kernel.TimeWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}
	p.window = window
	return nil
}
