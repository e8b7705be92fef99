package queries

import (
	"errors"
	"time"

	"foodbridge/internal/core/domain/model/kernel"
	"foodbridge/internal/pkg/guard"
)

var ErrGetStorePackagesQueryIsNotConstructed = errors.New(
	"GetStorePackagesQuery must be created via NewGetStorePackagesQuery constructor",
)

// GetStorePackagesQuery retrieves every package a store has published,
// regardless of status of the package.
//
// Example:
//
//	query, err := NewGetStorePackagesQuery(storeID)
//	handler := NewGetStorePackagesQueryHandler(db)
//	packages, err := handler.Handle(ctx, query)
type GetStorePackagesQuery struct { //nolint:recvcheck //using for validation
	storeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStorePackagesQuery creates a query for a store's own packages.
func NewGetStorePackagesQuery(storeID kernel.UUID) (GetStorePackagesQuery, error) {
	query := GetStorePackagesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := storeID.Validate(); err != nil {
		return GetStorePackagesQuery{}, err
	}
	query.storeID = storeID

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStorePackagesQueryIsNotConstructed if validation fails.
func (q GetStorePackagesQuery) Validate() error {
	return q.guard.Validate(ErrGetStorePackagesQueryIsNotConstructed)
}

// StoreID returns the identifier of the store whose packages are listed.
func (q GetStorePackagesQuery) StoreID() kernel.UUID {
	return q.storeID
}

// GetStorePackagesQueryResponse is one row of the store-facing listing.
// Access codes are handed out exactly once, in the create response; the
// listing never repeats them.
type GetStorePackagesQueryResponse struct {
	ID           kernel.UUID
	StoreName    string
	StoreAddress string
	WeightLbs    float64
	FoodType     string
	Instructions string
	WindowStart  time.Time
	WindowEnd    time.Time
	Status       string
	CourierID    *kernel.UUID
	RewardPoints int
	CreatedAt    time.Time
	AssignedAt   *time.Time
	PickedUpAt   *time.Time
	CompletedAt  *time.Time
}
