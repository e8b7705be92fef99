// Package queries contains read-side operations of the CQRS architecture.
// Queries never mutate state; they serve listings for couriers and stores.
package queries

import (
	"errors"
	"time"

	"foodbridge/internal/core/domain/model/kernel"
	"foodbridge/internal/core/domain/services"
	"foodbridge/internal/pkg/errs"
	"foodbridge/internal/pkg/guard"
)

var ErrGetAvailablePackagesQueryIsNotConstructed = errors.New(
	"GetAvailablePackagesQuery must be created via NewGetAvailablePackagesQuery constructor",
)

// GetAvailablePackagesQuery retrieves the pending packages a courier can
// claim, filtered and ordered for that courier's position.
//
// Example:
//
//	pos, _ := kernel.NewGeoPoint(42.3601, -71.0589)
//	query, err := NewGetAvailablePackagesQuery(&pos, "bakery", "", nil, "distance")
//	if err != nil {
//	    return fmt.Errorf("invalid discovery request: %w", err)
//	}
//
//	handler := NewGetAvailablePackagesQueryHandler(repo, cache)
//	results, err := handler.Handle(ctx, query)
type GetAvailablePackagesQuery struct { //nolint:recvcheck //using for validation
	courierAt *kernel.GeoPoint
	filter    services.DiscoveryFilter
	sortMode  services.SortMode

	guard guard.ConstructorGuard
}

// NewGetAvailablePackagesQuery creates a discovery query.
// courierAt may be nil when the courier's position is unknown; every
// distance then ranks as unknown. An unrecognized sort value falls back to
// distance ordering. A negative maxDistanceMiles is rejected.
func NewGetAvailablePackagesQuery(
	courierAt *kernel.GeoPoint,
	text string,
	foodType string,
	maxDistanceMiles *float64,
	sort string,
) (GetAvailablePackagesQuery, error) {
	query := GetAvailablePackagesQuery{
		filter: services.DiscoveryFilter{
			Text:     text,
			FoodType: foodType,
		},
		sortMode: services.ParseSortMode(sort),
		guard:    guard.NewConstructorGuard(),
	}

	if courierAt != nil {
		if err := courierAt.Validate(); err != nil {
			return GetAvailablePackagesQuery{}, err
		}
		at := *courierAt
		query.courierAt = &at
	}

	if maxDistanceMiles != nil {
		if *maxDistanceMiles < 0 {
			return GetAvailablePackagesQuery{}, errs.NewValueIsInvalidError("maxDistanceMiles")
		}
		maxDistance := *maxDistanceMiles
		query.filter.MaxDistanceMiles = &maxDistance
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAvailablePackagesQueryIsNotConstructed if validation fails.
func (q GetAvailablePackagesQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailablePackagesQueryIsNotConstructed)
}

// CourierAt returns the courier's position, or nil when unknown.
func (q GetAvailablePackagesQuery) CourierAt() *kernel.GeoPoint {
	return q.courierAt
}

// Filter returns the discovery filter.
func (q GetAvailablePackagesQuery) Filter() services.DiscoveryFilter {
	return q.filter
}

// SortMode returns the requested ordering.
func (q GetAvailablePackagesQuery) SortMode() services.SortMode {
	return q.sortMode
}

// GetAvailablePackagesQueryResponse is one row of a courier-facing listing.
// Access codes are never part of discovery results.
type GetAvailablePackagesQueryResponse struct {
	ID           kernel.UUID
	StoreName    string
	StoreAddress string
	StoreLat     *float64
	StoreLng     *float64
	WeightLbs    float64
	FoodType     string
	Instructions string
	WindowStart  time.Time
	WindowEnd    time.Time

	// DistanceMiles is nil when the distance is unknown; it renders as
	// "unknown" rather than zero.
	DistanceMiles *float64
	RewardPoints  int
	Urgency       string
}
