// Package packagerepo provides data transfer objects and mapping functions for package persistence.
// This package implements the repository pattern for the package domain aggregate, handling
// the conversion between domain entities and database representations.
package packagerepo

import (
	"time"

	"foodbridge/internal/core/domain/model/foodpackage"
	"foodbridge/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// PackageDTO represents the database structure for persisting package aggregates.
// Maps package domain entities to relational database tables with indexing for
// the two hot lookups: pending-pool listings by status and store listings.
type PackageDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	StoreID      uuid.UUID `gorm:"type:uuid;index"`
	StoreName    string
	StoreAddress string
	StoreLat     *float64
	StoreLng     *float64
	WeightLbs    float64
	FoodType     string
	Instructions string
	WindowStart  time.Time
	WindowEnd    time.Time
	PickupCode   string
	DeliveryCode string
	Status       int        `gorm:"index"`
	CourierID    *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	AssignedAt   *time.Time
	PickedUpAt   *time.Time
	CompletedAt  *time.Time
}

// TableName specifies the database table name for package entities.
// Overrides GORM's default naming convention to use "packages".
func (PackageDTO) TableName() string {
	return "packages"
}

// fromDomain converts a package domain aggregate to its database representation.
// Maps all attributes including the optional store location and courier assignment.
func fromDomain(aggregate *foodpackage.Package) PackageDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	var storeLat, storeLng *float64
	if loc := aggregate.StoreLocation(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		storeLat, storeLng = &lat, &lng
	}

	return PackageDTO{
		ID:           aggregate.ID().Bytes(),
		StoreID:      aggregate.StoreID().Bytes(),
		StoreName:    aggregate.StoreName(),
		StoreAddress: aggregate.StoreAddress(),
		StoreLat:     storeLat,
		StoreLng:     storeLng,
		WeightLbs:    aggregate.WeightLbs(),
		FoodType:     aggregate.FoodType(),
		Instructions: aggregate.Instructions(),
		WindowStart:  aggregate.Window().Start(),
		WindowEnd:    aggregate.Window().End(),
		PickupCode:   aggregate.PickupCode().Value(),
		DeliveryCode: aggregate.DeliveryCode().Value(),
		Status:       int(aggregate.Status()),
		CourierID:    courierID,
		CreatedAt:    aggregate.CreatedAt(),
		AssignedAt:   aggregate.AssignedAt(),
		PickedUpAt:   aggregate.PickedUpAt(),
		CompletedAt:  aggregate.CompletedAt(),
	}
}

// toDomain converts a database DTO to a package domain aggregate.
// Reconstructs the complete aggregate through RestorePackage, which revalidates
// every invariant so a corrupted row is rejected instead of resurrected.
func toDomain(dto PackageDTO) (*foodpackage.Package, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	var storeLocation *kernel.GeoPoint
	if dto.StoreLat != nil && dto.StoreLng != nil {
		loc, locErr := kernel.NewGeoPoint(*dto.StoreLat, *dto.StoreLng)
		if locErr != nil {
			return nil, locErr
		}

		storeLocation = &loc
	}

	window, err := kernel.NewTimeWindow(dto.WindowStart, dto.WindowEnd)
	if err != nil {
		return nil, err
	}

	pickupCode, err := kernel.AccessCodeFromString(dto.PickupCode)
	if err != nil {
		return nil, err
	}

	deliveryCode, err := kernel.AccessCodeFromString(dto.DeliveryCode)
	if err != nil {
		return nil, err
	}

	return foodpackage.RestorePackage(
		id,
		storeID,
		dto.StoreName,
		dto.StoreAddress,
		storeLocation,
		dto.WeightLbs,
		dto.FoodType,
		dto.Instructions,
		window,
		pickupCode,
		deliveryCode,
		foodpackage.Status(dto.Status),
		courierID,
		dto.CreatedAt,
		dto.AssignedAt,
		dto.PickedUpAt,
		dto.CompletedAt,
	)
}
