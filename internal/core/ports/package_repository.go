package ports

import (
	"context"

	"foodbridge/internal/core/domain/model/foodpackage"
	"foodbridge/internal/core/domain/model/kernel"
)

// PackageRepository defines the persistence contract for package aggregates.
//
// Status-changing writes are compare-and-swap operations: the row is written
// only where the stored status still equals the status the caller observed.
// The atomicity lives in the storage layer (a single guarded statement), not
// in process-local locks, because the store may be shared across processes.
type PackageRepository interface {
	// Add persists a new package aggregate. The package must be valid and
	// not already exist.
	Add(ctx context.Context, aggregate *foodpackage.Package) error

	// Get retrieves a package by its identifier. Returns an
	// ObjectNotFoundError wrapped around errs.ErrObjectNotFound when the
	// package does not exist.
	Get(ctx context.Context, id kernel.UUID) (*foodpackage.Package, error)

	// GetAllInStatus retrieves every package currently in the given status,
	// ordered by ID for deterministic listings.
	GetAllInStatus(ctx context.Context, status foodpackage.Status) ([]*foodpackage.Package, error)

	// GetAllByStore retrieves every package created by the given store,
	// newest first.
	GetAllByStore(ctx context.Context, storeID kernel.UUID) ([]*foodpackage.Package, error)

	// UpdateInStatus persists a mutated aggregate, guarded on the status the
	// row held before the in-memory transition (compare-and-swap). When the
	// guard fails because a concurrent transition won, it returns
	// errs.ErrStatusConflict; when the row is gone, errs.ErrObjectNotFound.
	UpdateInStatus(ctx context.Context, aggregate *foodpackage.Package, expected foodpackage.Status) error

	// DeleteInStatus removes the package only while it is still in the
	// expected status. Same error contract as UpdateInStatus.
	DeleteInStatus(ctx context.Context, id kernel.UUID, expected foodpackage.Status) error
}
