package packagerepo

import (
	"context"
	"errors"

	"foodbridge/internal/core/domain/model/foodpackage"
	"foodbridge/internal/core/domain/model/kernel"
	"foodbridge/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPackageRepository implements PackageRepository using GORM.
//
// Status-changing writes are single guarded statements: the WHERE clause
// carries the status the caller observed, and zero affected rows means a
// concurrent transition won. No advisory locks or SELECT FOR UPDATE needed.
type GormPackageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NoopTracker satisfies the tracker requirement for repositories used
// outside a unit of work, e.g. on read-only query paths.
type NoopTracker struct{}

func (NoopTracker) TrackAggregate(kernel.UUID, any) {}

// NewGormPackageRepository creates a new GORM package repository.
func NewGormPackageRepository(db *gorm.DB, tracker aggregateTracker) *GormPackageRepository {
	return &GormPackageRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new package to the database.
func (r *GormPackageRepository) Add(ctx context.Context, aggregate *foodpackage.Package) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a package by ID.
func (r *GormPackageRepository) Get(ctx context.Context, id kernel.UUID) (*foodpackage.Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PackageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInStatus retrieves all packages in the given status, ordered by ID.
func (r *GormPackageRepository) GetAllInStatus(
	ctx context.Context,
	status foodpackage.Status,
) ([]*foodpackage.Package, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []PackageDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos, "status = ?", int(status)).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllByStore retrieves all packages published by a store, newest first.
func (r *GormPackageRepository) GetAllByStore(
	ctx context.Context,
	storeID kernel.UUID,
) ([]*foodpackage.Package, error) {
	if err := storeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PackageDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id").
		Find(&dtos, "store_id = ?", storeID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// UpdateInStatus saves a mutated package guarded on the status the row held
// before the transition. When the guard misses, the error distinguishes a
// vanished row from a lost race by re-reading the current status.
func (r *GormPackageRepository) UpdateInStatus(
	ctx context.Context,
	aggregate *foodpackage.Package,
	expected foodpackage.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expected.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.conflictOrNotFound(ctx, "update", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// DeleteInStatus removes a package guarded on the expected status.
func (r *GormPackageRepository) DeleteInStatus(
	ctx context.Context,
	id kernel.UUID,
	expected foodpackage.Status,
) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := expected.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id.Bytes(), int(expected)).
		Delete(&PackageDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.conflictOrNotFound(ctx, "delete", id)
	}

	return nil
}

// conflictOrNotFound classifies a zero-row guarded write: a still-present row
// means the status moved underneath the caller, an absent row means the
// package is gone.
func (r *GormPackageRepository) conflictOrNotFound(
	ctx context.Context,
	operation string,
	id kernel.UUID,
) error {
	var current PackageDTO
	err := r.db.WithContext(ctx).Select("status").First(&current, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("package", id.String())
	}
	if err != nil {
		return err
	}

	return errs.NewStatusConflictError(operation, foodpackage.Status(current.Status).String())
}

func toDomainSlice(dtos []PackageDTO) ([]*foodpackage.Package, error) {
	packages := make([]*foodpackage.Package, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}

	return packages, nil
}
