package commands

import (
	"context"
	"time"

	"foodbridge/internal/core/domain/model/foodpackage"
	"foodbridge/internal/core/ports"
)

// CreatePackageCommandHandler handles the business logic for package creation.
// Creates new packages in "pending" status with freshly generated pickup and
// delivery codes, then drops the discovery cache so the package shows up in
// courier listings right away.
//
// Example:
//
//	handler := NewCreatePackageCommandHandler(uowFactory, cache)
//	cmd, _ := NewCreatePackageCommand(...)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("package creation failed: %w", err)
//	}
//	// Package is now pending and visible to couriers
type CreatePackageCommandHandler struct {
	uowFactory PackageUoWFactory
	cache      ports.DiscoveryCache
}

// NewCreatePackageCommandHandler creates a handler for package creation operations.
// Requires a PackageUoWFactory for transactional persistence and a
// DiscoveryCache to invalidate after commit.
func NewCreatePackageCommandHandler(
	uowFactory PackageUoWFactory,
	cache ports.DiscoveryCache,
) CreatePackageCommandHandler {
	return CreatePackageCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle processes the package creation command.
// Builds the aggregate (generating both access codes) and persists it in
// "pending" status. Uses a transaction so the package is fully persisted or
// rolled back on error. The discovery cache is invalidated only after a
// successful commit.
//
// The created aggregate is returned because the caller must hand both access
// codes to the store exactly once; no later operation exposes them again.
func (h CreatePackageCommandHandler) Handle(
	ctx context.Context,
	cmd CreatePackageCommand,
) (*foodpackage.Package, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	packageRepo := uow.PackageRepository()
	aggregate, err := foodpackage.NewPackage(
		cmd.PackageID(),
		cmd.StoreID(),
		cmd.StoreName(),
		cmd.StoreAddress(),
		cmd.StoreLocation(),
		cmd.WeightLbs(),
		cmd.FoodType(),
		cmd.Instructions(),
		cmd.Window(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = packageRepo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// Best-effort on purpose: a stale cache only delays the new package's
	// first appearance, and failing here would lose the just-issued codes.
	_ = h.cache.Invalidate(ctx)

	return aggregate, nil
}
