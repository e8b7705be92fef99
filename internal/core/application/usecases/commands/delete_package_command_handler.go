package commands

import (
	"context"

	"foodbridge/internal/core/ports"
)

// DeletePackageCommandHandler handles withdrawal of unclaimed packages.
// The delete is guarded the same way claims are: it only removes the row
// while it is still "pending", so a courier who claims the package
// concurrently wins and the withdrawal reports a status conflict.
type DeletePackageCommandHandler struct {
	uowFactory PackageUoWFactory
	cache      ports.DiscoveryCache
}

// NewDeletePackageCommandHandler creates a handler for package withdrawal.
func NewDeletePackageCommandHandler(
	uowFactory PackageUoWFactory,
	cache ports.DiscoveryCache,
) DeletePackageCommandHandler {
	return DeletePackageCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle processes the withdrawal command.
// Loads the package, checks in the domain that its status still allows
// deletion, and removes it guarded on that status. The withdrawal is
// acknowledged only after the discovery cache invalidation succeeds, so no
// listing keeps offering the removed package.
func (h DeletePackageCommandHandler) Handle(ctx context.Context, cmd DeletePackageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	packageRepo := uow.PackageRepository()
	aggregate, err := packageRepo.Get(ctx, cmd.PackageID())
	if err != nil {
		return err
	}

	if err = aggregate.ValidateDelete(); err != nil {
		return err
	}

	if err = packageRepo.DeleteInStatus(ctx, aggregate.ID(), aggregate.Status()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.cache.Invalidate(ctx)
}
