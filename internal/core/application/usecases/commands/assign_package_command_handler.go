package commands

import (
	"context"
	"time"

	"foodbridge/internal/core/ports"
)

// AssignPackageCommandHandler orchestrates exclusive package claiming.
// The claim is first-come-first-served: the status transition is persisted
// with a compare-and-swap guarded on the "pending" status the handler read,
// so when two couriers race for the same package exactly one claim commits
// and the other receives a status conflict.
//
// Example:
//
//	handler := NewAssignPackageCommandHandler(uowFactory, cache)
//	cmd, _ := NewAssignPackageCommand(packageID, courierID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    log.Println("Package does not exist")
//	case errors.Is(err, errs.ErrStatusConflict):
//	    log.Println("Package was already claimed")
//	case err != nil:
//	    log.Printf("Claim failed: %v", err)
//	}
type AssignPackageCommandHandler struct {
	uowFactory PackageUoWFactory
	cache      ports.DiscoveryCache
}

// NewAssignPackageCommandHandler creates a handler for package claim operations.
func NewAssignPackageCommandHandler(
	uowFactory PackageUoWFactory,
	cache ports.DiscoveryCache,
) AssignPackageCommandHandler {
	return AssignPackageCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle processes the claim command.
// Loads the package, applies the pending-to-assigned transition in the
// domain, and persists it guarded on the status observed before the
// transition. A concurrent winning claim surfaces as errs.ErrStatusConflict
// from the repository. The claim is acknowledged only after the discovery
// cache invalidation succeeds: once the caller sees success, no listing may
// still offer the package. A failed invalidation fails the request; the
// persisted transition stands and a retry reports the status conflict.
func (h AssignPackageCommandHandler) Handle(ctx context.Context, cmd AssignPackageCommand) error {
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

	expected := aggregate.Status()
	if err = aggregate.Assign(cmd.CourierID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = packageRepo.UpdateInStatus(ctx, aggregate, expected); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.cache.Invalidate(ctx)
}
