package commands

import (
	"context"
	"time"
)

// ConfirmPickupCommandHandler handles the store-side handoff gate.
// Verification is performed by the aggregate: the presented code must match
// the package's pickup code and the caller must be the assigned courier.
// Both failures surface as the same errs.ErrCodeVerificationFailed so a
// caller cannot probe which part was wrong.
type ConfirmPickupCommandHandler struct {
	uowFactory PackageUoWFactory
}

// NewConfirmPickupCommandHandler creates a handler for pickup confirmation.
func NewConfirmPickupCommandHandler(uowFactory PackageUoWFactory) ConfirmPickupCommandHandler {
	return ConfirmPickupCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pickup confirmation command.
// Loads the package, runs the domain verification and transition to
// "picked_up", and persists guarded on the previously observed status.
// Pickup does not touch the pending pool, so no cache invalidation happens.
func (h ConfirmPickupCommandHandler) Handle(ctx context.Context, cmd ConfirmPickupCommand) error {
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
	if err = aggregate.ConfirmPickup(cmd.CourierID(), cmd.Code(), time.Now().UTC()); err != nil {
		return err
	}

	if err = packageRepo.UpdateInStatus(ctx, aggregate, expected); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
