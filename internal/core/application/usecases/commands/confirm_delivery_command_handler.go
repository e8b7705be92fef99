package commands

import (
	"context"
	"time"
)

// ConfirmDeliveryCommandHandler handles the food-bank-side handoff gate.
// Completing a delivery is the terminal transition: once a package is
// "completed" no further lifecycle operation will touch it.
type ConfirmDeliveryCommandHandler struct {
	uowFactory PackageUoWFactory
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmation.
func NewConfirmDeliveryCommandHandler(uowFactory PackageUoWFactory) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery confirmation command.
// Loads the package, verifies the delivery code and applies the
// picked_up-to-completed transition, then persists guarded on the previously
// observed status so a duplicate confirmation cannot re-apply the transition.
func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
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
	if err = aggregate.ConfirmDelivery(cmd.Code(), time.Now().UTC()); err != nil {
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
