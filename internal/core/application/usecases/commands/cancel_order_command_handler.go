package commands

import (
	"context"
	"log/slog"
)

// CancelOrderCommandHandler moves a confirmed order to cancelled and releases
// every allocation of its plan. The status update and the release commit in
// the same transaction, so a cancelled order never keeps stock and stock is
// never returned for an order that stays confirmed.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory, logger *slog.Logger) CancelOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "cancel_order"),
	}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return NewOrderError(KindValidation, err)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Classify(err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return Classify(err)
	}

	if err = o.Cancel(); err != nil {
		return Classify(err)
	}

	items := o.Plan().ReservationItems()
	if err = uow.InventoryLedger().Release(ctx, items); err != nil {
		return Classify(err)
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return Classify(err)
	}

	if err = uow.Commit(ctx); err != nil {
		return Classify(err)
	}

	h.logger.InfoContext(ctx, "order cancelled", "order_id", o.ID().String(), "released_items", len(items))
	return nil
}
