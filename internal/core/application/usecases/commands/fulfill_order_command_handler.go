package commands

import (
	"context"
)

// FulfillOrderCommandHandler marks a confirmed order fulfilled. The reserved
// stock has physically left the building, so nothing is released.
type FulfillOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewFulfillOrderCommandHandler(uowFactory OrderUoWFactory) FulfillOrderCommandHandler {
	return FulfillOrderCommandHandler{uowFactory: uowFactory}
}

func (h *FulfillOrderCommandHandler) Handle(ctx context.Context, cmd FulfillOrderCommand) error {
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

	if err = o.Fulfill(); err != nil {
		return Classify(err)
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return Classify(err)
	}

	if err = uow.Commit(ctx); err != nil {
		return Classify(err)
	}

	return nil
}
