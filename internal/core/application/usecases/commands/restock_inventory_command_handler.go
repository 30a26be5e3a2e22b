package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
)

// RestockInventoryCommandHandler is the increment path of the ledger. The
// record is created when the product has never been stocked at the location.
type RestockInventoryCommandHandler struct {
	uowFactory LedgerUoWFactory
}

func NewRestockInventoryCommandHandler(uowFactory LedgerUoWFactory) RestockInventoryCommandHandler {
	return RestockInventoryCommandHandler{uowFactory: uowFactory}
}

func (h *RestockInventoryCommandHandler) Handle(ctx context.Context, cmd RestockInventoryCommand) (inventory.StockLevel, error) {
	if err := cmd.Validate(); err != nil {
		return inventory.StockLevel{}, NewOrderError(KindValidation, err)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return inventory.StockLevel{}, Classify(err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	level, err := uow.InventoryLedger().Restock(ctx, cmd.ProductID(), cmd.LocationID(), cmd.Quantity())
	if err != nil {
		return inventory.StockLevel{}, Classify(err)
	}

	if err = uow.Commit(ctx); err != nil {
		return inventory.StockLevel{}, Classify(err)
	}

	return level, nil
}
