package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/ports"
)

// GetStockSnapshotQueryResponse is the ledger view of one product.
type GetStockSnapshotQueryResponse struct {
	ProductID string
	Levels    []inventory.StockLevel
	Total     int
}

// GetStockSnapshotQueryHandler exposes the same advisory snapshot the router
// plans from.
type GetStockSnapshotQueryHandler struct {
	ledger ports.InventoryLedger
}

func NewGetStockSnapshotQueryHandler(ledger ports.InventoryLedger) GetStockSnapshotQueryHandler {
	return GetStockSnapshotQueryHandler{ledger: ledger}
}

func (h GetStockSnapshotQueryHandler) Handle(
	ctx context.Context,
	query GetStockSnapshotQuery,
) (GetStockSnapshotQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStockSnapshotQueryResponse{}, err
	}

	levels, err := h.ledger.Snapshot(ctx, query.ProductID())
	if err != nil {
		return GetStockSnapshotQueryResponse{}, err
	}

	return GetStockSnapshotQueryResponse{
		ProductID: query.ProductID(),
		Levels:    levels,
		Total:     inventory.TotalAvailable(levels),
	}, nil
}
