// Package ports defines the contracts between the routing core and its
// infrastructure: the inventory ledger, the order store, the unit of work
// that binds them to one transaction, and the order event publisher.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
)

// InventoryLedger is the authoritative per-location stock table.
type InventoryLedger interface {
	// Snapshot returns the stock levels of productID ordered by location id.
	// It is an unlocked, advisory read; an unknown product yields an empty slice.
	Snapshot(ctx context.Context, productID string) ([]inventory.StockLevel, error)

	// Reserve decrements every item or none of them. A row that would go
	// negative aborts the whole call with an *inventory.InsufficientStockError.
	Reserve(ctx context.Context, items []inventory.ReservationItem) error

	// Release increments every item. It is the compensating action for a
	// successful Reserve and must be paired with it exactly once by the caller.
	Release(ctx context.Context, items []inventory.ReservationItem) error

	// Restock adds quantity to a record, creating it when missing, and
	// returns the resulting level.
	Restock(ctx context.Context, productID, locationID string, quantity int) (inventory.StockLevel, error)
}
