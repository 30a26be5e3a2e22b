package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository is the Order Store.
type OrderRepository interface {
	// Add persists a new order with its line items and fulfillment plan in
	// one write.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a status change of an existing order. Line items and
	// the plan are immutable and are not rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads the full aggregate. A missing order yields an
	// *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get holding a row lock for the rest of the unit of
	// work. Status transitions load through it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListByCustomerEmail returns at most limit summaries, most recent first.
	ListByCustomerEmail(ctx context.Context, email string, limit int) ([]order.Summary, error)
}
