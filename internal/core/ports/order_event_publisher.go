package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// OrderEventPublisher delivers order status changes to downstream consumers.
type OrderEventPublisher interface {
	Publish(ctx context.Context, events ...order.StatusChangedEvent) error
}
