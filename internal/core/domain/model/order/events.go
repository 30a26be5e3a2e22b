package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// StatusChangedEvent is raised whenever an order reaches a new status.
type StatusChangedEvent struct {
	OrderID       kernel.UUID
	CustomerEmail string
	Status        Status
	OccurredAt    time.Time
}

// EventName is the routing key used by publishers.
func (StatusChangedEvent) EventName() string {
	return "order.status_changed"
}
