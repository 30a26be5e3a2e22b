package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Summary is the row shape of the customer order history.
type Summary struct {
	OrderID           kernel.UUID
	Status            Status
	Total             decimal.Decimal
	ShipmentCount     int
	EstimatedDelivery time.Time
	CreatedAt         time.Time
}
