package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// GetOrderDetailsQueryHandler is a pure read through the Order Store. A
// missing order surfaces as *errs.ObjectNotFoundError.
//
// Example:
//
//	q, _ := queries.NewGetOrderDetailsQuery(orderID)
//	o, err := handler.Handle(ctx, q)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return echo.ErrNotFound
//	}
type GetOrderDetailsQueryHandler struct {
	repo ports.OrderRepository
}

func NewGetOrderDetailsQueryHandler(repo ports.OrderRepository) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{repo: repo}
}

func (h GetOrderDetailsQueryHandler) Handle(ctx context.Context, query GetOrderDetailsQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.repo.Get(ctx, query.OrderID())
}
