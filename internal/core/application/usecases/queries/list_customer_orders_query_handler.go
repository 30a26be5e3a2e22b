package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ListCustomerOrdersQueryHandler reads the order history through the Order
// Store, most recent first. Only summaries are loaded; line items and
// shipment groups are never read.
//
// Example:
//
//	q, _ := queries.NewListCustomerOrdersQuery("ada@example.com", 0)
//	summaries, err := handler.Handle(ctx, q)
//	for _, s := range summaries {
//	    fmt.Println(s.OrderID, s.Status, s.Total)
//	}
type ListCustomerOrdersQueryHandler struct {
	repo ports.OrderRepository
}

func NewListCustomerOrdersQueryHandler(repo ports.OrderRepository) ListCustomerOrdersQueryHandler {
	return ListCustomerOrdersQueryHandler{repo: repo}
}

func (h ListCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListCustomerOrdersQuery,
) ([]order.Summary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	summaries, err := h.repo.ListByCustomerEmail(ctx, query.Email(), query.Limit())
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = make([]order.Summary, 0)
	}
	return summaries, nil
}
