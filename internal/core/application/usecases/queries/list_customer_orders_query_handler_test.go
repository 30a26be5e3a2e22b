package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListCustomerOrdersQueryHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("reads through the order store with normalized email and default limit", func(t *testing.T) {
		summaries := []order.Summary{{
			OrderID:           kernel.NewUUID(),
			Status:            order.Confirmed,
			Total:             decimal.RequireFromString("55.00"),
			ShipmentCount:     2,
			EstimatedDelivery: time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC),
			CreatedAt:         time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC),
		}}
		repo := new(MockOrderRepository)
		repo.On("ListByCustomerEmail", mock.Anything, "ada@example.com", queries.DefaultHistoryLimit).
			Return(summaries, nil).Once()

		q, err := queries.NewListCustomerOrdersQuery(" Ada@Example.com ", 0)
		require.NoError(t, err)

		got, err := queries.NewListCustomerOrdersQueryHandler(repo).Handle(ctx, q)

		require.NoError(t, err)
		assert.Equal(t, summaries, got)
		repo.AssertExpectations(t)
	})

	t.Run("no orders is an empty slice", func(t *testing.T) {
		repo := new(MockOrderRepository)
		repo.On("ListByCustomerEmail", mock.Anything, "ada@example.com", 3).Return(nil, nil).Once()

		q, err := queries.NewListCustomerOrdersQuery("ada@example.com", 3)
		require.NoError(t, err)

		got, err := queries.NewListCustomerOrdersQueryHandler(repo).Handle(ctx, q)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		repo := new(MockOrderRepository)
		repo.On("ListByCustomerEmail", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("connection reset")).Once()

		q, err := queries.NewListCustomerOrdersQuery("ada@example.com", 0)
		require.NoError(t, err)

		_, err = queries.NewListCustomerOrdersQueryHandler(repo).Handle(ctx, q)

		require.EqualError(t, err, "connection reset")
	})

	t.Run("unconstructed query never reaches the store", func(t *testing.T) {
		repo := new(MockOrderRepository)

		_, err := queries.NewListCustomerOrdersQueryHandler(repo).Handle(ctx, queries.ListCustomerOrdersQuery{})

		require.ErrorIs(t, err, queries.ErrListCustomerOrdersQueryIsNotConstructed)
		repo.AssertNotCalled(t, "ListByCustomerEmail", mock.Anything, mock.Anything, mock.Anything)
	})
}
