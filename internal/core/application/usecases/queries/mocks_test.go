package queries_test

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListByCustomerEmail(ctx context.Context, email string, limit int) ([]order.Summary, error) {
	args := m.Called(ctx, email, limit)
	s, _ := args.Get(0).([]order.Summary)
	return s, args.Error(1)
}

type MockInventoryLedger struct {
	mock.Mock
}

func (m *MockInventoryLedger) Snapshot(ctx context.Context, productID string) ([]inventory.StockLevel, error) {
	args := m.Called(ctx, productID)
	levels, _ := args.Get(0).([]inventory.StockLevel)
	return levels, args.Error(1)
}

func (m *MockInventoryLedger) Reserve(ctx context.Context, items []inventory.ReservationItem) error {
	return m.Called(ctx, items).Error(0)
}

func (m *MockInventoryLedger) Release(ctx context.Context, items []inventory.ReservationItem) error {
	return m.Called(ctx, items).Error(0)
}

func (m *MockInventoryLedger) Restock(
	ctx context.Context,
	productID, locationID string,
	quantity int,
) (inventory.StockLevel, error) {
	args := m.Called(ctx, productID, locationID, quantity)
	level, _ := args.Get(0).(inventory.StockLevel)
	return level, args.Error(1)
}
