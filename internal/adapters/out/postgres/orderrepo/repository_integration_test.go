package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	friday  = time.Date(2026, time.October, 16, 15, 0, 0, 0, time.UTC)
	monday  = time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC)
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite runs the Order Store against PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(orderrepo.Models()...))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE shipment_allocations, shipment_groups, order_line_items, orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RestoresFullAggregate() {
	ctx := context.Background()
	o := suite.confirmedOrder("ada@example.com", friday)
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()

	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.True(got.ID().IsEqual(o.ID()))
	suite.Equal(order.Confirmed, got.Status())
	suite.Equal("ada@example.com", got.CustomerEmail())
	suite.Equal("US-CA", got.ShippingAddress().Region())
	suite.Equal("pay_123", got.Payment().Reference)
	suite.True(decimal.RequireFromString("59.00").Equal(got.Totals().Total))
	suite.WithinDuration(friday, got.CreatedAt(), time.Millisecond)

	lines := got.LineItems()
	suite.Require().Len(lines, 2)
	suite.Equal(1, lines[0].LineNo())
	suite.Equal("P", lines[0].ProductID())
	suite.Equal(2, lines[1].LineNo())

	groups := got.Plan().ShipmentGroups()
	suite.Require().Len(groups, 2)
	suite.Equal("L1", groups[0].LocationID())
	suite.Equal("L2", groups[1].LocationID())
	suite.Equal(tuesday, groups[0].EstimatedDelivery())
	suite.Equal(monday, groups[0].ShipDate())
	suite.Len(groups[0].Allocations(), 2)
	suite.True(decimal.RequireFromString("9.00").Equal(got.Plan().TotalShippingCost()))
	suite.Equal(tuesday, got.EstimatedDelivery())
	suite.Empty(got.DomainEvents())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_Fails() {
	ctx := context.Background()
	o := suite.confirmedOrder("ada@example.com", friday)
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Require().Error(suite.repository.Add(ctx, o))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnconstructedOrder_Fails() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusOnly() {
	ctx := context.Background()
	o := suite.confirmedOrder("ada@example.com", friday)
	suite.tracker.On("TrackAggregate", o.ID(), o).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.Cancel())
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, got.Status())
	suite.Equal(2, got.Plan().ShipmentCount())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder_ReturnsNotFound() {
	o := suite.confirmedOrder("ada@example.com", friday)

	err := suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_MissingOrder_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
	suite.Equal("order", notFound.ParamName)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByCustomerEmail_MostRecentFirst() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	older := suite.confirmedOrder("ada@example.com", friday.Add(-time.Hour))
	newer := suite.confirmedOrder("ada@example.com", friday)
	other := suite.confirmedOrder("bob@example.com", friday.Add(time.Hour))
	for _, o := range []*order.Order{older, newer, other} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	summaries, err := suite.repository.ListByCustomerEmail(ctx, "ada@example.com", 10)
	suite.Require().NoError(err)
	suite.Require().Len(summaries, 2)
	suite.True(summaries[0].OrderID.IsEqual(newer.ID()))
	suite.True(summaries[1].OrderID.IsEqual(older.ID()))
	suite.Equal(order.Confirmed, summaries[0].Status)
	suite.Equal(2, summaries[0].ShipmentCount)
	suite.Equal(tuesday, summaries[0].EstimatedDelivery)

	limited, err := suite.repository.ListByCustomerEmail(ctx, "ada@example.com", 1)
	suite.Require().NoError(err)
	suite.Len(limited, 1)

	none, err := suite.repository.ListByCustomerEmail(ctx, "nobody@example.com", 10)
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByCustomerEmail_MissingEstimate_IsZero() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	o := suite.confirmedOrder("ada@example.com", friday)
	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).
		Where("id = ?", o.ID().Bytes()).
		Update("estimated_delivery", nil).Error)

	summaries, err := suite.repository.ListByCustomerEmail(ctx, "ada@example.com", 10)

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 1)
	suite.True(summaries[0].EstimatedDelivery.IsZero())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_SerializesTransitions() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	o := suite.confirmedOrder("ada@example.com", friday)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first := suite.db.Begin()
	suite.Require().NoError(first.Error)
	defer first.Rollback()
	locked, err := orderrepo.NewGormOrderRepository(first, suite.tracker).GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)

	seen := make(chan order.Status, 1)
	go func() {
		second := suite.db.Begin()
		defer second.Rollback()
		got, getErr := orderrepo.NewGormOrderRepository(second, suite.tracker).GetForUpdate(ctx, o.ID())
		if getErr != nil {
			seen <- order.Unknown
			return
		}
		seen <- got.Status()
	}()

	select {
	case <-seen:
		suite.Fail("second reader did not wait for the row lock")
	case <-time.After(300 * time.Millisecond):
	}

	suite.Require().NoError(locked.Cancel())
	suite.Require().NoError(orderrepo.NewGormOrderRepository(first, suite.tracker).Update(ctx, locked))
	suite.Require().NoError(first.Commit().Error)

	select {
	case status := <-seen:
		suite.Equal(order.Cancelled, status)
	case <-time.After(10 * time.Second):
		suite.Fail("second reader never acquired the lock")
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_MissingOrder_ReturnsNotFound() {
	_, err := suite.repository.GetForUpdate(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// confirmedOrder builds a two-line order split over L1 and L2.
func (suite *OrderRepositoryIntegrationTestSuite) confirmedOrder(email string, createdAt time.Time) *order.Order {
	addr, err := kernel.NewAddress(kernel.AddressParams{
		Name: "Ada Lovelace", Street: "1 Market St", City: "San Francisco", State: "CA",
		PostalCode: "94105", Country: "US", Email: email,
	})
	suite.Require().NoError(err)

	p, err := order.NewLineItem(1, "P", 5, decimal.RequireFromString("10.00"))
	suite.Require().NoError(err)
	q, err := order.NewLineItem(2, "Q", 1, decimal.RequireFromString("2.50"))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), addr, order.Payment{Method: "card", Reference: "pay_123"},
		[]order.LineItem{p, q}, order.Totals{
			Subtotal: decimal.RequireFromString("52.50"),
			Shipping: decimal.RequireFromString("9.00"),
			Tax:      decimal.Zero,
			Total:    decimal.RequireFromString("59.00"),
		}, createdAt)
	suite.Require().NoError(err)

	l1, err := order.NewShipmentGroup(order.ShipmentGroupParams{
		ID:         kernel.NewUUID(),
		LocationID: "L1",
		Allocations: []order.Allocation{
			{LineNo: 1, ProductID: "P", LocationID: "L1", Quantity: 3},
			{LineNo: 2, ProductID: "Q", LocationID: "L1", Quantity: 1},
		},
		CarrierID:         "UPS",
		ShippingCost:      decimal.RequireFromString("5.00"),
		ShipDate:          monday,
		EstimatedDelivery: tuesday,
	})
	suite.Require().NoError(err)
	l2, err := order.NewShipmentGroup(order.ShipmentGroupParams{
		ID:                kernel.NewUUID(),
		LocationID:        "L2",
		Allocations:       []order.Allocation{{LineNo: 1, ProductID: "P", LocationID: "L2", Quantity: 2}},
		CarrierID:         "DHL",
		ShippingCost:      decimal.RequireFromString("4.00"),
		ShipDate:          monday,
		EstimatedDelivery: tuesday,
	})
	suite.Require().NoError(err)
	plan, err := order.NewFulfillmentPlan([]order.ShipmentGroup{l1, l2})
	suite.Require().NoError(err)

	suite.Require().NoError(o.StartProcessing())
	suite.Require().NoError(o.Confirm(plan))
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
