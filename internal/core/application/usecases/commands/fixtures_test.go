package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fridayAfternoon is the fixed commit time of every router test.
var fridayAfternoon = time.Date(2026, time.October, 16, 15, 0, 0, 0, time.UTC)

var tuesday = time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fridayAfternoon }

func testCarrierTable(t *testing.T) *carrier.Table {
	t.Helper()
	table, err := carrier.NewTable(
		[]carrier.Carrier{{ID: "UPS", Priority: 1}, {ID: "DHL", Priority: 2}},
		[]carrier.Route{
			{LocationID: "L1", Region: "US", CarrierID: "UPS", BaseCost: decimal.RequireFromString("5.00"), TransitDays: 2},
			{LocationID: "L2", Region: "US", CarrierID: "DHL", BaseCost: decimal.RequireFromString("4.00"), TransitDays: 2},
		})
	require.NoError(t, err)
	return table
}

func newRouter(
	t *testing.T,
	ledger ports.InventoryLedger,
	factory commands.OrderUoWFactory,
	budget time.Duration,
) commands.ProcessOrderCommandHandler {
	t.Helper()
	table := testCarrierTable(t)
	planner, err := services.NewAllocationPlanner(services.ByLocationID{}, services.SplitMulti)
	require.NoError(t, err)
	selector, err := services.NewCarrierSelector(table)
	require.NoError(t, err)

	router, err := commands.NewProcessOrderCommandHandler(ledger, factory, planner, selector, commands.ProcessOrderOptions{
		Budget: budget,
		Clock:  fixedClock,
	})
	require.NoError(t, err)
	return router
}

func addressParams(country string) kernel.AddressParams {
	return kernel.AddressParams{
		Name: "Ada Lovelace", Street: "1 Market St", City: "San Francisco", State: "CA",
		PostalCode: "94105", Country: country, Email: "ada@example.com",
	}
}

func checkout(t *testing.T, country string, lines ...commands.LineParams) commands.ProcessOrderCommand {
	t.Helper()
	cmd, err := commands.NewProcessOrderCommand(commands.ProcessOrderParams{
		Lines:   lines,
		Address: addressParams(country),
		Payment: order.Payment{Method: "card", Reference: "pay_123"},
		Totals: order.Totals{
			Subtotal: decimal.RequireFromString("50.00"),
			Shipping: decimal.RequireFromString("5.00"),
			Tax:      decimal.RequireFromString("4.00"),
			Total:    decimal.RequireFromString("59.00"),
		},
	})
	require.NoError(t, err)
	return cmd
}

func lineOf(productID string, qty int) commands.LineParams {
	return commands.LineParams{ProductID: productID, Quantity: qty, UnitPrice: decimal.RequireFromString("10.00")}
}

// confirmedOrder builds a confirmed aggregate holding qty of P at L1.
func confirmedOrder(t *testing.T, status order.Status, qty int) *order.Order {
	t.Helper()
	addr, err := kernel.NewAddress(addressParams("US"))
	require.NoError(t, err)
	li, err := order.NewLineItem(1, "P", qty, decimal.NewFromInt(10))
	require.NoError(t, err)
	group, err := order.NewShipmentGroup(order.ShipmentGroupParams{
		ID:                kernel.NewUUID(),
		LocationID:        "L1",
		Allocations:       []order.Allocation{{LineNo: 1, ProductID: "P", LocationID: "L1", Quantity: qty}},
		CarrierID:         "UPS",
		ShippingCost:      decimal.NewFromInt(5),
		ShipDate:          time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC),
		EstimatedDelivery: tuesday,
	})
	require.NoError(t, err)
	plan, err := order.NewFulfillmentPlan([]order.ShipmentGroup{group})
	require.NoError(t, err)

	o, err := order.RestoreOrder(order.RestoreParams{
		ID:        kernel.NewUUID(),
		Address:   addr,
		Payment:   order.Payment{Method: "card", Reference: "pay_123"},
		LineItems: []order.LineItem{li},
		Plan:      plan,
		Status:    status,
		CreatedAt: fridayAfternoon,
	})
	require.NoError(t, err)
	return o
}
