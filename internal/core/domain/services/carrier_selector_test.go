package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fridayAfternoon = time.Date(2026, time.October, 16, 15, 0, 0, 0, time.UTC)

func testTable(t *testing.T) *carrier.Table {
	t.Helper()
	table, err := carrier.NewTable(
		[]carrier.Carrier{
			{ID: "UPS", Name: "UPS", Priority: 1},
			{ID: "DHL", Name: "DHL", Priority: 2},
			{ID: "USPS", Name: "USPS", Priority: 3},
		},
		[]carrier.Route{
			{LocationID: "L1", Region: "US", CarrierID: "UPS", BaseCost: decimal.RequireFromString("5.00"), PerUnitCost: decimal.RequireFromString("0.50"), TransitDays: 2},
			{LocationID: "L1", Region: "US", CarrierID: "DHL", BaseCost: decimal.RequireFromString("4.00"), PerUnitCost: decimal.RequireFromString("1.00"), TransitDays: 3},
			{LocationID: "L2", Region: "US", CarrierID: "UPS", BaseCost: decimal.RequireFromString("6.00"), TransitDays: 3},
			{LocationID: "L2", Region: "US", CarrierID: "DHL", BaseCost: decimal.RequireFromString("6.00"), TransitDays: 2},
			{LocationID: "L3", Region: "US", CarrierID: "DHL", BaseCost: decimal.RequireFromString("3.00"), TransitDays: 2},
			{LocationID: "L3", Region: "US", CarrierID: "USPS", BaseCost: decimal.RequireFromString("3.00"), TransitDays: 2},
			{LocationID: "L4", Region: "US", CarrierID: "USPS", BaseCost: decimal.RequireFromString("1.00"), TransitDays: 1, MaxUnits: 2},
			{LocationID: "L4", Region: "US", CarrierID: "UPS", BaseCost: decimal.RequireFromString("8.00"), TransitDays: 1},
		})
	require.NoError(t, err)
	return table
}

func group(locationID string, units int) services.LocationGroup {
	return services.LocationGroup{
		LocationID:  locationID,
		Allocations: []order.Allocation{{LineNo: 1, ProductID: "P", LocationID: locationID, Quantity: units}},
	}
}

func TestCarrierSelector_Select(t *testing.T) {
	selector, err := services.NewCarrierSelector(testTable(t))
	require.NoError(t, err)

	t.Run("lowest cost wins", func(t *testing.T) {
		// 1 unit: UPS 5.50, DHL 5.00; 4 units: UPS 7.00, DHL 8.00
		quotes, err := selector.Select([]services.LocationGroup{group("L1", 1), group("L1", 4)}, "US-CA", fridayAfternoon)

		require.NoError(t, err)
		require.Len(t, quotes, 2)
		assert.Equal(t, "DHL", quotes[0].CarrierID)
		assert.True(t, decimal.RequireFromString("5.00").Equal(quotes[0].Cost))
		assert.Equal(t, "UPS", quotes[1].CarrierID)
		assert.True(t, decimal.RequireFromString("7.00").Equal(quotes[1].Cost))
	})

	t.Run("equal cost breaks on shorter transit", func(t *testing.T) {
		quotes, err := selector.Select([]services.LocationGroup{group("L2", 1)}, "US", fridayAfternoon)

		require.NoError(t, err)
		assert.Equal(t, "DHL", quotes[0].CarrierID)
	})

	t.Run("equal cost and transit breaks on carrier priority", func(t *testing.T) {
		quotes, err := selector.Select([]services.LocationGroup{group("L3", 1)}, "US", fridayAfternoon)

		require.NoError(t, err)
		assert.Equal(t, "DHL", quotes[0].CarrierID)
	})

	t.Run("capacity limits skip a route", func(t *testing.T) {
		quotes, err := selector.Select([]services.LocationGroup{group("L4", 2), group("L4", 3)}, "US", fridayAfternoon)

		require.NoError(t, err)
		assert.Equal(t, "USPS", quotes[0].CarrierID)
		assert.Equal(t, "UPS", quotes[1].CarrierID)
	})

	t.Run("friday commit with two transit days arrives tuesday", func(t *testing.T) {
		quotes, err := selector.Select([]services.LocationGroup{group("L2", 1)}, "US", fridayAfternoon)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC), quotes[0].ShipDate)
		assert.Equal(t, time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC), quotes[0].EstimatedDelivery)
		assert.Equal(t, time.Tuesday, quotes[0].EstimatedDelivery.Weekday())
	})

	t.Run("unserved region reports the location", func(t *testing.T) {
		quotes, err := selector.Select([]services.LocationGroup{group("L1", 1), group("L9", 1)}, "US", fridayAfternoon)

		require.ErrorIs(t, err, services.ErrNoCarrierAvailable)
		assert.Nil(t, quotes)
		var noCarrier *services.NoCarrierAvailableError
		require.ErrorAs(t, err, &noCarrier)
		assert.Equal(t, "L9", noCarrier.LocationID)
	})

	t.Run("other country is not served", func(t *testing.T) {
		_, err := selector.Select([]services.LocationGroup{group("L1", 1)}, "DE", fridayAfternoon)
		require.ErrorIs(t, err, services.ErrNoCarrierAvailable)
	})
}

func TestEstimateDelivery(t *testing.T) {
	saturday := time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)
	wednesday := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC), services.EstimateDelivery(fridayAfternoon, 2))
	assert.Equal(t, time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC), services.EstimateDelivery(saturday, 1))
	assert.Equal(t, time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC), services.EstimateDelivery(wednesday, 3))
	assert.Equal(t, time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC), services.EstimateDelivery(wednesday, 0))
}

func TestComposePlan(t *testing.T) {
	selector, err := services.NewCarrierSelector(testTable(t))
	require.NoError(t, err)
	groups := []services.LocationGroup{group("L1", 3), group("L2", 2)}

	quotes, err := selector.Select(groups, "US", fridayAfternoon)
	require.NoError(t, err)

	plan, err := services.ComposePlan(groups, quotes)

	require.NoError(t, err)
	assert.Equal(t, 2, plan.ShipmentCount())
	// L1: UPS 6.50 vs DHL 7.00; L2: DHL 6.00
	assert.True(t, decimal.RequireFromString("12.50").Equal(plan.TotalShippingCost()))
	assert.Equal(t, "UPS", plan.PreferredCarrier())

	_, err = services.ComposePlan(groups, quotes[:1])
	require.Error(t, err)
}
