package services

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrNoCarrierAvailable is the sentinel behind every NoCarrierAvailableError.
var ErrNoCarrierAvailable = errors.New("no carrier available")

// NoCarrierAvailableError reports a (location, region) pair that no carrier
// route serves, or serves only below the shipment's unit count.
type NoCarrierAvailableError struct {
	LocationID string
	Region     string
}

func (e *NoCarrierAvailableError) Error() string {
	return fmt.Sprintf("%s: location %s to region %s", ErrNoCarrierAvailable, e.LocationID, e.Region)
}

func (e *NoCarrierAvailableError) Unwrap() error {
	return ErrNoCarrierAvailable
}

// Quote is the selected carrier for one location group.
type Quote struct {
	LocationID        string
	CarrierID         string
	Cost              decimal.Decimal
	TransitDays       int
	ShipDate          time.Time
	EstimatedDelivery time.Time
}

// CarrierSelector picks the carrier for each location group: lowest cost,
// then shortest transit, then carrier priority, then carrier id.
//
// The ship date is the next business day after commit time and counts as the
// first transit day, so a Friday commit with two transit days delivers on
// Tuesday.
type CarrierSelector struct {
	table *carrier.Table
}

func NewCarrierSelector(table *carrier.Table) (*CarrierSelector, error) {
	if table == nil {
		return nil, errs.NewValueIsRequiredError("carrier table")
	}
	return &CarrierSelector{table: table}, nil
}

// Select returns one quote per group, in group order. The first unserved
// group fails the whole selection.
func (s *CarrierSelector) Select(groups []LocationGroup, region string, commitTime time.Time) ([]Quote, error) {
	quotes := make([]Quote, 0, len(groups))
	for _, g := range groups {
		q, err := s.quote(g, region, commitTime)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func (s *CarrierSelector) quote(g LocationGroup, region string, commitTime time.Time) (Quote, error) {
	units := g.Units()

	var capable []carrier.Option
	for _, opt := range s.table.Options(g.LocationID, region) {
		if opt.CanCarry(units) {
			capable = append(capable, opt)
		}
	}
	if len(capable) == 0 {
		return Quote{}, &NoCarrierAvailableError{LocationID: g.LocationID, Region: region}
	}

	best := slices.MinFunc(capable, func(a, b carrier.Option) int {
		return cmp.Or(
			a.Cost(units).Cmp(b.Cost(units)),
			cmp.Compare(a.Route.TransitDays, b.Route.TransitDays),
			cmp.Compare(a.Carrier.Priority, b.Carrier.Priority),
			cmp.Compare(a.Carrier.ID, b.Carrier.ID),
		)
	})

	return Quote{
		LocationID:        g.LocationID,
		CarrierID:         best.Carrier.ID,
		Cost:              best.Cost(units),
		TransitDays:       best.Route.TransitDays,
		ShipDate:          kernel.NextBusinessDay(commitTime),
		EstimatedDelivery: EstimateDelivery(commitTime, best.Route.TransitDays),
	}, nil
}

// EstimateDelivery is the business day on which a shipment committed at
// commitTime arrives after transitDays business days in transit.
func EstimateDelivery(commitTime time.Time, transitDays int) time.Time {
	return kernel.AddBusinessDays(commitTime, max(transitDays, 1))
}

// ComposePlan joins location groups with their quotes.
func ComposePlan(groups []LocationGroup, quotes []Quote) (order.FulfillmentPlan, error) {
	if len(groups) != len(quotes) {
		return order.FulfillmentPlan{}, errs.NewValueIsInvalidErrorWithCause("quotes",
			fmt.Errorf("%d quotes for %d shipment groups", len(quotes), len(groups)))
	}

	shipments := make([]order.ShipmentGroup, 0, len(groups))
	for i, g := range groups {
		q := quotes[i]
		if q.LocationID != g.LocationID {
			return order.FulfillmentPlan{}, errs.NewValueIsInvalidErrorWithCause("quotes",
				fmt.Errorf("quote for %s paired with group %s", q.LocationID, g.LocationID))
		}
		sg, err := order.NewShipmentGroup(order.ShipmentGroupParams{
			ID:                kernel.NewUUID(),
			LocationID:        g.LocationID,
			Allocations:       g.Allocations,
			CarrierID:         q.CarrierID,
			ShippingCost:      q.Cost,
			ShipDate:          q.ShipDate,
			EstimatedDelivery: q.EstimatedDelivery,
		})
		if err != nil {
			return order.FulfillmentPlan{}, err
		}
		shipments = append(shipments, sg)
	}
	return order.NewFulfillmentPlan(shipments)
}
