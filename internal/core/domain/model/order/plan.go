package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Allocation commits Quantity units of ProductID from LocationID to line LineNo.
type Allocation struct {
	LineNo     int
	ProductID  string
	LocationID string
	Quantity   int
}

// ShipmentGroup is the set of allocations shipped together from one location
// by one carrier.
type ShipmentGroup struct {
	id                kernel.UUID
	locationID        string
	allocations       []Allocation
	carrierID         string
	shippingCost      decimal.Decimal
	shipDate          time.Time
	estimatedDelivery time.Time
}

// ShipmentGroupParams carries the fields of a ShipmentGroup.
type ShipmentGroupParams struct {
	ID                kernel.UUID
	LocationID        string
	Allocations       []Allocation
	CarrierID         string
	ShippingCost      decimal.Decimal
	ShipDate          time.Time
	EstimatedDelivery time.Time
}

// NewShipmentGroup validates that every allocation ships from LocationID and
// that the delivery estimate is not before the ship date.
func NewShipmentGroup(p ShipmentGroupParams) (ShipmentGroup, error) {
	var err error
	if vErr := p.ID.Validate(); vErr != nil {
		err = errors.Join(err, vErr)
	}
	if p.LocationID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("shipment locationId"))
	}
	if p.CarrierID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("carrierId"))
	}
	if len(p.Allocations) == 0 {
		err = errors.Join(err, errs.NewValueIsRequiredError("shipment allocations"))
	}
	for _, a := range p.Allocations {
		if a.LocationID != p.LocationID {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("allocation",
				fmt.Errorf("allocation from %s in shipment from %s", a.LocationID, p.LocationID)))
		}
		if a.Quantity <= 0 {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("allocation quantity",
				fmt.Errorf("%d is not greater than 0", a.Quantity)))
		}
	}
	if p.ShippingCost.IsNegative() {
		err = errors.Join(err, errs.NewValueIsInvalidError("shippingCost"))
	}
	if p.EstimatedDelivery.Before(p.ShipDate) {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("estimatedDelivery",
			fmt.Errorf("%s is before ship date %s", p.EstimatedDelivery.Format(time.DateOnly), p.ShipDate.Format(time.DateOnly))))
	}
	if err != nil {
		return ShipmentGroup{}, err
	}

	return ShipmentGroup{
		id:                p.ID,
		locationID:        p.LocationID,
		allocations:       append([]Allocation(nil), p.Allocations...),
		carrierID:         p.CarrierID,
		shippingCost:      p.ShippingCost,
		shipDate:          p.ShipDate,
		estimatedDelivery: p.EstimatedDelivery,
	}, nil
}

func (g ShipmentGroup) ID() kernel.UUID               { return g.id }
func (g ShipmentGroup) LocationID() string            { return g.locationID }
func (g ShipmentGroup) CarrierID() string             { return g.carrierID }
func (g ShipmentGroup) ShippingCost() decimal.Decimal { return g.shippingCost }
func (g ShipmentGroup) ShipDate() time.Time           { return g.shipDate }
func (g ShipmentGroup) EstimatedDelivery() time.Time  { return g.estimatedDelivery }
func (g ShipmentGroup) Allocations() []Allocation     { return append([]Allocation(nil), g.allocations...) }

// Units is the total quantity carried by the group.
func (g ShipmentGroup) Units() int {
	n := 0
	for _, a := range g.allocations {
		n += a.Quantity
	}
	return n
}

// FulfillmentPlan is the ordered sequence of shipment groups satisfying an order.
type FulfillmentPlan struct {
	groups []ShipmentGroup
}

// NewFulfillmentPlan builds a plan; at least one group is required.
func NewFulfillmentPlan(groups []ShipmentGroup) (FulfillmentPlan, error) {
	if len(groups) == 0 {
		return FulfillmentPlan{}, errs.NewValueIsRequiredError("shipment groups")
	}
	return FulfillmentPlan{groups: append([]ShipmentGroup(nil), groups...)}, nil
}

// IsEmpty reports a plan that has not been committed yet.
func (p FulfillmentPlan) IsEmpty() bool {
	return len(p.groups) == 0
}

func (p FulfillmentPlan) ShipmentGroups() []ShipmentGroup {
	return append([]ShipmentGroup(nil), p.groups...)
}

func (p FulfillmentPlan) ShipmentCount() int {
	return len(p.groups)
}

// TotalShippingCost sums the cost of every group.
func (p FulfillmentPlan) TotalShippingCost() decimal.Decimal {
	total := decimal.Zero
	for _, g := range p.groups {
		total = total.Add(g.shippingCost)
	}
	return total
}

// PreferredCarrier is the carrier of the group carrying the most units; the
// earliest group wins a tie.
func (p FulfillmentPlan) PreferredCarrier() string {
	best, bestUnits := "", -1
	for _, g := range p.groups {
		if u := g.Units(); u > bestUnits {
			best, bestUnits = g.carrierID, u
		}
	}
	return best
}

// EstimatedDelivery is the latest group estimate: the day the whole order has arrived.
func (p FulfillmentPlan) EstimatedDelivery() time.Time {
	var latest time.Time
	for _, g := range p.groups {
		if g.estimatedDelivery.After(latest) {
			latest = g.estimatedDelivery
		}
	}
	return latest
}

// Allocations flattens the plan in group order.
func (p FulfillmentPlan) Allocations() []Allocation {
	var out []Allocation
	for _, g := range p.groups {
		out = append(out, g.allocations...)
	}
	return out
}

// ReservationItems is the flattened, merged list handed to the ledger.
func (p FulfillmentPlan) ReservationItems() []inventory.ReservationItem {
	allocs := p.Allocations()
	items := make([]inventory.ReservationItem, 0, len(allocs))
	for _, a := range allocs {
		items = append(items, inventory.ReservationItem{
			ProductID:  a.ProductID,
			LocationID: a.LocationID,
			Quantity:   a.Quantity,
		})
	}
	return inventory.MergeItems(items)
}

// coverage returns the allocated quantity per line number.
func (p FulfillmentPlan) coverage() map[int]int {
	covered := make(map[int]int)
	for _, a := range p.Allocations() {
		covered[a.LineNo] += a.Quantity
	}
	return covered
}
