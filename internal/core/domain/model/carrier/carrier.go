package carrier

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// AnyRegion matches every destination.
const AnyRegion = "*"

// Carrier is a shipping company. Lower Priority values win ties.
type Carrier struct {
	ID       string
	Name     string
	Priority int
}

// Route is one cost-table entry: Carrier can ship from LocationID to Region.
type Route struct {
	LocationID  string
	Region      string
	CarrierID   string
	BaseCost    decimal.Decimal
	PerUnitCost decimal.Decimal
	TransitDays int
	// MaxUnits caps the units one shipment may carry; 0 means unlimited.
	MaxUnits int
}

// Option is a route resolved against its carrier.
type Option struct {
	Carrier Carrier
	Route   Route
}

// CanCarry reports whether the route's capacity admits units.
func (o Option) CanCarry(units int) bool {
	return o.Route.MaxUnits == 0 || units <= o.Route.MaxUnits
}

// Cost is BaseCost + PerUnitCost * units.
func (o Option) Cost(units int) decimal.Decimal {
	return o.Route.BaseCost.Add(o.Route.PerUnitCost.Mul(decimal.NewFromInt(int64(units))))
}

func (r Route) validate(carriers map[string]Carrier) error {
	switch {
	case strings.TrimSpace(r.LocationID) == "":
		return errs.NewValueIsRequiredError("route locationId")
	case strings.TrimSpace(r.Region) == "":
		return errs.NewValueIsRequiredError("route region")
	case r.BaseCost.IsNegative() || r.PerUnitCost.IsNegative():
		return errs.NewValueIsInvalidErrorWithCause("route cost",
			fmt.Errorf("%s -> %s via %s has a negative cost", r.LocationID, r.Region, r.CarrierID))
	case r.TransitDays < 1:
		return errs.NewValueIsOutOfRangeError("transitDays", r.TransitDays, 1, "unbounded")
	case r.MaxUnits < 0:
		return errs.NewValueIsInvalidErrorWithCause("maxUnits", fmt.Errorf("%d is negative", r.MaxUnits))
	}
	if _, ok := carriers[r.CarrierID]; !ok {
		return errs.NewObjectNotFoundError("carrier", r.CarrierID)
	}
	return nil
}
