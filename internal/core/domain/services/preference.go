package services

import (
	"cmp"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Candidate is one stock location considered for a line.
type Candidate struct {
	ProductID string
	Level     inventory.StockLevel
	// Units is what the location would ship for the line if drawn from.
	Units int
	// Region is the destination region of the order.
	Region string
}

// Preference orders candidate locations. Compare returns a negative number
// when a should be drawn from before b. Equal scores are broken by the
// planner on the lower location id.
type Preference interface {
	Name() string
	Compare(a, b Candidate) int
}

// Preference names accepted by ParsePreference.
const (
	PreferenceLocationID        = "location_id"
	PreferenceAvailableQuantity = "available_quantity"
	PreferenceRouteCost         = "route_cost"
)

// ByLocationID scores every location equally so candidates are drawn in
// ascending location id order.
type ByLocationID struct{}

func (ByLocationID) Name() string { return PreferenceLocationID }

func (ByLocationID) Compare(_, _ Candidate) int { return 0 }

// ByAvailableQuantity draws from the location holding the most units first.
type ByAvailableQuantity struct{}

func (ByAvailableQuantity) Name() string { return PreferenceAvailableQuantity }

func (ByAvailableQuantity) Compare(a, b Candidate) int {
	return cmp.Compare(b.Level.QuantityOnHand, a.Level.QuantityOnHand)
}

// ByRouteCost draws from the location with the cheapest route able to carry
// the candidate's units to the destination. Locations without such a route
// sort last.
type ByRouteCost struct {
	table *carrier.Table
}

func NewByRouteCost(table *carrier.Table) ByRouteCost {
	return ByRouteCost{table: table}
}

func (ByRouteCost) Name() string { return PreferenceRouteCost }

func (p ByRouteCost) Compare(a, b Candidate) int {
	ca, okA := p.cheapest(a)
	cb, okB := p.cheapest(b)
	switch {
	case okA && okB:
		return ca.Cmp(cb)
	case okA:
		return -1
	case okB:
		return 1
	}
	return 0
}

func (p ByRouteCost) cheapest(c Candidate) (decimal.Decimal, bool) {
	var (
		best  decimal.Decimal
		found bool
	)
	units := max(c.Units, 1)
	for _, opt := range p.table.Options(c.Level.LocationID, c.Region) {
		if !opt.CanCarry(units) {
			continue
		}
		if cost := opt.Cost(units); !found || cost.LessThan(best) {
			best, found = cost, true
		}
	}
	return best, found
}

// ParsePreference resolves a configured preference name. An empty name
// selects ByLocationID.
func ParsePreference(name string, table *carrier.Table) (Preference, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PreferenceLocationID:
		return ByLocationID{}, nil
	case PreferenceAvailableQuantity:
		return ByAvailableQuantity{}, nil
	case PreferenceRouteCost:
		if table == nil {
			return nil, errs.NewValueIsRequiredError("carrier table")
		}
		return NewByRouteCost(table), nil
	}
	return nil, errs.NewValueIsInvalidErrorWithCause("locationPreference", fmt.Errorf("%q is not a known preference", name))
}

// SplitPolicy decides whether a line may be served from several locations.
type SplitPolicy string

const (
	// SplitMulti lets the planner spread a line over as many locations as needed.
	SplitMulti SplitPolicy = "multi"
	// SplitSingle requires one location to cover each line on its own.
	SplitSingle SplitPolicy = "single"
)

// ParseSplitPolicy defaults to SplitMulti for an empty value.
func ParseSplitPolicy(s string) (SplitPolicy, error) {
	switch p := SplitPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return SplitMulti, nil
	case SplitMulti, SplitSingle:
		return p, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("splitPolicy", fmt.Errorf("%q is not multi or single", s))
}
