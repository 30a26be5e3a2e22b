package services

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ErrInfeasible is the sentinel behind every InfeasibleError.
var ErrInfeasible = errors.New("allocation is infeasible")

// InfeasibleError names the first product, in line order, that available
// stock could not cover.
type InfeasibleError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("%s: product %s requests %d, %d available", ErrInfeasible, e.ProductID, e.Requested, e.Available)
}

func (e *InfeasibleError) Unwrap() error {
	return ErrInfeasible
}

// Snapshot maps a product id to its per-location stock levels.
type Snapshot map[string][]inventory.StockLevel

// LocationGroup is the set of allocations one location ships.
type LocationGroup struct {
	LocationID  string
	Allocations []order.Allocation
}

// Units is the total quantity allocated from the location.
func (g LocationGroup) Units() int {
	n := 0
	for _, a := range g.Allocations {
		n += a.Quantity
	}
	return n
}

// AllocationPlanner computes a greedy, first-fit-by-preference split of order
// lines across stock locations.
//
// For every line, in order, candidate locations are sorted by the Preference
// and then by ascending location id. Quantity is taken from each in turn up to
// its remaining stock. Stock consumed by an earlier line is not offered again
// to a later line of the same product. If any line cannot be covered the whole
// order is infeasible and no allocation is returned.
//
// Example:
//
//	planner, _ := services.NewAllocationPlanner(services.ByLocationID{}, services.SplitMulti)
//	groups, err := planner.Plan(lines, snapshot, addr.Region())
//	if errors.Is(err, services.ErrInfeasible) {
//	    // reject the order, nothing was reserved
//	}
type AllocationPlanner struct {
	preference Preference
	policy     SplitPolicy
}

// NewAllocationPlanner validates its collaborators.
func NewAllocationPlanner(preference Preference, policy SplitPolicy) (*AllocationPlanner, error) {
	if preference == nil {
		return nil, errs.NewValueIsRequiredError("preference")
	}
	if policy != SplitMulti && policy != SplitSingle {
		return nil, errs.NewValueIsInvalidErrorWithCause("splitPolicy", fmt.Errorf("%q is not multi or single", policy))
	}
	return &AllocationPlanner{preference: preference, policy: policy}, nil
}

// Plan allocates every line from snapshot and groups the result by location,
// in order of first use. region is the destination region handed to the
// Preference.
func (p *AllocationPlanner) Plan(lines []order.LineItem, snapshot Snapshot, region string) ([]LocationGroup, error) {
	remaining := make(map[string][]inventory.StockLevel, len(snapshot))
	for productID, levels := range snapshot {
		remaining[productID] = slices.Clone(levels)
	}

	var allocations []order.Allocation
	for _, line := range lines {
		levels := remaining[line.ProductID()]
		p.sort(line, levels, region)

		var (
			taken []order.Allocation
			err   error
		)
		if p.policy == SplitSingle {
			taken, err = allocateSingle(line, levels)
		} else {
			taken, err = allocateMulti(line, levels)
		}
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, taken...)
	}

	return groupByLocation(allocations), nil
}

func (p *AllocationPlanner) sort(line order.LineItem, levels []inventory.StockLevel, region string) {
	candidate := func(level inventory.StockLevel) Candidate {
		units := line.Quantity()
		if p.policy == SplitMulti {
			units = min(units, level.QuantityOnHand)
		}
		return Candidate{ProductID: line.ProductID(), Level: level, Units: units, Region: region}
	}
	slices.SortStableFunc(levels, func(a, b inventory.StockLevel) int {
		return cmp.Or(
			p.preference.Compare(candidate(a), candidate(b)),
			cmp.Compare(a.LocationID, b.LocationID),
		)
	})
}

// allocateMulti consumes levels in order; levels is updated in place.
func allocateMulti(line order.LineItem, levels []inventory.StockLevel) ([]order.Allocation, error) {
	need := line.Quantity()
	if available := inventory.TotalAvailable(levels); available < need {
		return nil, &InfeasibleError{ProductID: line.ProductID(), Requested: need, Available: available}
	}

	var out []order.Allocation
	for i := range levels {
		if need == 0 {
			break
		}
		if levels[i].QuantityOnHand <= 0 {
			continue
		}
		qty := min(need, levels[i].QuantityOnHand)
		levels[i].QuantityOnHand -= qty
		need -= qty
		out = append(out, order.Allocation{
			LineNo:     line.LineNo(),
			ProductID:  line.ProductID(),
			LocationID: levels[i].LocationID,
			Quantity:   qty,
		})
	}
	return out, nil
}

// allocateSingle takes the whole line from the first location able to cover it.
func allocateSingle(line order.LineItem, levels []inventory.StockLevel) ([]order.Allocation, error) {
	need := line.Quantity()
	best := 0
	for i := range levels {
		if levels[i].QuantityOnHand >= need {
			levels[i].QuantityOnHand -= need
			return []order.Allocation{{
				LineNo:     line.LineNo(),
				ProductID:  line.ProductID(),
				LocationID: levels[i].LocationID,
				Quantity:   need,
			}}, nil
		}
		best = max(best, levels[i].QuantityOnHand)
	}
	return nil, &InfeasibleError{ProductID: line.ProductID(), Requested: need, Available: best}
}

func groupByLocation(allocations []order.Allocation) []LocationGroup {
	var groups []LocationGroup
	index := make(map[string]int)
	for _, a := range allocations {
		i, ok := index[a.LocationID]
		if !ok {
			i = len(groups)
			index[a.LocationID] = i
			groups = append(groups, LocationGroup{LocationID: a.LocationID})
		}
		groups[i].Allocations = append(groups[i].Allocations, a)
	}
	return groups
}
