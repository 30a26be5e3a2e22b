package inventory

import (
	"cmp"
	"errors"
	"slices"

	"fulfillment/internal/pkg/errs"
)

// StockLevel is one row of a ledger snapshot for a single product. Snapshots
// are advisory: they are read without locks and may be stale by the time a
// reservation is attempted.
type StockLevel struct {
	LocationID     string
	QuantityOnHand int
}

// ReservationItem asks the ledger to move Quantity units of ProductID at LocationID.
type ReservationItem struct {
	ProductID  string
	LocationID string
	Quantity   int
}

// ValidateItems rejects an empty list and any item with a blank identifier or
// a non-positive quantity.
func ValidateItems(items []ReservationItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("reservation items")
	}
	var err error
	for _, it := range items {
		if it.ProductID == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError("productId"))
		}
		if it.LocationID == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError("locationId"))
		}
		err = errors.Join(err, positive("quantity", it.Quantity))
	}
	return err
}

// MergeItems sums quantities that target the same (product, location) and
// returns the result ordered by product then location. Ledgers lock rows in
// this order so concurrent reservations cannot deadlock each other.
func MergeItems(items []ReservationItem) []ReservationItem {
	type key struct{ product, location string }
	sums := make(map[key]int, len(items))
	for _, it := range items {
		sums[key{it.ProductID, it.LocationID}] += it.Quantity
	}

	merged := make([]ReservationItem, 0, len(sums))
	for k, q := range sums {
		merged = append(merged, ReservationItem{ProductID: k.product, LocationID: k.location, Quantity: q})
	}
	slices.SortFunc(merged, func(a, b ReservationItem) int {
		return cmp.Or(cmp.Compare(a.ProductID, b.ProductID), cmp.Compare(a.LocationID, b.LocationID))
	})
	return merged
}

// TotalAvailable sums the on-hand quantity of a snapshot.
func TotalAvailable(levels []StockLevel) int {
	total := 0
	for _, l := range levels {
		if l.QuantityOnHand > 0 {
			total += l.QuantityOnHand
		}
	}
	return total
}
