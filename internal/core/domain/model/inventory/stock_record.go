package inventory

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrStockRecordIsNotConstructed is returned for a zero-value StockRecord.
	ErrStockRecordIsNotConstructed = errors.New("StockRecord must be created via NewStockRecord constructor")

	// ErrInsufficientStock is the sentinel wrapped by InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports the first record a reservation could not decrement.
type InsufficientStockError struct {
	ProductID  string
	LocationID string
	Requested  int
	Available  int
}

func NewInsufficientStockError(productID, locationID string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID:  productID,
		LocationID: locationID,
		Requested:  requested,
		Available:  available,
	}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s at location %s: requested %d, available %d",
		ErrInsufficientStock, e.ProductID, e.LocationID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// StockRecord is the on-hand quantity of one product at one location.
//
// Example:
//
//	rec, _ := inventory.NewStockRecord("sku-1", "wh-east", 5)
//	if err := rec.Reserve(6); errors.Is(err, inventory.ErrInsufficientStock) {
//	    // quantity is unchanged
//	}
type StockRecord struct {
	productID      string
	locationID     string
	quantityOnHand int

	guard guard.ConstructorGuard
}

// NewStockRecord validates the identifiers and a non-negative quantity.
func NewStockRecord(productID, locationID string, quantityOnHand int) (*StockRecord, error) {
	rec := &StockRecord{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		requireID(&rec.productID, "productId", productID),
		requireID(&rec.locationID, "locationId", locationID),
		rec.setQuantity(quantityOnHand),
	); err != nil {
		return nil, err
	}

	return rec, nil
}

// Validate ensures the record was built through NewStockRecord.
func (s *StockRecord) Validate() error {
	if s == nil {
		return ErrStockRecordIsNotConstructed
	}
	return s.guard.Validate(ErrStockRecordIsNotConstructed)
}

func (s *StockRecord) ProductID() string   { return s.productID }
func (s *StockRecord) LocationID() string  { return s.locationID }
func (s *StockRecord) QuantityOnHand() int { return s.quantityOnHand }

// Level returns the snapshot row for this record.
func (s *StockRecord) Level() StockLevel {
	return StockLevel{LocationID: s.locationID, QuantityOnHand: s.quantityOnHand}
}

// CanReserve reports whether quantity can be taken without going negative.
func (s *StockRecord) CanReserve(quantity int) bool {
	return quantity > 0 && quantity <= s.quantityOnHand
}

// Reserve decrements the record. The record is unchanged on error.
func (s *StockRecord) Reserve(quantity int) error {
	if err := positive("quantity", quantity); err != nil {
		return err
	}
	if !s.CanReserve(quantity) {
		return NewInsufficientStockError(s.productID, s.locationID, quantity, s.quantityOnHand)
	}
	s.quantityOnHand -= quantity
	return nil
}

// Release returns a previously reserved quantity to the record.
func (s *StockRecord) Release(quantity int) error {
	if err := positive("quantity", quantity); err != nil {
		return err
	}
	s.quantityOnHand += quantity
	return nil
}

// Restock adds newly received units.
func (s *StockRecord) Restock(quantity int) error {
	return s.Release(quantity)
}

func (s *StockRecord) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantityOnHand", fmt.Errorf("%d is negative", quantity))
	}
	s.quantityOnHand = quantity
	return nil
}

func requireID(dst *string, name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*dst = value
	return nil
}

func positive(name string, value int) error {
	if value <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d is not greater than 0", value))
	}
	return nil
}
