// Package guard provides the ConstructorGuard used by value objects, entities,
// commands and queries to reject zero-value instances that bypassed their
// constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when the
// caller does not supply a more specific error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as built through its constructor. Embed it
// as a private field and check it from the owner's Validate method.
//
// Example usage:
//
//	var ErrStockRecordIsNotConstructed = errors.New("StockRecord must be created via NewStockRecord")
//
//	type StockRecord struct {
//	    productID string
//	    guard     guard.ConstructorGuard
//	}
//
//	func NewStockRecord(productID string) (StockRecord, error) {
//	    return StockRecord{productID: productID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (s StockRecord) Validate() error {
//	    return s.guard.Validate(ErrStockRecordIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard flagged as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
