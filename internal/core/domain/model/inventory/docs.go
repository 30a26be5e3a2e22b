// Package inventory provides the stock model owned by the Inventory Ledger.
//
// The package includes:
//   - StockRecord: on-hand quantity of one product at one location
//   - StockLevel: one row of an advisory snapshot handed to the planner
//   - ReservationItem: one decrement (or compensating increment) requested of the ledger
//   - InsufficientStockError: a reservation that would drive a record below zero
//
// Key business rules:
//   - quantityOnHand is never negative
//   - it decreases only through a committed reservation and increases only
//     through a restock or a released reservation
package inventory
