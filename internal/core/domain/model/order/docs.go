// Package order provides the Order aggregate of the fulfillment engine and the
// fulfillment plan it commits to.
//
// The package includes:
//   - Order: the aggregate root holding customer, destination, payment
//     reference, line items, billed totals and the committed plan
//   - Status: the state machine pending -> processing -> confirmed | rejected,
//     then confirmed -> cancelled | fulfilled
//   - LineItem: an immutable request line with the unit price captured at checkout
//   - Allocation, ShipmentGroup, FulfillmentPlan: how each line is satisfied
//   - StatusChangedEvent: raised on every committed status change
//
// Key business rules:
//   - An order reaches Confirmed only with a plan that covers every line item exactly
//   - Orders are never deleted; cancellation is a status change
//   - Rejected, Cancelled and Fulfilled are terminal
package order
