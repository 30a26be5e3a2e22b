// Package kernel provides the shared value objects of the fulfillment domain.
//
// The package includes:
//   - UUID: identifier for orders, line items and shipment groups
//   - Address: validated shipping destination with its carrier region key
//   - business-day helpers (NextBusinessDay, AddBusinessDays) used for
//     ship dates and delivery estimates
//
// Value objects are immutable and reject their zero value through Validate.
package kernel
