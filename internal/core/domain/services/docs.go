// Package services holds the stateless domain services of the routing engine.
//
// The package includes:
//   - AllocationPlanner: splits order lines across stock locations from a
//     ledger snapshot, greedily by a pluggable Preference
//   - CarrierSelector: prices each location group against the carrier table
//     and computes business-day delivery estimates
//   - ComposePlan: joins planner groups and carrier quotes into an
//     order.FulfillmentPlan
//
// Neither service performs I/O. Both are safe for concurrent use.
package services
