// Package queries contains read-only operations: order details, customer
// order history and stock snapshots. No handler here changes state.
package queries
