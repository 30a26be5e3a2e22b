package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Processing ──┬──> Confirmed ──┬──> Cancelled
//	   │                     │                └──> Fulfilled
//	   └─────────────────────┴──> Rejected
//
// Rejected, Cancelled and Fulfilled are terminal.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending is the status of a freshly validated checkout.
	Pending

	// Processing means planning and reservation are in flight.
	Processing

	// Confirmed orders hold a committed reservation and a persisted plan.
	Confirmed

	// Rejected orders could not be planned, priced or reserved.
	Rejected

	// Cancelled orders had their reservation released.
	Cancelled

	// Fulfilled is set by the external fulfillment-completion event.
	Fulfilled
)

var statusNames = map[Status]string{
	Unknown:    "unknown",
	Pending:    "pending",
	Processing: "processing",
	Confirmed:  "confirmed",
	Rejected:   "rejected",
	Cancelled:  "cancelled",
	Fulfilled:  "fulfilled",
}

// ParseStatus maps the lower-case name back to a Status.
func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for st, name := range statusNames {
		if st != Unknown && name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer; invalid values render as "unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Rejected || s == Cancelled || s == Fulfilled
}

// StartProcessing transitions Pending -> Processing.
func (s Status) StartProcessing() (Status, error) {
	return s.transition(Processing, Pending)
}

// Confirm transitions Processing -> Confirmed.
func (s Status) Confirm() (Status, error) {
	return s.transition(Confirmed, Processing)
}

// Reject transitions Pending or Processing -> Rejected.
func (s Status) Reject() (Status, error) {
	return s.transition(Rejected, Pending, Processing)
}

// Cancel transitions Confirmed -> Cancelled.
func (s Status) Cancel() (Status, error) {
	return s.transition(Cancelled, Confirmed)
}

// Fulfill transitions Confirmed -> Fulfilled.
func (s Status) Fulfill() (Status, error) {
	return s.transition(Fulfilled, Confirmed)
}

func (s Status) transition(to Status, from ...Status) (Status, error) {
	for _, allowed := range from {
		if s == allowed {
			return to, nil
		}
	}
	return Unknown, NewTransitionError(s, to)
}

// TransitionError reports a status change the state machine does not allow.
// It unwraps to errs.ErrValueIsInvalid.
type TransitionError struct {
	From Status
	To   Status
}

func NewTransitionError(from, to Status) *TransitionError {
	return &TransitionError{From: from, To: to}
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("status is invalid: cannot move order from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return errs.ErrValueIsInvalid
}
