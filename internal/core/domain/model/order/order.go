package order

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrPlanDoesNotCoverOrder is returned by Confirm when the plan's allocations
	// do not sum exactly to every line's requested quantity.
	ErrPlanDoesNotCoverOrder = errors.New("fulfillment plan does not cover the order")
)

// Payment is the already-authorized payment handed over by the checkout surface.
type Payment struct {
	Method    string
	Reference string
}

// Order is the aggregate root of a checkout. It owns its line items and, once
// confirmed, the committed fulfillment plan.
//
// Order follows these invariants:
//   - Must have a valid identifier, shipping address and payment reference
//   - Must have at least one line item, with unique line numbers
//   - A confirmed order carries a plan whose allocations sum exactly to each
//     line's requested quantity
//   - Status transitions follow the Status state machine
//
// Every status change records a StatusChangedEvent that stays on the aggregate
// until ClearDomainEvents is called after the change has been persisted.
type Order struct {
	id        kernel.UUID
	address   kernel.Address
	payment   Payment
	lineItems []LineItem
	totals    Totals
	plan      FulfillmentPlan
	status    Status
	createdAt time.Time

	domainEvents []StatusChangedEvent

	isConstructed bool
}

// NewOrder creates a pending order from a validated checkout.
//
// Parameters:
//   - id: Unique identifier for the order
//   - address: Shipping destination, also carrying the customer e-mail
//   - payment: Authorized payment; the reference is required
//   - lineItems: At least one line built through NewLineItem
//   - totals: Billed amounts as supplied by the caller
//   - createdAt: Checkout time
//
// Returns:
//   - *Order: The created order in Pending status
//   - error: Every validation failure joined together
//
// Example:
//
//	line, _ := order.NewLineItem(1, "SKU-1", 2, decimal.RequireFromString("9.99"))
//	o, err := order.NewOrder(kernel.NewUUID(), addr,
//	    order.Payment{Method: "card", Reference: "pay_123"},
//	    []order.LineItem{line}, totals, time.Now())
func NewOrder(
	id kernel.UUID,
	address kernel.Address,
	payment Payment,
	lineItems []LineItem,
	totals Totals,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setAddress(address),
		o.setPayment(payment),
		o.setLineItems(lineItems),
		o.setTotals(totals),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreParams carries the persisted state of an order.
type RestoreParams struct {
	ID        kernel.UUID
	Address   kernel.Address
	Payment   Payment
	LineItems []LineItem
	Totals    Totals
	Plan      FulfillmentPlan
	Status    Status
	CreatedAt time.Time
}

// RestoreOrder rebuilds an order loaded from storage. It validates the same
// invariants as NewOrder plus plan coverage for confirmed and later statuses,
// and records no domain events.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		createdAt:     p.CreatedAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setAddress(p.Address),
		o.setPayment(p.Payment),
		o.setLineItems(p.LineItems),
		o.setTotals(p.Totals),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = p.Status

	if !p.Plan.IsEmpty() {
		if err := o.checkCoverage(p.Plan); err != nil {
			return nil, err
		}
		o.plan = p.Plan
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }

func (o *Order) ShippingAddress() kernel.Address { return o.address }

// CustomerEmail is the normalized e-mail of the shipping address.
func (o *Order) CustomerEmail() string { return o.address.Email() }

func (o *Order) Payment() Payment { return o.payment }

func (o *Order) LineItems() []LineItem { return append([]LineItem(nil), o.lineItems...) }

func (o *Order) Totals() Totals { return o.totals }

// Plan returns the committed plan; it is empty until the order is confirmed.
func (o *Order) Plan() FulfillmentPlan { return o.plan }

func (o *Order) Status() Status { return o.status }

func (o *Order) CreatedAt() time.Time { return o.createdAt }

// EstimatedDelivery is the plan's latest delivery estimate, or the zero time
// for an order without a plan.
func (o *Order) EstimatedDelivery() time.Time { return o.plan.EstimatedDelivery() }

// Summary projects the order into a history row.
func (o *Order) Summary() Summary {
	return Summary{
		OrderID:           o.id,
		Status:            o.status,
		Total:             o.totals.Total,
		ShipmentCount:     o.plan.ShipmentCount(),
		EstimatedDelivery: o.plan.EstimatedDelivery(),
		CreatedAt:         o.createdAt,
	}
}

// StartProcessing marks planning and reservation as started.
func (o *Order) StartProcessing() error {
	return o.moveTo(o.status.StartProcessing)
}

// Confirm attaches the committed plan and moves the order to Confirmed.
//
// The plan must allocate exactly the requested quantity of every line, no
// more and no less, and may not reference unknown lines.
func (o *Order) Confirm(plan FulfillmentPlan) error {
	if _, err := o.status.Confirm(); err != nil {
		return err
	}
	if err := o.checkCoverage(plan); err != nil {
		return err
	}
	if err := o.moveTo(o.status.Confirm); err != nil {
		return err
	}
	o.plan = plan
	return nil
}

// Reject moves a pending or processing order to Rejected.
func (o *Order) Reject() error {
	return o.moveTo(o.status.Reject)
}

// Cancel moves a confirmed order to Cancelled. Releasing the plan's stock is
// the caller's job and must happen in the same unit of work.
func (o *Order) Cancel() error {
	return o.moveTo(o.status.Cancel)
}

// Fulfill moves a confirmed order to its terminal Fulfilled status.
func (o *Order) Fulfill() error {
	return o.moveTo(o.status.Fulfill)
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []StatusChangedEvent {
	return append([]StatusChangedEvent(nil), o.domainEvents...)
}

// ClearDomainEvents drops recorded events after they have been dispatched.
func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

func (o *Order) moveTo(next func() (Status, error)) error {
	status, err := next()
	if err != nil {
		return err
	}
	o.status = status
	o.domainEvents = append(o.domainEvents, StatusChangedEvent{
		OrderID:       o.id,
		CustomerEmail: o.address.Email(),
		Status:        status,
		OccurredAt:    time.Now().UTC(),
	})
	return nil
}

func (o *Order) checkCoverage(plan FulfillmentPlan) error {
	if plan.IsEmpty() {
		return fmt.Errorf("%w: plan has no shipment groups", ErrPlanDoesNotCoverOrder)
	}

	covered := plan.coverage()
	for _, li := range o.lineItems {
		if got := covered[li.LineNo()]; got != li.Quantity() {
			return fmt.Errorf("%w: line %d requests %d, plan allocates %d",
				ErrPlanDoesNotCoverOrder, li.LineNo(), li.Quantity(), got)
		}
		delete(covered, li.LineNo())
	}
	if len(covered) > 0 {
		unknown := slices.Sorted(maps.Keys(covered))
		return fmt.Errorf("%w: plan allocates unknown lines %v", ErrPlanDoesNotCoverOrder, unknown)
	}

	for _, a := range plan.Allocations() {
		if li := o.line(a.LineNo); li.ProductID() != a.ProductID {
			return fmt.Errorf("%w: line %d is %s, plan allocates %s",
				ErrPlanDoesNotCoverOrder, a.LineNo, li.ProductID(), a.ProductID)
		}
	}
	return nil
}

func (o *Order) line(lineNo int) LineItem {
	for _, li := range o.lineItems {
		if li.LineNo() == lineNo {
			return li
		}
	}
	return LineItem{}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setPayment(payment Payment) error {
	payment.Method = strings.TrimSpace(payment.Method)
	payment.Reference = strings.TrimSpace(payment.Reference)
	if payment.Reference == "" {
		return errs.NewValueIsRequiredError("paymentReference")
	}
	o.payment = payment
	return nil
}

func (o *Order) setLineItems(lineItems []LineItem) error {
	if len(lineItems) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}

	seen := make(map[int]struct{}, len(lineItems))
	for _, li := range lineItems {
		if err := li.Validate(); err != nil {
			return err
		}
		if _, dup := seen[li.LineNo()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("lineItems",
				fmt.Errorf("line %d appears more than once", li.LineNo()))
		}
		seen[li.LineNo()] = struct{}{}
	}

	o.lineItems = append([]LineItem(nil), lineItems...)
	return nil
}

func (o *Order) setTotals(totals Totals) error {
	if err := totals.Validate(); err != nil {
		return err
	}
	o.totals = totals
	return nil
}
