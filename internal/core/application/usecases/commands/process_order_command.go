package commands

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrProcessOrderCommandIsNotConstructed = errors.New(
	"ProcessOrderCommand must be created via NewProcessOrderCommand constructor",
)

// LineParams is one requested line as received from the checkout surface.
type LineParams struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// ProcessOrderParams is the raw checkout request.
type ProcessOrderParams struct {
	Lines   []LineParams
	Address kernel.AddressParams
	Payment order.Payment
	Totals  order.Totals
}

// ProcessOrderCommand is a validated checkout ready for routing.
//
// Example:
//
//	cmd, err := commands.NewProcessOrderCommand(commands.ProcessOrderParams{
//	    Lines:   []commands.LineParams{{ProductID: "SKU-1", Quantity: 2, UnitPrice: price}},
//	    Address: addrParams,
//	    Payment: order.Payment{Method: "card", Reference: "pay_123"},
//	    Totals:  totals,
//	})
//	if err != nil {
//	    return err // every malformed field reported at once
//	}
//	result, err := router.Handle(ctx, cmd)
type ProcessOrderCommand struct { //nolint:recvcheck //using for validation
	lineItems []order.LineItem
	address   kernel.Address
	payment   order.Payment
	totals    order.Totals

	guard guard.ConstructorGuard
}

// NewProcessOrderCommand validates the request shape: at least one line with a
// positive quantity, a complete shipping address with e-mail, a payment
// reference and non-negative totals. Line numbers follow request order from 1.
func NewProcessOrderCommand(p ProcessOrderParams) (ProcessOrderCommand, error) {
	cmd := ProcessOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setLineItems(p.Lines),
		cmd.setAddress(p.Address),
		cmd.setPayment(p.Payment),
		cmd.setTotals(p.Totals),
	); err != nil {
		return ProcessOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessOrderCommand) Validate() error {
	return c.guard.Validate(ErrProcessOrderCommandIsNotConstructed)
}

func (c ProcessOrderCommand) LineItems() []order.LineItem { return append([]order.LineItem(nil), c.lineItems...) }

func (c ProcessOrderCommand) Address() kernel.Address { return c.address }

func (c ProcessOrderCommand) Payment() order.Payment { return c.payment }

func (c ProcessOrderCommand) Totals() order.Totals { return c.totals }

func (c *ProcessOrderCommand) setLineItems(lines []LineParams) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}

	var err error
	items := make([]order.LineItem, 0, len(lines))
	for i, l := range lines {
		li, lErr := order.NewLineItem(i+1, l.ProductID, l.Quantity, l.UnitPrice)
		if lErr != nil {
			err = errors.Join(err, lErr)
			continue
		}
		items = append(items, li)
	}
	if err != nil {
		return err
	}

	c.lineItems = items
	return nil
}

func (c *ProcessOrderCommand) setAddress(p kernel.AddressParams) error {
	addr, err := kernel.NewAddress(p)
	if err != nil {
		return fmt.Errorf("shippingAddress: %w", err)
	}
	c.address = addr
	return nil
}

func (c *ProcessOrderCommand) setPayment(p order.Payment) error {
	if strings.TrimSpace(p.Reference) == "" {
		return errs.NewValueIsRequiredError("paymentReference")
	}
	c.payment = p
	return nil
}

func (c *ProcessOrderCommand) setTotals(t order.Totals) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.totals = t
	return nil
}
