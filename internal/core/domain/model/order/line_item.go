package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrLineItemIsNotConstructed is returned for a zero-value LineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one requested product of an order. The unit price is the one in
// force at checkout and is never re-read from the catalog.
type LineItem struct { //nolint:recvcheck //using for validation
	lineNo    int
	productID string
	quantity  int
	unitPrice decimal.Decimal

	guard guard.ConstructorGuard
}

// NewLineItem validates a line. lineNo is the 1-based position in the request;
// quantity must be positive and unitPrice non-negative.
func NewLineItem(lineNo int, productID string, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	li := LineItem{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		li.setLineNo(lineNo),
		li.setProductID(productID),
		li.setQuantity(quantity),
		li.setUnitPrice(unitPrice),
	); err != nil {
		return LineItem{}, fmt.Errorf("line %d: %w", lineNo, err)
	}

	return li, nil
}

// Validate ensures the line was built through NewLineItem.
func (l LineItem) Validate() error {
	return l.guard.Validate(ErrLineItemIsNotConstructed)
}

func (l LineItem) LineNo() int                { return l.lineNo }
func (l LineItem) ProductID() string          { return l.productID }
func (l LineItem) Quantity() int              { return l.quantity }
func (l LineItem) UnitPrice() decimal.Decimal { return l.unitPrice }

// Subtotal is quantity * unitPrice.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}

func (l *LineItem) setLineNo(lineNo int) error {
	if lineNo <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("lineNo", fmt.Errorf("%d is not greater than 0", lineNo))
	}
	l.lineNo = lineNo
	return nil
}

func (l *LineItem) setProductID(productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	l.productID = productID
	return nil
}

func (l *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}

func (l *LineItem) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	l.unitPrice = price
	return nil
}
