package order

import (
	"errors"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Totals are the billed amounts supplied by the checkout surface. They are
// persisted as-is; the engine does not reconcile them against computed prices.
type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Validate rejects negative amounts.
func (t Totals) Validate() error {
	return errors.Join(
		nonNegative("subtotal", t.Subtotal),
		nonNegative("shipping", t.Shipping),
		nonNegative("tax", t.Tax),
		nonNegative("total", t.Total),
	)
}

func nonNegative(name string, v decimal.Decimal) error {
	if v.IsNegative() {
		return errs.NewValueIsOutOfRangeError(name, v.String(), "0", "unbounded")
	}
	return nil
}
