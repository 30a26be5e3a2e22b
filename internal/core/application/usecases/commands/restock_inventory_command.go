package commands

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRestockInventoryCommandIsNotConstructed = errors.New(
	"RestockInventoryCommand must be created via NewRestockInventoryCommand constructor",
)

// RestockInventoryCommand adds received units to a product stock record.
type RestockInventoryCommand struct { //nolint:recvcheck //using for validation
	productID  string
	locationID string
	quantity   int

	guard guard.ConstructorGuard
}

func NewRestockInventoryCommand(productID, locationID string, quantity int) (RestockInventoryCommand, error) {
	cmd := RestockInventoryCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setLocationID(locationID),
		cmd.setQuantity(quantity),
	); err != nil {
		return RestockInventoryCommand{}, err
	}

	return cmd, nil
}

func (c RestockInventoryCommand) Validate() error {
	return c.guard.Validate(ErrRestockInventoryCommandIsNotConstructed)
}

func (c RestockInventoryCommand) ProductID() string  { return c.productID }
func (c RestockInventoryCommand) LocationID() string { return c.locationID }
func (c RestockInventoryCommand) Quantity() int      { return c.quantity }

func (c *RestockInventoryCommand) setProductID(productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	c.productID = productID
	return nil
}

func (c *RestockInventoryCommand) setLocationID(locationID string) error {
	locationID = strings.TrimSpace(locationID)
	if locationID == "" {
		return errs.NewValueIsRequiredError("locationId")
	}
	c.locationID = locationID
	return nil
}

func (c *RestockInventoryCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	c.quantity = quantity
	return nil
}
