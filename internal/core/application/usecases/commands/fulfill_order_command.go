package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrFulfillOrderCommandIsNotConstructed = errors.New(
	"FulfillOrderCommand must be created via NewFulfillOrderCommand constructor",
)

// FulfillOrderCommand carries the external fulfillment-completion event.
type FulfillOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewFulfillOrderCommand(orderID kernel.UUID) (FulfillOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return FulfillOrderCommand{}, err
	}
	return FulfillOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c FulfillOrderCommand) Validate() error {
	return c.guard.Validate(ErrFulfillOrderCommandIsNotConstructed)
}

func (c FulfillOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
