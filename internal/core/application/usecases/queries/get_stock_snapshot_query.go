package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetStockSnapshotQueryIsNotConstructed = errors.New(
	"GetStockSnapshotQuery must be created via NewGetStockSnapshotQuery constructor",
)

// GetStockSnapshotQuery asks for the per-location stock of one product.
type GetStockSnapshotQuery struct { //nolint:recvcheck //using for validation
	productID string

	guard guard.ConstructorGuard
}

func NewGetStockSnapshotQuery(productID string) (GetStockSnapshotQuery, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return GetStockSnapshotQuery{}, errs.NewValueIsRequiredError("productId")
	}
	return GetStockSnapshotQuery{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStockSnapshotQuery) Validate() error {
	return q.guard.Validate(ErrGetStockSnapshotQueryIsNotConstructed)
}

func (q GetStockSnapshotQuery) ProductID() string {
	return q.productID
}
