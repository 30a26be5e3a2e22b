package inventory_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockRecord(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		rec, err := inventory.NewStockRecord("sku-1", "wh-east", 5)

		require.NoError(t, err)
		require.NoError(t, rec.Validate())
		assert.Equal(t, "sku-1", rec.ProductID())
		assert.Equal(t, "wh-east", rec.LocationID())
		assert.Equal(t, 5, rec.QuantityOnHand())
		assert.Equal(t, inventory.StockLevel{LocationID: "wh-east", QuantityOnHand: 5}, rec.Level())
	})

	t.Run("rejects negative quantity and blank ids", func(t *testing.T) {
		_, err := inventory.NewStockRecord(" ", "", -1)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStockRecord_Validate(t *testing.T) {
	var rec inventory.StockRecord
	require.ErrorIs(t, rec.Validate(), inventory.ErrStockRecordIsNotConstructed)

	var nilRec *inventory.StockRecord
	require.ErrorIs(t, nilRec.Validate(), inventory.ErrStockRecordIsNotConstructed)
}

func TestStockRecord_ReserveRelease(t *testing.T) {
	t.Run("reserve then release restores quantity", func(t *testing.T) {
		rec, _ := inventory.NewStockRecord("sku-1", "wh-east", 5)

		require.NoError(t, rec.Reserve(3))
		assert.Equal(t, 2, rec.QuantityOnHand())
		require.NoError(t, rec.Release(3))
		assert.Equal(t, 5, rec.QuantityOnHand())
	})

	t.Run("reserve of exactly on-hand empties record", func(t *testing.T) {
		rec, _ := inventory.NewStockRecord("sku-1", "wh-east", 5)

		require.NoError(t, rec.Reserve(5))
		assert.Equal(t, 0, rec.QuantityOnHand())
	})

	t.Run("over-reserve fails and leaves record unchanged", func(t *testing.T) {
		rec, _ := inventory.NewStockRecord("sku-1", "wh-east", 5)

		err := rec.Reserve(6)

		var insufficient *inventory.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		require.ErrorIs(t, err, inventory.ErrInsufficientStock)
		assert.Equal(t, 6, insufficient.Requested)
		assert.Equal(t, 5, insufficient.Available)
		assert.Equal(t, 5, rec.QuantityOnHand())
	})

	t.Run("non-positive quantities are invalid", func(t *testing.T) {
		rec, _ := inventory.NewStockRecord("sku-1", "wh-east", 5)

		require.ErrorIs(t, rec.Reserve(0), errs.ErrValueIsInvalid)
		require.ErrorIs(t, rec.Release(-2), errs.ErrValueIsInvalid)
		require.ErrorIs(t, rec.Restock(0), errs.ErrValueIsInvalid)
	})
}

func TestInsufficientStockError_Error(t *testing.T) {
	err := inventory.NewInsufficientStockError("sku-1", "wh-east", 6, 5)
	assert.Equal(t, "insufficient stock: product sku-1 at location wh-east: requested 6, available 5", err.Error())
}
