package stockrepo

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
)

// StockRecordDTO is one stock_records row. The CHECK constraint backs the
// conditional decrement in Reserve: on-hand can never go negative.
type StockRecordDTO struct {
	ProductID      string    `gorm:"type:varchar(100);primaryKey"`
	LocationID     string    `gorm:"type:varchar(100);primaryKey"`
	QuantityOnHand int       `gorm:"not null;default:0;check:chk_stock_records_on_hand,quantity_on_hand >= 0"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (StockRecordDTO) TableName() string {
	return "stock_records"
}

// level rebuilds the row as a StockRecord so a corrupt row surfaces as an
// error instead of reaching the planner.
func (dto StockRecordDTO) level() (inventory.StockLevel, error) {
	rec, err := inventory.NewStockRecord(dto.ProductID, dto.LocationID, dto.QuantityOnHand)
	if err != nil {
		return inventory.StockLevel{}, fmt.Errorf("stock record %s@%s: %w", dto.ProductID, dto.LocationID, err)
	}
	return rec.Level(), nil
}
