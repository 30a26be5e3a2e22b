package stockrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// checkViolation is the PostgreSQL SQLSTATE for a failed CHECK constraint.
const checkViolation = "23514"

// GormStockLedger is the Inventory Ledger on top of GORM. Reserve is a set of
// conditional decrements in one transaction, so two concurrent reservations
// can never both take the last unit.
//
// Example:
//
//	ledger := stockrepo.NewGormStockLedger(db)
//	err := ledger.Reserve(ctx, []inventory.ReservationItem{
//	    {ProductID: "P", LocationID: "L1", Quantity: 2},
//	})
//	if errors.Is(err, inventory.ErrInsufficientStock) {
//	    // nothing was decremented
//	}
type GormStockLedger struct {
	db *gorm.DB
}

func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// Snapshot reads every location stocking productID, ordered by location.
func (l *GormStockLedger) Snapshot(ctx context.Context, productID string) ([]inventory.StockLevel, error) {
	var dtos []StockRecordDTO
	err := l.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("location_id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	levels := make([]inventory.StockLevel, 0, len(dtos))
	for _, dto := range dtos {
		level, err := dto.level()
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, nil
}

// Reserve decrements every item or none. Items are merged and applied in
// (product, location) order so concurrent reservations lock rows in the same
// sequence.
func (l *GormStockLedger) Reserve(ctx context.Context, items []inventory.ReservationItem) error {
	if err := inventory.ValidateItems(items); err != nil {
		return err
	}
	merged := inventory.MergeItems(items)

	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, it := range merged {
			result := tx.Model(&StockRecordDTO{}).
				Where("product_id = ? AND location_id = ? AND quantity_on_hand >= ?",
					it.ProductID, it.LocationID, it.Quantity).
				Update("quantity_on_hand", gorm.Expr("quantity_on_hand - ?", it.Quantity))
			if result.Error != nil {
				return translate(result.Error, it)
			}
			if result.RowsAffected == 0 {
				available, err := onHand(tx, it.ProductID, it.LocationID)
				if err != nil {
					return err
				}
				return inventory.NewInsufficientStockError(it.ProductID, it.LocationID, it.Quantity, available)
			}
		}
		return nil
	})
}

// Release returns reserved units. Every record must exist.
func (l *GormStockLedger) Release(ctx context.Context, items []inventory.ReservationItem) error {
	if err := inventory.ValidateItems(items); err != nil {
		return err
	}

	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, it := range inventory.MergeItems(items) {
			result := tx.Model(&StockRecordDTO{}).
				Where("product_id = ? AND location_id = ?", it.ProductID, it.LocationID).
				Update("quantity_on_hand", gorm.Expr("quantity_on_hand + ?", it.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return errs.NewObjectNotFoundError("stock", it.ProductID+"@"+it.LocationID)
			}
		}
		return nil
	})
}

// Restock adds quantity to a record, creating it on first delivery.
func (l *GormStockLedger) Restock(
	ctx context.Context,
	productID, locationID string,
	quantity int,
) (inventory.StockLevel, error) {
	productID, locationID = strings.TrimSpace(productID), strings.TrimSpace(locationID)
	if err := inventory.ValidateItems([]inventory.ReservationItem{
		{ProductID: productID, LocationID: locationID, Quantity: quantity},
	}); err != nil {
		return inventory.StockLevel{}, err
	}

	dto := StockRecordDTO{
		ProductID:      productID,
		LocationID:     locationID,
		QuantityOnHand: quantity,
		UpdatedAt:      time.Now().UTC(),
	}

	var stored StockRecordDTO
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}, {Name: "location_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity_on_hand": gorm.Expr("stock_records.quantity_on_hand + EXCLUDED.quantity_on_hand"),
				"updated_at":       dto.UpdatedAt,
			}),
		}).Create(&dto).Error
		if err != nil {
			return err
		}
		return tx.Where("product_id = ? AND location_id = ?", productID, locationID).First(&stored).Error
	})
	if err != nil {
		return inventory.StockLevel{}, err
	}

	return stored.level()
}

func onHand(tx *gorm.DB, productID, locationID string) (int, error) {
	var dto StockRecordDTO
	err := tx.Where("product_id = ? AND location_id = ?", productID, locationID).Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return dto.QuantityOnHand, nil
}

// translate turns a CHECK violation on stock_records into insufficient stock.
func translate(err error, it inventory.ReservationItem) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == checkViolation {
		return errors.Join(inventory.NewInsufficientStockError(it.ProductID, it.LocationID, it.Quantity, 0), err)
	}
	return err
}
