package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository is the Order Store on top of GORM. An order is written
// once with its line items and plan; later writes only move the status.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order row together with its line items, shipment groups
// and allocations.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the current status of an existing order.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{"status": int(aggregate.Status())})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("order", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with line items and plan in their stored order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(id, r.db.WithContext(ctx))
}

// GetForUpdate is Get under SELECT ... FOR UPDATE. The row stays locked
// until the surrounding transaction ends, so two transitions of the same
// order are applied one after the other.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(id, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}))
}

func (r *GormOrderRepository) load(id kernel.UUID, query *gorm.DB) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := query.
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_no")
		}).
		Preload("ShipmentGroups", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq")
		}).
		Preload("ShipmentGroups.Allocations", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByCustomerEmail returns at most limit summaries for email, most recent
// first. Ties on creation time are broken by id so paging is stable.
func (r *GormOrderRepository) ListByCustomerEmail(
	ctx context.Context,
	email string,
	limit int,
) ([]order.Summary, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Select("id", "status", "total", "shipment_count", "estimated_delivery", "created_at").
		Where("customer_email = ?", email).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]order.Summary, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		if err = order.Status(dto.Status).Validate(); err != nil {
			return nil, err
		}
		s := order.Summary{
			OrderID:       id,
			Status:        order.Status(dto.Status),
			Total:         dto.Total,
			ShipmentCount: dto.ShipmentCount,
			CreatedAt:     dto.CreatedAt.UTC(),
		}
		if dto.EstimatedDelivery != nil {
			s.EstimatedDelivery = asDate(*dto.EstimatedDelivery)
		}
		summaries = append(summaries, s)
	}

	return summaries, nil
}
