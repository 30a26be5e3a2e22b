package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. The shipping address is flattened into ship_*
// columns; customer_email keys the order history.
type OrderDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerEmail     string          `gorm:"type:varchar(320);not null;index:idx_orders_customer_created,priority:1"`
	ShipName          string          `gorm:"type:varchar(200)"`
	ShipStreet        string          `gorm:"type:varchar(200);not null"`
	ShipCity          string          `gorm:"type:varchar(100);not null"`
	ShipState         string          `gorm:"type:varchar(50)"`
	ShipPostalCode    string          `gorm:"type:varchar(20);not null"`
	ShipCountry       string          `gorm:"type:varchar(2);not null"`
	PaymentMethod     string          `gorm:"type:varchar(50)"`
	PaymentReference  string          `gorm:"type:varchar(100);not null"`
	Subtotal          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Shipping          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tax               decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total             decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status            int             `gorm:"not null"`
	ShipmentCount     int             `gorm:"not null"`
	EstimatedDelivery *time.Time      `gorm:"type:date"`
	CreatedAt         time.Time       `gorm:"not null;index:idx_orders_customer_created,priority:2,sort:desc"`

	LineItems      []LineItemDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShipmentGroups []ShipmentGroupDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type LineItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LineNo    int             `gorm:"primaryKey;autoIncrement:false"`
	ProductID string          `gorm:"type:varchar(100);not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// ShipmentGroupDTO keeps plan order in Seq.
type ShipmentGroupDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Seq               int             `gorm:"not null"`
	LocationID        string          `gorm:"type:varchar(100);not null"`
	CarrierID         string          `gorm:"type:varchar(100);not null"`
	ShippingCost      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ShipDate          time.Time       `gorm:"type:date;not null"`
	EstimatedDelivery time.Time       `gorm:"type:date;not null"`

	Allocations []AllocationDTO `gorm:"foreignKey:ShipmentGroupID;constraint:OnDelete:CASCADE"`
}

func (ShipmentGroupDTO) TableName() string {
	return "shipment_groups"
}

type AllocationDTO struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"`
	ShipmentGroupID uuid.UUID `gorm:"type:uuid;not null;index"`
	LineNo          int       `gorm:"not null"`
	ProductID       string    `gorm:"type:varchar(100);not null"`
	LocationID      string    `gorm:"type:varchar(100);not null"`
	Quantity        int       `gorm:"not null"`
}

func (AllocationDTO) TableName() string {
	return "shipment_allocations"
}

// Models lists every table of the Order Store for AutoMigrate.
func Models() []any {
	return []any{&OrderDTO{}, &LineItemDTO{}, &ShipmentGroupDTO{}, &AllocationDTO{}}
}
