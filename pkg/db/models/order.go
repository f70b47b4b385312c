package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/girnardairy/milkroute-backend/pkg/enums"
)

// Order is the durable output of a delivery-sheet save: one order per
// eligible sheet row, with a snapshot of the customer at that moment.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID    uuid.UUID           `gorm:"column:customer_id;type:uuid;not null"`
	CustomerName  string              `gorm:"column:customer_name;not null"`
	Area          string              `gorm:"column:area;not null"`
	DeliveryDate  time.Time           `gorm:"column:delivery_date;not null"`
	Status        enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	TotalQty      int                 `gorm:"column:total_qty;not null"`
	AmountPaise   int64               `gorm:"column:amount_paise;not null"`
	Notes         *string             `gorm:"column:notes"`
	Items         []OrderLineItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
