package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/girnardairy/milkroute-backend/pkg/enums"
)

// OrderLineItem captures the priced snapshot of one product on an order.
// TotalPaise is always Qty * RatePaise; the rate is the one that priced the
// originating sheet row, never re-resolved at save time.
type OrderLineItem struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	OrderID     uuid.UUID         `gorm:"column:order_id;type:uuid;not null"`
	ProductID   uuid.UUID         `gorm:"column:product_id;type:uuid;not null"`
	ProductName string            `gorm:"column:product_name;not null"`
	ProductCode string            `gorm:"column:product_code;not null"`
	Unit        enums.ProductUnit `gorm:"column:unit;type:text;not null"`
	Qty         int               `gorm:"column:qty;not null"`
	RatePaise   int64             `gorm:"column:rate_paise;not null"`
	TotalPaise  int64             `gorm:"column:total_paise;not null"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
