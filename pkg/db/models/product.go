package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/girnardairy/milkroute-backend/pkg/enums"
)

// Product is one sellable dairy product. Code is the short identifier the
// delivery sheets key quantities by (GGH, GGH450, DAHI200, ...).
type Product struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code       string            `gorm:"column:code;not null;uniqueIndex"`
	Name       string            `gorm:"column:name;not null"`
	Unit       enums.ProductUnit `gorm:"column:unit;type:text;not null;default:'packet'"`
	PricePaise int64             `gorm:"column:price_paise;not null"`
	IsActive   bool              `gorm:"column:is_active;not null;default:true"`
	Rates      []CustomerRate    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
