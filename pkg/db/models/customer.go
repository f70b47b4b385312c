package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is one delivery customer in the directory.
type Customer struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string         `gorm:"column:name;not null"`
	Area      string         `gorm:"column:area;not null"`
	Phone     *string        `gorm:"column:phone"`
	Address   *string        `gorm:"column:address"`
	IsActive  bool           `gorm:"column:is_active;not null;default:true"`
	Rates     []CustomerRate `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
