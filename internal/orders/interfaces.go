package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/girnardairy/milkroute-backend/pkg/db/models"
	"github.com/girnardairy/milkroute-backend/pkg/enums"
)

// ListFilter narrows an order listing. Zero values mean "any".
type ListFilter struct {
	DeliveryDate *time.Time
	Area         string
	CustomerID   uuid.UUID
	Status       enums.OrderStatus
	Limit        int
}

// Repository exposes order persistence. Orders are append-only from the
// sheet side; status transitions happen through Update paths only.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enums.PaymentStatus) error
}
