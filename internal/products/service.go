package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/girnardairy/milkroute-backend/pkg/db"
	"github.com/girnardairy/milkroute-backend/pkg/db/models"
	"github.com/girnardairy/milkroute-backend/pkg/enums"
	pkgerrors "github.com/girnardairy/milkroute-backend/pkg/errors"
	"github.com/girnardairy/milkroute-backend/pkg/money"
)

// CreateProductInput holds the fields required to add a product.
type CreateProductInput struct {
	Code        string
	Name        string
	Unit        enums.ProductUnit
	PriceRupees decimal.Decimal
}

// UpdateProductInput holds mutable product fields. Nil means unchanged.
type UpdateProductInput struct {
	Name        *string
	Unit        *enums.ProductUnit
	PriceRupees *decimal.Decimal
	IsActive    *bool
}

// RateInput sets or clears a customer-specific price for one product.
type RateInput struct {
	PriceRupees decimal.Decimal
	IsActive    bool
}

// Service exposes product directory and rate management. It also feeds the
// delivery-sheet rate snapshot.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	SetCustomerRate(ctx context.Context, productID, customerID uuid.UUID, input RateInput) (*models.CustomerRate, error)
	ListActiveProducts(ctx context.Context) ([]models.Product, error)
	ListActiveCustomerRates(ctx context.Context) ([]models.CustomerRate, error)
}

type customerFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

type service struct {
	repo      Repository
	customers customerFinder
}

// NewService builds a product service backed by the provided repositories.
func NewService(repo Repository, customers customerFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	return &service{repo: repo, customers: customers}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "code is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.Unit.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid unit")
	}
	if input.PriceRupees.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	product := &models.Product{
		Code:       code,
		Name:       strings.TrimSpace(input.Name),
		Unit:       input.Unit,
		PricePaise: int64(money.FromRupees(input.PriceRupees)),
		IsActive:   true,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product code already exists").
				WithDetails(map[string]any{"code": code})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Unit != nil {
		if !input.Unit.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid unit")
		}
		product.Unit = *input.Unit
	}
	if input.PriceRupees != nil {
		if input.PriceRupees.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		product.PricePaise = int64(money.FromRupees(*input.PriceRupees))
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return product, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup product")
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, nil
}

func (s *service) SetCustomerRate(ctx context.Context, productID, customerID uuid.UUID, input RateInput) (*models.CustomerRate, error) {
	if input.PriceRupees.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}

	rate := &models.CustomerRate{
		ID:         uuid.New(),
		CustomerID: customerID,
		ProductID:  productID,
		PricePaise: int64(money.FromRupees(input.PriceRupees)),
		IsActive:   input.IsActive,
	}
	saved, err := s.repo.UpsertCustomerRate(ctx, rate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert customer rate")
	}
	return saved, nil
}

func (s *service) ListActiveProducts(ctx context.Context) ([]models.Product, error) {
	return s.ListProducts(ctx)
}

func (s *service) ListActiveCustomerRates(ctx context.Context) ([]models.CustomerRate, error) {
	rows, err := s.repo.ListActiveCustomerRates(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer rates")
	}
	return rows, nil
}
