package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/girnardairy/milkroute-backend/internal/sheet"
	"github.com/girnardairy/milkroute-backend/pkg/db/models"
	pkgerrors "github.com/girnardairy/milkroute-backend/pkg/errors"
)

// CreateCustomerInput holds the fields required to add a customer.
type CreateCustomerInput struct {
	Name    string
	Area    string
	Phone   *string
	Address *string
}

// UpdateCustomerInput holds mutable customer fields. Nil means unchanged.
type UpdateCustomerInput struct {
	Name     *string
	Area     *string
	Phone    *string
	Address  *string
	IsActive *bool
}

// Service exposes customer directory management. It doubles as the customer
// directory the delivery-sheet rows bind against.
type Service interface {
	CreateCustomer(ctx context.Context, input CreateCustomerInput) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*models.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	ListCustomers(ctx context.Context, area string) ([]models.Customer, error)
	FindCustomer(ctx context.Context, id uuid.UUID) (*sheet.CustomerRef, error)
}

type service struct {
	repo Repository
}

// NewService builds a customer service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*models.Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(input.Area) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "area is required")
	}

	customer := &models.Customer{
		Name:     strings.TrimSpace(input.Name),
		Area:     strings.TrimSpace(input.Area),
		Phone:    input.Phone,
		Address:  input.Address,
		IsActive: true,
	}

	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return created, nil
}

func (s *service) UpdateCustomer(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*models.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Area != nil {
		if strings.TrimSpace(*input.Area) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "area must not be empty")
		}
		customer.Area = strings.TrimSpace(*input.Area)
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer")
	}
	return customer, nil
}

func (s *service) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}
	return customer, nil
}

func (s *service) ListCustomers(ctx context.Context, area string) ([]models.Customer, error) {
	rows, err := s.repo.List(ctx, area)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	return rows, nil
}

// FindCustomer resolves the directory slice a sheet row binds to. Inactive
// customers resolve to nil so a stale row cannot bind to them.
func (s *service) FindCustomer(ctx context.Context, id uuid.UUID) (*sheet.CustomerRef, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}
	if !customer.IsActive {
		return nil, nil
	}
	return &sheet.CustomerRef{
		ID:   customer.ID,
		Name: customer.Name,
		Area: customer.Area,
	}, nil
}
