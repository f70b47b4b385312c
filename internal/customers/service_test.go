package customers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/girnardairy/milkroute-backend/pkg/errors"
)

func setupCustomersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	table := `
CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  area TEXT NOT NULL,
  phone TEXT,
  address TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(table).Error)
	return db
}

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(setupCustomersTestDB(t)))
	require.NoError(t, err)
	return svc
}

func TestCreateCustomerValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, CreateCustomerInput{Name: "", Area: "Talala"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.CreateCustomer(ctx, CreateCustomerInput{Name: "Ramesh", Area: "  "})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateAndGetCustomer(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCustomer(ctx, CreateCustomerInput{Name: "  Ramesh Patel ", Area: "Talala"})
	require.NoError(t, err)
	assert.Equal(t, "Ramesh Patel", created.Name)
	assert.True(t, created.IsActive)

	found, err := svc.GetCustomer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestGetCustomerNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetCustomer(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListCustomersByArea(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, CreateCustomerInput{Name: "Ramesh Patel", Area: "Talala"})
	require.NoError(t, err)
	_, err = svc.CreateCustomer(ctx, CreateCustomerInput{Name: "Sunita Joshi", Area: "Veraval"})
	require.NoError(t, err)

	all, err := svc.ListCustomers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	talala, err := svc.ListCustomers(ctx, "Talala")
	require.NoError(t, err)
	require.Len(t, talala, 1)
	assert.Equal(t, "Ramesh Patel", talala[0].Name)
}

func TestFindCustomerSkipsInactive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCustomer(ctx, CreateCustomerInput{Name: "Ramesh Patel", Area: "Talala"})
	require.NoError(t, err)

	ref, err := svc.FindCustomer(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "Talala", ref.Area)

	inactive := false
	_, err = svc.UpdateCustomer(ctx, created.ID, UpdateCustomerInput{IsActive: &inactive})
	require.NoError(t, err)

	ref, err = svc.FindCustomer(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, ref)
}

func TestFindCustomerUnknownIsNil(t *testing.T) {
	svc := newTestService(t)

	ref, err := svc.FindCustomer(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, ref)
}
