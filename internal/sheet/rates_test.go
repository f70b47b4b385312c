package sheet_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/girnardairy/milkroute-backend/pkg/db/models"
	pkgerrors "github.com/girnardairy/milkroute-backend/pkg/errors"
	"github.com/girnardairy/milkroute-backend/pkg/money"
)

func TestResolveBasePrice(t *testing.T) {
	snap := testSnapshot()

	rate, err := snap.Resolve("GGH", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, money.Paise(6000), rate.PricePaise)
	assert.Equal(t, "Gir Gold Half Litre", rate.Name)
	assert.Equal(t, ggahID, rate.ProductID)
}

func TestResolveCustomerOverride(t *testing.T) {
	snap := testSnapshot(models.CustomerRate{
		CustomerID: rameshID,
		ProductID:  ggahID,
		PricePaise: 5500,
		IsActive:   true,
	})

	rate, err := snap.Resolve("GGH", rameshID)
	require.NoError(t, err)
	assert.Equal(t, money.Paise(5500), rate.PricePaise)

	// Other customers and the detached row keep the base price.
	rate, err = snap.Resolve("GGH", sunitaID)
	require.NoError(t, err)
	assert.Equal(t, money.Paise(6000), rate.PricePaise)

	rate, err = snap.Resolve("GGH", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, money.Paise(6000), rate.PricePaise)
}

func TestResolveIgnoresInactiveOverride(t *testing.T) {
	snap := testSnapshot(models.CustomerRate{
		CustomerID: rameshID,
		ProductID:  ggahID,
		PricePaise: 100,
		IsActive:   false,
	})

	rate, err := snap.Resolve("GGH", rameshID)
	require.NoError(t, err)
	assert.Equal(t, money.Paise(6000), rate.PricePaise)
}

func TestResolveUnknownCode(t *testing.T) {
	snap := testSnapshot()

	_, err := snap.Resolve("GHEE", rameshID)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnknownProduct, typed.Code())

	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "GHEE", details["product_code"])
}

func TestCodesSorted(t *testing.T) {
	snap := testSnapshot()
	assert.Equal(t, []string{"GGH", "GGH450", "PNR"}, snap.Codes())
}
