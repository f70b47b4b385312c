package sheet_test

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/girnardairy/milkroute-backend/internal/sheet"
	"github.com/girnardairy/milkroute-backend/pkg/db/models"
	pkgerrors "github.com/girnardairy/milkroute-backend/pkg/errors"
	"github.com/girnardairy/milkroute-backend/pkg/logger"
)

type stubProductSource struct {
	products  []models.Product
	overrides []models.CustomerRate
	err       error
}

func (s *stubProductSource) ListActiveProducts(context.Context) ([]models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func (s *stubProductSource) ListActiveCustomerRates(context.Context) ([]models.CustomerRate, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.overrides, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, store *stubOrderStore, maxRows int) *sheet.Service {
	t.Helper()
	svc, err := sheet.NewService(&stubProductSource{products: testProducts()}, store, nil, testLogger(), maxRows)
	require.NoError(t, err)
	return svc
}

func testInput(source sheet.RowSource) sheet.Input {
	return sheet.Input{
		Date:   time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		Area:   "Talala",
		Source: source,
	}
}

func TestNewServiceRequiresDeps(t *testing.T) {
	store := &stubOrderStore{}
	products := &stubProductSource{}
	logg := testLogger()

	_, err := sheet.NewService(nil, store, nil, logg, 10)
	assert.Error(t, err)
	_, err = sheet.NewService(products, nil, nil, logg, 10)
	assert.Error(t, err)
	_, err = sheet.NewService(products, store, nil, nil, 10)
	assert.Error(t, err)
	_, err = sheet.NewService(products, store, nil, logg, 0)
	assert.Error(t, err)
}

func TestTotalsDoesNotPersist(t *testing.T) {
	store := &stubOrderStore{}
	svc := newTestService(t, store, 100)

	preview, err := svc.Totals(context.Background(), testInput(sheet.EntryForm{
		CustomerID: rameshID,
		Lines:      []sheet.EntryLine{{ProductCode: "GGH", Quantity: 3}, {ProductCode: "GGH450", Quantity: 2}},
	}), newStubDirectory())
	require.NoError(t, err)

	assert.Equal(t, 5, preview.Totals.TotalQuantity)
	assert.Equal(t, int64(31000), preview.Totals.TotalAmountPaise)
	assert.Len(t, preview.Rows, 1)
	assert.Zero(t, store.calls, "totals must not touch the order store")
}

func TestSaveMaterializesEligibleRows(t *testing.T) {
	store := &stubOrderStore{}
	svc := newTestService(t, store, 100)

	summary, err := svc.Save(context.Background(), testInput(sheet.ColumnGrid{
		Columns: []string{"GGH", "GGH450"},
		Rows: []sheet.ColumnGridRow{
			{CustomerID: rameshID, Cells: []float64{3, 2}},
			{CustomerID: sunitaID, Cells: []float64{0, 0}}, // empty, skipped
		},
	}), newStubDirectory())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.CreatedCount)
	require.Len(t, summary.OrderIDs, 1)
	assert.Equal(t, int64(31000), summary.Totals.TotalAmountPaise)
	require.Len(t, store.created, 1)
	assert.Equal(t, summary.OrderIDs[0], store.created[0].ID)
}

func TestSaveRejectsMissingHeader(t *testing.T) {
	store := &stubOrderStore{}
	svc := newTestService(t, store, 100)

	in := testInput(sheet.EntryForm{
		CustomerID: rameshID,
		Lines:      []sheet.EntryLine{{ProductCode: "GGH", Quantity: 1}},
	})
	in.Area = ""

	_, err := svc.Save(context.Background(), in, newStubDirectory())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Zero(t, store.calls)
}

func TestSaveRejectsWhenNothingEligible(t *testing.T) {
	store := &stubOrderStore{}
	svc := newTestService(t, store, 100)

	_, err := svc.Save(context.Background(), testInput(sheet.EntryForm{
		CustomerID: rameshID,
		Lines:      []sheet.EntryLine{{ProductCode: "GGH", Quantity: 0}},
	}), newStubDirectory())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNoEligibleRows, pkgerrors.As(err).Code())
	assert.Zero(t, store.calls)
}

func TestSaveEnforcesRowLimit(t *testing.T) {
	store := &stubOrderStore{}
	svc := newTestService(t, store, 1)

	grid := sheet.ColumnGrid{
		Columns: []string{"GGH"},
		Rows: []sheet.ColumnGridRow{
			{CustomerID: rameshID, Cells: []float64{1}},
			{CustomerID: sunitaID, Cells: []float64{1}},
		},
	}

	_, err := svc.Save(context.Background(), testInput(grid), newStubDirectory())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Zero(t, store.calls)
}

func TestSaveSurfacesStoreFailure(t *testing.T) {
	store := &stubOrderStore{failAt: 1}
	svc := newTestService(t, store, 100)

	_, err := svc.Save(context.Background(), testInput(sheet.EntryForm{
		CustomerID: rameshID,
		Lines:      []sheet.EntryLine{{ProductCode: "GGH", Quantity: 1}},
	}), newStubDirectory())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestSaveSurfacesSnapshotFailure(t *testing.T) {
	source := &stubProductSource{err: fmt.Errorf("db down")}
	svc, err := sheet.NewService(source, &stubOrderStore{}, nil, testLogger(), 100)
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), testInput(sheet.EntryForm{CustomerID: rameshID}), newStubDirectory())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}
