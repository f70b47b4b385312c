package sheet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/girnardairy/milkroute-backend/internal/sheet"
	pkgerrors "github.com/girnardairy/milkroute-backend/pkg/errors"
	"github.com/girnardairy/milkroute-backend/pkg/money"
)

// Every entry surface describing the same deliveries must normalize to the
// same totals, because they all funnel through the same row operations.
func TestAdapterEquivalence(t *testing.T) {
	snap := testSnapshot()
	dir := newStubDirectory()
	ctx := context.Background()

	sources := map[string]sheet.RowSource{
		"column grid": sheet.ColumnGrid{
			Columns: []string{"GGH", "GGH450"},
			Rows: []sheet.ColumnGridRow{
				{CustomerID: rameshID, Cells: []float64{3, 2}},
				{CustomerID: sunitaID, Cells: []float64{1, 0}},
			},
		},
		"spreadsheet": sheet.Spreadsheet{
			Cells: []sheet.SpreadsheetCell{
				{CustomerID: rameshID, ProductCode: "GGH", Quantity: 3},
				{CustomerID: rameshID, ProductCode: "GGH450", Quantity: 2},
				{CustomerID: sunitaID, ProductCode: "GGH", Quantity: 1},
			},
		},
		"bulk grid": sheet.BulkGrid{
			Entries: []sheet.BulkEntry{
				{CustomerID: rameshID, Delivered: true, Quantities: map[string]float64{"GGH": 3, "GGH450": 2}},
				{CustomerID: sunitaID, Delivered: false, Quantities: map[string]float64{"GGH": 1}},
			},
		},
	}

	for name, source := range sources {
		t.Run(name, func(t *testing.T) {
			rows, err := source.BuildRows(ctx, snap, dir)
			require.NoError(t, err)
			require.Len(t, rows, 2)

			totals := sheet.Aggregate(rows)
			assert.Equal(t, map[string]int{"GGH": 4, "GGH450": 2}, totals.PerProduct)
			assert.Equal(t, 6, totals.TotalQuantity)
			assert.Equal(t, int64(37000), totals.TotalAmountPaise)
			assert.Equal(t, 2, totals.EligibleRowCount)

			assert.Equal(t, rameshID, rows[0].CustomerID)
			assert.Equal(t, money.Paise(31000), rows[0].TotalAmount)
		})
	}
}

func TestEntryFormBuildsSingleRow(t *testing.T) {
	form := sheet.EntryForm{
		CustomerID: rameshID,
		Lines: []sheet.EntryLine{
			{ProductCode: "GGH", Quantity: 3},
			{ProductCode: "GGH450", Quantity: 2},
		},
	}

	rows, err := form.BuildRows(context.Background(), testSnapshot(), newStubDirectory())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].TotalQuantity)
	assert.Equal(t, money.Paise(31000), rows[0].TotalAmount)
}

func TestColumnGridCellCountMismatch(t *testing.T) {
	grid := sheet.ColumnGrid{
		Columns: []string{"GGH", "GGH450"},
		Rows:    []sheet.ColumnGridRow{{CustomerID: rameshID, Cells: []float64{3}}},
	}

	_, err := grid.BuildRows(context.Background(), testSnapshot(), newStubDirectory())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestSpreadsheetLaterCellOverwrites(t *testing.T) {
	sheetSrc := sheet.Spreadsheet{
		Cells: []sheet.SpreadsheetCell{
			{CustomerID: rameshID, ProductCode: "GGH", Quantity: 9},
			{CustomerID: rameshID, ProductCode: "GGH", Quantity: 3},
		},
	}

	rows, err := sheetSrc.BuildRows(context.Background(), testSnapshot(), newStubDirectory())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Quantities["GGH"])
}

func TestBulkGridDeliveredFlagDoesNotGateQuantities(t *testing.T) {
	grid := sheet.BulkGrid{
		Entries: []sheet.BulkEntry{
			{CustomerID: rameshID, Delivered: false, Quantities: map[string]float64{"GGH": 2}},
		},
	}

	rows, err := grid.BuildRows(context.Background(), testSnapshot(), newStubDirectory())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Eligible())
	assert.Equal(t, 2, rows[0].TotalQuantity)
}

func TestAdapterRejectsUnknownCode(t *testing.T) {
	form := sheet.EntryForm{
		CustomerID: rameshID,
		Lines:      []sheet.EntryLine{{ProductCode: "GHEE", Quantity: 1}},
	}

	_, err := form.BuildRows(context.Background(), testSnapshot(), newStubDirectory())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnknownProduct, pkgerrors.As(err).Code())
}
