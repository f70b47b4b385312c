package sheet

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	pkgerrors "github.com/girnardairy/milkroute-backend/pkg/errors"
)

// RowSource turns one entry surface's raw shape into delivery rows. Every
// adapter goes through NewRow, SetCustomer and SetQuantity, so the four
// entry modes cannot diverge on coercion or pricing.
type RowSource interface {
	BuildRows(ctx context.Context, rates *RateSnapshot, dir CustomerDirectory) ([]*DeliveryRow, error)
}

// ColumnGrid is the classic sheet layout: a fixed set of product columns
// and one cell per column per row.
type ColumnGrid struct {
	Columns []string        `json:"columns"`
	Rows    []ColumnGridRow `json:"rows"`
}

type ColumnGridRow struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Cells      []float64 `json:"cells"`
}

func (g ColumnGrid) BuildRows(ctx context.Context, rates *RateSnapshot, dir CustomerDirectory) ([]*DeliveryRow, error) {
	rows := make([]*DeliveryRow, 0, len(g.Rows))
	for i, gr := range g.Rows {
		if len(gr.Cells) != len(g.Columns) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("row %d has %d cells for %d columns", i, len(gr.Cells), len(g.Columns)))
		}
		row := NewRow(rates)
		if err := row.SetCustomer(ctx, gr.CustomerID, dir); err != nil {
			return nil, err
		}
		for j, code := range g.Columns {
			if err := row.SetQuantity(code, gr.Cells[j]); err != nil {
				return nil, err
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// EntryForm is the single-customer form: one customer, a list of product
// lines. It produces exactly one row.
type EntryForm struct {
	CustomerID uuid.UUID   `json:"customer_id"`
	Lines      []EntryLine `json:"lines"`
}

type EntryLine struct {
	ProductCode string  `json:"product_code"`
	Quantity    float64 `json:"quantity"`
}

func (f EntryForm) BuildRows(ctx context.Context, rates *RateSnapshot, dir CustomerDirectory) ([]*DeliveryRow, error) {
	row := NewRow(rates)
	if err := row.SetCustomer(ctx, f.CustomerID, dir); err != nil {
		return nil, err
	}
	for _, line := range f.Lines {
		if err := row.SetQuantity(line.ProductCode, line.Quantity); err != nil {
			return nil, err
		}
	}
	return []*DeliveryRow{row}, nil
}

// Spreadsheet is the free-form cell list produced by the paste/import
// surface. Cells are grouped into one row per customer, in first-seen
// order; a later cell for the same customer and product overwrites the
// earlier one, matching how a paste fixes a typo.
type Spreadsheet struct {
	Cells []SpreadsheetCell `json:"cells"`
}

type SpreadsheetCell struct {
	CustomerID  uuid.UUID `json:"customer_id"`
	ProductCode string    `json:"product_code"`
	Quantity    float64   `json:"quantity"`
}

func (s Spreadsheet) BuildRows(ctx context.Context, rates *RateSnapshot, dir CustomerDirectory) ([]*DeliveryRow, error) {
	byCustomer := make(map[uuid.UUID]*DeliveryRow)
	var order []uuid.UUID

	for _, cell := range s.Cells {
		row, ok := byCustomer[cell.CustomerID]
		if !ok {
			row = NewRow(rates)
			if err := row.SetCustomer(ctx, cell.CustomerID, dir); err != nil {
				return nil, err
			}
			byCustomer[cell.CustomerID] = row
			order = append(order, cell.CustomerID)
		}
		if err := row.SetQuantity(cell.ProductCode, cell.Quantity); err != nil {
			return nil, err
		}
	}

	rows := make([]*DeliveryRow, 0, len(order))
	for _, id := range order {
		rows = append(rows, byCustomer[id])
	}
	return rows, nil
}

// BulkGrid is the route-wide tick sheet: every customer on the route with a
// delivered flag and a quantity map. The flag is operator bookkeeping and
// does not change normalization; an unticked row with quantities still
// counts, an empty ticked row is still ineligible.
type BulkGrid struct {
	Entries []BulkEntry `json:"entries"`
}

type BulkEntry struct {
	CustomerID uuid.UUID          `json:"customer_id"`
	Delivered  bool               `json:"delivered"`
	Quantities map[string]float64 `json:"quantities"`
}

func (b BulkGrid) BuildRows(ctx context.Context, rates *RateSnapshot, dir CustomerDirectory) ([]*DeliveryRow, error) {
	rows := make([]*DeliveryRow, 0, len(b.Entries))
	for _, entry := range b.Entries {
		row := NewRow(rates)
		if err := row.SetCustomer(ctx, entry.CustomerID, dir); err != nil {
			return nil, err
		}

		codes := make([]string, 0, len(entry.Quantities))
		for code := range entry.Quantities {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		for _, code := range codes {
			if err := row.SetQuantity(code, entry.Quantities[code]); err != nil {
				return nil, err
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
