package sheet

import (
	"time"

	pkgerrors "github.com/girnardairy/milkroute-backend/pkg/errors"
)

// SheetTotals is the single source of truth every consumer of a sheet reads.
// Cards, tables and exports render from this value; none of them recompute
// sums on their own.
type SheetTotals struct {
	PerProduct       map[string]int `json:"per_product"`
	TotalQuantity    int            `json:"total_quantity"`
	TotalAmountPaise int64          `json:"total_amount_paise"`
	EligibleRowCount int            `json:"eligible_row_count"`
}

// Aggregate folds rows into sheet-level totals. Pure function: calling it
// twice on an unchanged row set yields identical results.
func Aggregate(rows []*DeliveryRow) SheetTotals {
	totals := SheetTotals{PerProduct: map[string]int{}}
	for _, row := range rows {
		for code, qty := range row.Quantities {
			if qty == 0 {
				continue
			}
			totals.PerProduct[code] += qty
		}
		totals.TotalQuantity += row.TotalQuantity
		totals.TotalAmountPaise += int64(row.TotalAmount)
		if row.Eligible() {
			totals.EligibleRowCount++
		}
	}
	return totals
}

// ValidateForSave gates a save pass. Either the whole eligible set proceeds
// to materialization or none of it does; there is no partial success.
func ValidateForSave(date time.Time, area string, rows []*DeliveryRow) ([]*DeliveryRow, error) {
	if date.IsZero() || area == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery date and area are required")
	}

	eligible := make([]*DeliveryRow, 0, len(rows))
	for _, row := range rows {
		if row.Eligible() {
			eligible = append(eligible, row)
		}
	}
	if len(eligible) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoEligibleRows, "no rows with a customer and a positive quantity").
			WithDetails(map[string]any{"row_count": len(rows)})
	}
	return eligible, nil
}
