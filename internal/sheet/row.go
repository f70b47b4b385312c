package sheet

import (
	"context"
	"math"

	"github.com/google/uuid"

	pkgerrors "github.com/girnardairy/milkroute-backend/pkg/errors"
	"github.com/girnardairy/milkroute-backend/pkg/money"
)

// CustomerRef is the slice of the customer directory a row needs.
type CustomerRef struct {
	ID   uuid.UUID
	Name string
	Area string
}

// CustomerDirectory is the boundary to the customer store.
type CustomerDirectory interface {
	FindCustomer(ctx context.Context, id uuid.UUID) (*CustomerRef, error)
}

// DeliveryRow is one customer's line on a delivery sheet: a quantity per
// product code plus derived totals. Totals are recomputed from the full
// quantity map on every mutation; the legacy screens patched them
// incrementally and drifted after edits to stale fields.
type DeliveryRow struct {
	ID            uuid.UUID       `json:"id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	Area          string          `json:"area"`
	Quantities    map[string]int  `json:"quantities"`
	TotalQuantity int             `json:"total_quantity"`
	TotalAmount   money.Paise     `json:"total_amount_paise"`

	rates *RateSnapshot
}

// NewRow creates an empty row priced against the given snapshot.
func NewRow(rates *RateSnapshot) *DeliveryRow {
	return &DeliveryRow{
		ID:         uuid.New(),
		Quantities: map[string]int{},
		rates:      rates,
	}
}

// maxQuantity caps a single cell. No delivery route moves a million units
// of anything; values past this are typos, and letting them through would
// overflow the int conversion and the paise multiplication downstream.
const maxQuantity = 1_000_000

// CoerceQuantity maps raw numeric input to a usable quantity. Quantity
// fields accept anything the user types, so negative, NaN, infinite and
// absurdly large values become zero instead of an error; fractions truncate.
func CoerceQuantity(raw float64) int {
	if math.IsNaN(raw) || math.IsInf(raw, 0) || raw < 0 || raw > maxQuantity {
		return 0
	}
	return int(raw)
}

// SetQuantity updates one product's quantity and recomputes both totals.
// An unknown product code is rejected before the row is touched, so a row
// can never carry an unpriced quantity.
func (r *DeliveryRow) SetQuantity(code string, qty float64) error {
	if !r.rates.Known(code) {
		_, err := r.rates.Resolve(code, r.CustomerID)
		return err
	}
	r.Quantities[code] = CoerceQuantity(qty)
	return r.recompute()
}

// SetCustomer rebinds the row to a different customer and recomputes totals,
// because customer-specific overrides may change every unit price on the
// row. A nil id detaches the row (kept while the operator is still picking).
func (r *DeliveryRow) SetCustomer(ctx context.Context, customerID uuid.UUID, dir CustomerDirectory) error {
	if customerID == uuid.Nil {
		r.CustomerID = uuid.Nil
		r.CustomerName = ""
		r.Area = ""
		return r.recompute()
	}

	ref, err := dir.FindCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	if ref == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}

	r.CustomerID = ref.ID
	r.CustomerName = ref.Name
	r.Area = ref.Area
	return r.recompute()
}

// Eligible reports whether the row qualifies for materialization: a bound
// customer and at least one unit to deliver.
func (r *DeliveryRow) Eligible() bool {
	return r.CustomerID != uuid.Nil && r.TotalQuantity > 0
}

func (r *DeliveryRow) recompute() error {
	totalQty := 0
	totalAmount := money.Paise(0)
	for code, qty := range r.Quantities {
		rate, err := r.rates.Resolve(code, r.CustomerID)
		if err != nil {
			return err
		}
		totalQty += qty
		totalAmount = totalAmount.Add(rate.PricePaise.Mul(qty))
	}
	r.TotalQuantity = totalQty
	r.TotalAmount = totalAmount
	return nil
}
