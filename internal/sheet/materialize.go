package sheet

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/girnardairy/milkroute-backend/pkg/db/models"
	"github.com/girnardairy/milkroute-backend/pkg/enums"
	pkgerrors "github.com/girnardairy/milkroute-backend/pkg/errors"
)

// OrderStore is the append-only persistence boundary for materialized
// orders. It is the arbiter of what "committed" means: rows persisted
// before a failure stay persisted.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
}

// MaterializeResult reports the outcome of one save pass.
type MaterializeResult struct {
	Orders       []*models.Order
	CreatedCount int
}

// Materialize converts one eligible row into an order draft with one line
// item per nonzero product quantity. Line items are priced from the same
// snapshot that priced the row's totals; re-resolving here could diverge
// from the row if rates changed between edit and save.
func Materialize(row *DeliveryRow, sheetDate time.Time, area string) (*models.Order, error) {
	if !row.Eligible() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "row is not eligible for materialization")
	}

	orderID := uuid.New()
	notes := fmt.Sprintf("delivery sheet %s / %s", sheetDate.Format("2006-01-02"), area)

	codes := make([]string, 0, len(row.Quantities))
	for code, qty := range row.Quantities {
		if qty > 0 {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)

	items := make([]models.OrderLineItem, 0, len(codes))
	for _, code := range codes {
		qty := row.Quantities[code]
		rate, err := row.rates.Resolve(code, row.CustomerID)
		if err != nil {
			return nil, err
		}
		total := rate.PricePaise.Mul(qty)
		items = append(items, models.OrderLineItem{
			ID:          uuid.New(),
			OrderID:     orderID,
			ProductID:   rate.ProductID,
			ProductName: rate.Name,
			ProductCode: rate.Code,
			Unit:        enums.ProductUnit(rate.Unit),
			Qty:         qty,
			RatePaise:   int64(rate.PricePaise),
			TotalPaise:  int64(total),
		})
	}

	return &models.Order{
		ID:            orderID,
		CustomerID:    row.CustomerID,
		CustomerName:  row.CustomerName,
		Area:          area,
		DeliveryDate:  sheetDate,
		Status:        enums.OrderStatusPending,
		PaymentStatus: enums.PaymentStatusPending,
		TotalQty:      row.TotalQuantity,
		AmountPaise:   int64(row.TotalAmount),
		Notes:         &notes,
		Items:         items,
	}, nil
}

// MaterializeAll walks rows in their given order, skipping ineligible ones
// silently (an empty row is not an error, merely not filled in yet), and
// hands each draft to the store exactly once. A store failure stops the
// pass; orders created before it remain committed and are reported in the
// result alongside the error.
func MaterializeAll(ctx context.Context, store OrderStore, rows []*DeliveryRow, sheetDate time.Time, area string) (*MaterializeResult, error) {
	result := &MaterializeResult{}
	for _, row := range rows {
		if !row.Eligible() {
			continue
		}
		draft, err := Materialize(row, sheetDate, area)
		if err != nil {
			return result, err
		}
		created, err := store.Create(ctx, draft)
		if err != nil {
			return result, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order").
				WithDetails(map[string]any{"customer_id": row.CustomerID, "committed": result.CreatedCount})
		}
		result.Orders = append(result.Orders, created)
		result.CreatedCount++
	}
	return result, nil
}
