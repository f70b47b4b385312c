package sheet

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/girnardairy/milkroute-backend/pkg/db/models"
	pkgerrors "github.com/girnardairy/milkroute-backend/pkg/errors"
	"github.com/girnardairy/milkroute-backend/pkg/logger"
	"github.com/girnardairy/milkroute-backend/pkg/metrics"
)

// ProductSource supplies the raw material for a rate snapshot.
type ProductSource interface {
	ListActiveProducts(ctx context.Context) ([]models.Product, error)
	ListActiveCustomerRates(ctx context.Context) ([]models.CustomerRate, error)
}

// Input is one sheet pass: its header plus whichever entry surface produced
// the rows.
type Input struct {
	Date   time.Time
	Area   string
	Source RowSource
}

// Preview is the response shape for a totals pass: the normalized rows and
// the aggregate everything else renders from.
type Preview struct {
	Rows   []*DeliveryRow `json:"rows"`
	Totals SheetTotals    `json:"totals"`
}

// SaveSummary reports what one save pass committed.
type SaveSummary struct {
	CreatedCount int         `json:"created_count"`
	OrderIDs     []uuid.UUID `json:"order_ids"`
	Totals       SheetTotals `json:"totals"`
}

// Service runs sheet passes end to end: snapshot, normalize, aggregate,
// materialize.
type Service struct {
	products ProductSource
	orders   OrderStore
	metrics  *metrics.SheetMetrics
	logg     *logger.Logger
	maxRows  int
}

func NewService(products ProductSource, orders OrderStore, sheetMetrics *metrics.SheetMetrics, logg *logger.Logger, maxRows int) (*Service, error) {
	if products == nil {
		return nil, fmt.Errorf("sheet service requires a product source")
	}
	if orders == nil {
		return nil, fmt.Errorf("sheet service requires an order store")
	}
	if logg == nil {
		return nil, fmt.Errorf("sheet service requires a logger")
	}
	if maxRows <= 0 {
		return nil, fmt.Errorf("sheet service requires a positive row limit")
	}
	return &Service{
		products: products,
		orders:   orders,
		metrics:  sheetMetrics,
		logg:     logg,
		maxRows:  maxRows,
	}, nil
}

// snapshot loads products and overrides once; everything downstream of this
// call prices against the same table.
func (s *Service) snapshot(ctx context.Context) (*RateSnapshot, error) {
	products, err := s.products.ListActiveProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	overrides, err := s.products.ListActiveCustomerRates(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer rates")
	}
	return NewRateSnapshot(products, overrides), nil
}

func (s *Service) buildRows(ctx context.Context, in Input, dir CustomerDirectory) ([]*DeliveryRow, error) {
	if in.Source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no rows provided")
	}
	rates, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := in.Source.BuildRows(ctx, rates, dir)
	if err != nil {
		return nil, err
	}
	if len(rows) > s.maxRows {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("sheet exceeds the limit of %d rows", s.maxRows)).
			WithDetails(map[string]any{"row_count": len(rows), "max_rows": s.maxRows})
	}
	return rows, nil
}

// Totals normalizes the input and aggregates it without persisting anything.
// The dashboard calls this on every edit.
func (s *Service) Totals(ctx context.Context, in Input, dir CustomerDirectory) (*Preview, error) {
	rows, err := s.buildRows(ctx, in, dir)
	if err != nil {
		return nil, err
	}
	return &Preview{Rows: rows, Totals: Aggregate(rows)}, nil
}

// Save normalizes the input, validates the sheet header, and materializes
// one order per eligible row. Ineligible rows are skipped without error.
// Orders committed before a store failure stay committed; the summary in
// that case is not returned, but the error's details carry the count.
func (s *Service) Save(ctx context.Context, in Input, dir CustomerDirectory) (*SaveSummary, error) {
	started := time.Now()
	ctx = s.logg.WithSheet(ctx, in.Date.Format("2006-01-02"), in.Area)

	rows, err := s.buildRows(ctx, in, dir)
	if err != nil {
		s.metrics.IncSaved(in.Area, "rejected")
		return nil, err
	}

	eligible, err := ValidateForSave(in.Date, in.Area, rows)
	if err != nil {
		s.metrics.IncSaved(in.Area, "rejected")
		return nil, err
	}

	result, err := MaterializeAll(ctx, s.orders, eligible, in.Date, in.Area)
	s.metrics.ObserveSaveDuration(in.Area, time.Since(started))
	s.metrics.AddOrders(in.Area, result.CreatedCount)
	if err != nil {
		s.metrics.IncSaved(in.Area, "failed")
		s.logg.Error(s.logg.WithField(ctx, "committed", result.CreatedCount), "sheet save aborted", err)
		return nil, err
	}

	orderIDs := make([]uuid.UUID, 0, len(result.Orders))
	for _, order := range result.Orders {
		orderIDs = append(orderIDs, order.ID)
	}

	s.metrics.IncSaved(in.Area, "saved")
	s.logg.Info(s.logg.WithField(ctx, "orders_created", strconv.Itoa(result.CreatedCount)), "sheet saved")

	return &SaveSummary{
		CreatedCount: result.CreatedCount,
		OrderIDs:     orderIDs,
		Totals:       Aggregate(eligible),
	}, nil
}
