package sheet

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/girnardairy/milkroute-backend/pkg/db/models"
	pkgerrors "github.com/girnardairy/milkroute-backend/pkg/errors"
	"github.com/girnardairy/milkroute-backend/pkg/money"
)

// Rate is the priced view of one product inside a snapshot.
type Rate struct {
	ProductID  uuid.UUID
	Code       string
	Name       string
	Unit       string
	PricePaise money.Paise
}

// RateSnapshot is an immutable rate table taken once per sheet pass. Every
// row edited and every order materialized within a pass prices against the
// same snapshot, so a concurrent rate change can never split a row across
// two rate regimes.
type RateSnapshot struct {
	products  map[string]Rate
	overrides map[string]map[uuid.UUID]money.Paise
}

// NewRateSnapshot builds a snapshot from the product directory and the
// active customer-specific overrides. Inactive overrides are ignored.
func NewRateSnapshot(products []models.Product, overrides []models.CustomerRate) *RateSnapshot {
	snap := &RateSnapshot{
		products:  make(map[string]Rate, len(products)),
		overrides: make(map[string]map[uuid.UUID]money.Paise),
	}

	codeByProductID := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		snap.products[p.Code] = Rate{
			ProductID:  p.ID,
			Code:       p.Code,
			Name:       p.Name,
			Unit:       string(p.Unit),
			PricePaise: money.Paise(p.PricePaise),
		}
		codeByProductID[p.ID] = p.Code
	}

	for _, o := range overrides {
		if !o.IsActive {
			continue
		}
		code, ok := codeByProductID[o.ProductID]
		if !ok {
			continue
		}
		byCustomer := snap.overrides[code]
		if byCustomer == nil {
			byCustomer = make(map[uuid.UUID]money.Paise)
			snap.overrides[code] = byCustomer
		}
		byCustomer[o.CustomerID] = money.Paise(o.PricePaise)
	}

	return snap
}

// Resolve returns the unit price for the product code, preferring an active
// customer override. An unrecognized code is an error: the legacy screens
// sometimes zero-rated unknown codes and the resulting orders silently lost
// money, so the lookup refuses instead.
func (s *RateSnapshot) Resolve(code string, customerID uuid.UUID) (Rate, error) {
	rate, ok := s.products[code]
	if !ok {
		return Rate{}, pkgerrors.New(pkgerrors.CodeUnknownProduct, fmt.Sprintf("no rate for product code %q", code)).
			WithDetails(map[string]any{"product_code": code})
	}
	if customerID != uuid.Nil {
		if byCustomer, ok := s.overrides[code]; ok {
			if price, ok := byCustomer[customerID]; ok {
				rate.PricePaise = price
			}
		}
	}
	return rate, nil
}

// Known reports whether the product code exists in the snapshot.
func (s *RateSnapshot) Known(code string) bool {
	_, ok := s.products[code]
	return ok
}

// Codes returns every product code in the snapshot, sorted.
func (s *RateSnapshot) Codes() []string {
	codes := make([]string, 0, len(s.products))
	for code := range s.products {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
