package sheet_test

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/girnardairy/milkroute-backend/internal/sheet"
	"github.com/girnardairy/milkroute-backend/pkg/db/models"
	"github.com/girnardairy/milkroute-backend/pkg/enums"
)

var (
	ggahID    = uuid.MustParse("0c0a52c8-6c4a-4f7e-9b1d-2a9f0f9a1001")
	ggah450ID = uuid.MustParse("0c0a52c8-6c4a-4f7e-9b1d-2a9f0f9a1002")
	paneerID  = uuid.MustParse("0c0a52c8-6c4a-4f7e-9b1d-2a9f0f9a1003")

	rameshID = uuid.MustParse("6a1c9c6e-0d3f-4e0a-8a8b-5b0f0c9d2001")
	sunitaID = uuid.MustParse("6a1c9c6e-0d3f-4e0a-8a8b-5b0f0c9d2002")
)

func testProducts() []models.Product {
	return []models.Product{
		{ID: ggahID, Code: "GGH", Name: "Gir Gold Half Litre", Unit: enums.ProductUnitLitre, PricePaise: 6000},
		{ID: ggah450ID, Code: "GGH450", Name: "Gir Gold 450ml", Unit: enums.ProductUnitPacket, PricePaise: 6500},
		{ID: paneerID, Code: "PNR", Name: "Paneer 200g", Unit: enums.ProductUnitPacket, PricePaise: 9000},
	}
}

func testSnapshot(overrides ...models.CustomerRate) *sheet.RateSnapshot {
	return sheet.NewRateSnapshot(testProducts(), overrides)
}

type stubDirectory struct {
	customers map[uuid.UUID]*sheet.CustomerRef
	err       error
}

func newStubDirectory() *stubDirectory {
	return &stubDirectory{customers: map[uuid.UUID]*sheet.CustomerRef{
		rameshID: {ID: rameshID, Name: "Ramesh Patel", Area: "Talala"},
		sunitaID: {ID: sunitaID, Name: "Sunita Joshi", Area: "Veraval"},
	}}
}

func (d *stubDirectory) FindCustomer(_ context.Context, id uuid.UUID) (*sheet.CustomerRef, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.customers[id], nil
}

type stubOrderStore struct {
	created []*models.Order
	failAt  int // 1-based index of the Create call that fails; 0 means never
	calls   int
}

func (s *stubOrderStore) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	s.calls++
	if s.failAt > 0 && s.calls == s.failAt {
		return nil, fmt.Errorf("connection reset")
	}
	s.created = append(s.created, order)
	return order, nil
}
