package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	customersvc "github.com/girnardairy/milkroute-backend/internal/customers"
	ordersvc "github.com/girnardairy/milkroute-backend/internal/orders"
	productsvc "github.com/girnardairy/milkroute-backend/internal/products"
	"github.com/girnardairy/milkroute-backend/internal/sheet"
	"github.com/girnardairy/milkroute-backend/pkg/config"
	"github.com/girnardairy/milkroute-backend/pkg/logger"
)

var testSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  area TEXT NOT NULL,
  phone TEXT,
  address TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  unit TEXT NOT NULL DEFAULT 'packet',
  price_paise INTEGER NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS customer_rates (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  price_paise INTEGER NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (customer_id, product_id)
);`,
	`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  area TEXT NOT NULL,
  delivery_date DATETIME NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  payment_status TEXT NOT NULL DEFAULT 'pending',
  total_qty INTEGER NOT NULL,
  amount_paise INTEGER NOT NULL,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  product_code TEXT NOT NULL,
  unit TEXT NOT NULL,
  qty INTEGER NOT NULL,
  rate_paise INTEGER NOT NULL,
  total_paise INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	for _, stmt := range testSchema {
		require.NoError(t, gdb.Exec(stmt).Error)
	}

	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})

	customers, err := customersvc.NewService(customersvc.NewRepository(gdb))
	require.NoError(t, err)
	products, err := productsvc.NewService(productsvc.NewRepository(gdb), customersvc.NewRepository(gdb))
	require.NoError(t, err)
	orders, err := ordersvc.NewService(ordersvc.NewRepository(gdb))
	require.NoError(t, err)
	sheets, err := sheet.NewService(products, orders, nil, logg, 100)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Env = "dev"
	cfg.Sheets.SaveIdempotencyTTL = time.Hour
	cfg.Sheets.MaxRowsPerSheet = 100
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	return NewRouter(Deps{
		Config:    cfg,
		Logger:    logg,
		Customers: customers,
		Products:  products,
		Orders:    orders,
		Sheets:    sheets,
	})
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func dataField(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestHealthLive(t *testing.T) {
	handler := setupRouter(t)
	rec := doJSON(t, handler, http.MethodGet, "/health/live", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dev", rec.Header().Get("X-Milkroute-Env"))
}

func TestSheetSaveFlow(t *testing.T) {
	handler := setupRouter(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/customers", map[string]any{
		"name": "Ramesh Patel",
		"area": "Talala",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	customerID := dataField(t, rec)["ID"]

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/products", map[string]any{
		"code":         "GGH",
		"name":         "Gir Gold Half Litre",
		"unit":         "litre",
		"price_rupees": "60",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	sheetBody := map[string]any{
		"date": "2026-08-28",
		"area": "Talala",
		"mode": "form",
		"form": map[string]any{
			"customer_id": customerID,
			"lines": []map[string]any{
				{"product_code": "GGH", "quantity": 3},
			},
		},
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/delivery-sheets/totals", sheetBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	totals := dataField(t, rec)["totals"].(map[string]any)
	assert.Equal(t, float64(3), totals["total_quantity"])
	assert.Equal(t, float64(18000), totals["total_amount_paise"])

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/delivery-sheets/save", sheetBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	summary := dataField(t, rec)
	assert.Equal(t, float64(1), summary["created_count"])

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/orders?area=Talala", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listEnvelope struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listEnvelope))
	require.Len(t, listEnvelope.Data, 1)
}

func TestSheetSaveUnknownProduct(t *testing.T) {
	handler := setupRouter(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/customers", map[string]any{
		"name": "Ramesh Patel",
		"area": "Talala",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	customerID := dataField(t, rec)["ID"]

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/delivery-sheets/totals", map[string]any{
		"date": "2026-08-28",
		"area": "Talala",
		"mode": "form",
		"form": map[string]any{
			"customer_id": customerID,
			"lines": []map[string]any{
				{"product_code": "GHEE", "quantity": 2},
			},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "UNKNOWN_PRODUCT", envelope.Error.Code)
}

func TestCustomerRateOverrideAffectsTotals(t *testing.T) {
	handler := setupRouter(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/customers", map[string]any{
		"name": "Sunita Joshi",
		"area": "Veraval",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	customerID := dataField(t, rec)["ID"]

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/products", map[string]any{
		"code":         "GGH450",
		"name":         "Gir Gold 450ml",
		"unit":         "packet",
		"price_rupees": "65",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	productID := dataField(t, rec)["ID"]

	path := fmt.Sprintf("/api/v1/products/%v/customer-rates/%v", productID, customerID)
	rec = doJSON(t, handler, http.MethodPut, path, map[string]any{
		"price_rupees": "62.50",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/delivery-sheets/totals", map[string]any{
		"date": "2026-08-28",
		"area": "Veraval",
		"mode": "form",
		"form": map[string]any{
			"customer_id": customerID,
			"lines": []map[string]any{
				{"product_code": "GGH450", "quantity": 2},
			},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	totals := dataField(t, rec)["totals"].(map[string]any)
	assert.Equal(t, float64(12500), totals["total_amount_paise"])
}
