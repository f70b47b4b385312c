package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/girnardairy/milkroute-backend/api/controllers"
	"github.com/girnardairy/milkroute-backend/api/middleware"
	customersvc "github.com/girnardairy/milkroute-backend/internal/customers"
	ordersvc "github.com/girnardairy/milkroute-backend/internal/orders"
	productsvc "github.com/girnardairy/milkroute-backend/internal/products"
	"github.com/girnardairy/milkroute-backend/internal/sheet"
	"github.com/girnardairy/milkroute-backend/pkg/config"
	"github.com/girnardairy/milkroute-backend/pkg/db"
	"github.com/girnardairy/milkroute-backend/pkg/logger"
	pkgredis "github.com/girnardairy/milkroute-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        db.Pinger
	Redis     *pkgredis.Client
	Registry  *prometheus.Registry
	Customers customersvc.Service
	Products  productsvc.Service
	Orders    ordersvc.Service
	Sheets    *sheet.Service
}

// NewRouter wires the delivery dashboard API.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		var idemStore pkgredis.IdempotencyStore
		if deps.Redis != nil {
			idemStore = deps.Redis
		}
		r.Use(middleware.Idempotency(idemStore, cfg.Sheets.SaveIdempotencyTTL, logg))

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomerList(deps.Customers, logg))
			r.Post("/", controllers.CustomerCreate(deps.Customers, logg))
			r.Get("/{customerId}", controllers.CustomerDetail(deps.Customers, logg))
			r.Patch("/{customerId}", controllers.CustomerUpdate(deps.Customers, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Products, logg))
			r.Post("/", controllers.ProductCreate(deps.Products, logg))
			r.Get("/{productId}", controllers.ProductDetail(deps.Products, logg))
			r.Patch("/{productId}", controllers.ProductUpdate(deps.Products, logg))
			r.Put("/{productId}/customer-rates/{customerId}", controllers.ProductSetCustomerRate(deps.Products, logg))
		})

		r.Route("/delivery-sheets", func(r chi.Router) {
			r.Post("/totals", controllers.SheetTotals(deps.Sheets, deps.Customers, logg))
			r.Post("/save", controllers.SheetSave(deps.Sheets, deps.Customers, logg))
			r.Post("/export", controllers.SheetExport(deps.Sheets, deps.Customers, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(deps.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(deps.Orders, logg))
			r.Post("/{orderId}/deliver", controllers.OrderDeliver(deps.Orders, logg))
			r.Post("/{orderId}/payment", controllers.OrderMarkPayment(deps.Orders, logg))
		})
	})

	return r
}
