package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SheetMetrics records delivery-sheet save outcomes.
type SheetMetrics struct {
	saveDuration *prometheus.HistogramVec
	savedSheets  *prometheus.CounterVec
	orders       *prometheus.CounterVec
}

// NewSheetMetrics registers the sheet metrics on the provided registerer.
func NewSheetMetrics(reg prometheus.Registerer) *SheetMetrics {
	if reg == nil {
		return &SheetMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sheet_save_duration_seconds",
		Help:    "Duration of delivery sheet saves in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"area"})
	saved := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sheets_saved_total",
		Help: "Delivery sheets saved, by outcome.",
	}, []string{"area", "outcome"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_materialized_total",
		Help: "Orders materialized from delivery sheet rows.",
	}, []string{"area"})
	reg.MustRegister(duration, saved, orders)
	return &SheetMetrics{
		saveDuration: duration,
		savedSheets:  saved,
		orders:       orders,
	}
}

// ObserveSaveDuration records the duration of one save pass.
func (s *SheetMetrics) ObserveSaveDuration(area string, duration time.Duration) {
	if s == nil || s.saveDuration == nil {
		return
	}
	s.saveDuration.WithLabelValues(normalizeLabel(area)).Observe(duration.Seconds())
}

// IncSaved increments the saved-sheet counter for the given outcome.
func (s *SheetMetrics) IncSaved(area, outcome string) {
	if s == nil || s.savedSheets == nil {
		return
	}
	s.savedSheets.WithLabelValues(normalizeLabel(area), normalizeLabel(outcome)).Inc()
}

// AddOrders adds the number of orders materialized in one save pass.
func (s *SheetMetrics) AddOrders(area string, count int) {
	if s == nil || s.orders == nil || count <= 0 {
		return
	}
	s.orders.WithLabelValues(normalizeLabel(area)).Add(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
