package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestSheetMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSheetMetrics(reg)

	m.ObserveSaveDuration("Station Road", 120*time.Millisecond)
	m.IncSaved("Station Road", "success")
	m.AddOrders("Station Road", 3)
	m.AddOrders("Station Road", 0)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	byName := map[string]*dto.MetricFamily{}
	for _, fam := range families {
		byName[fam.GetName()] = fam
	}

	saved, ok := byName["sheets_saved_total"]
	if !ok {
		t.Fatal("sheets_saved_total not registered")
	}
	if got := saved.GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Fatalf("expected 1 saved sheet, got %v", got)
	}

	orders, ok := byName["orders_materialized_total"]
	if !ok {
		t.Fatal("orders_materialized_total not registered")
	}
	if got := orders.GetMetric()[0].GetCounter().GetValue(); got != 3 {
		t.Fatalf("expected 3 orders, got %v", got)
	}
}

func TestSheetMetricsNilSafe(t *testing.T) {
	var m *SheetMetrics
	m.IncSaved("x", "success")
	m.AddOrders("x", 1)
	m.ObserveSaveDuration("x", time.Second)

	empty := NewSheetMetrics(nil)
	empty.IncSaved("", "")
}
