package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("expected non-nil registry")
	}

	// Should have go runtime metrics at minimum
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(mfs) == 0 {
		t.Error("expected some metrics to be registered")
	}
}

func findMetric(t *testing.T, reg *Registry, name string) *dto.MetricFamily {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestRegistry_RecordRun(t *testing.T) {
	reg := NewRegistry()

	reg.RecordRun("ma_cross", "success", 0.25)
	reg.RecordRun("ma_cross", "error", 0.05)

	mf := findMetric(t, reg, "backtester_runs_total")
	if mf == nil {
		t.Fatal("expected backtester_runs_total metric")
	}
	if len(mf.GetMetric()) != 2 {
		t.Errorf("expected 2 label combinations, got %d", len(mf.GetMetric()))
	}

	if findMetric(t, reg, "backtester_run_duration_seconds") == nil {
		t.Error("expected backtester_run_duration_seconds metric")
	}
}

func TestRegistry_Counters(t *testing.T) {
	reg := NewRegistry()

	reg.RecordSignals("rsi", 100)
	reg.RecordTrades("rsi", 7)
	reg.RecordBarsLoaded(250)

	mf := findMetric(t, reg, "backtester_signals_generated_total")
	if mf == nil {
		t.Fatal("expected backtester_signals_generated_total metric")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 100 {
		t.Errorf("expected 100 signals, got %v", got)
	}

	mf = findMetric(t, reg, "backtester_trades_simulated_total")
	if mf == nil {
		t.Fatal("expected backtester_trades_simulated_total metric")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 7 {
		t.Errorf("expected 7 trades, got %v", got)
	}

	mf = findMetric(t, reg, "backtester_bars_loaded_total")
	if mf == nil {
		t.Fatal("expected backtester_bars_loaded_total metric")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 250 {
		t.Errorf("expected 250 bars, got %v", got)
	}
}

func TestRegistry_WatchlistGauge(t *testing.T) {
	reg := NewRegistry()

	reg.SetWatchlistSize(12)

	mf := findMetric(t, reg, "backtester_watchlist_symbols")
	if mf == nil {
		t.Fatal("expected backtester_watchlist_symbols metric")
	}
	if got := mf.GetMetric()[0].GetGauge().GetValue(); got != 12 {
		t.Errorf("expected watchlist size 12, got %v", got)
	}
}

func TestRegistry_UsableAsPrometheusRegistry(t *testing.T) {
	reg := NewRegistry()
	var _ prometheus.Gatherer = reg
}
