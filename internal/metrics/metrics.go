package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	runsTotal        *prometheus.CounterVec
	runDuration      prometheus.Histogram
	signalsGenerated *prometheus.CounterVec
	tradesSimulated  *prometheus.CounterVec
	barsLoaded       prometheus.Counter
	watchlistSymbols prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backtester_runs_total",
				Help: "Total number of backtest runs",
			},
			[]string{"strategy", "status"},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "backtester_run_duration_seconds",
				Help:    "Backtest run duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
		),

		signalsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backtester_signals_generated_total",
				Help: "Total number of signals generated",
			},
			[]string{"strategy"},
		),

		tradesSimulated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backtester_trades_simulated_total",
				Help: "Total number of trades produced by simulations",
			},
			[]string{"strategy"},
		),

		barsLoaded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "backtester_bars_loaded_total",
				Help: "Total number of bars loaded from data sources",
			},
		),

		watchlistSymbols: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "backtester_watchlist_symbols",
				Help: "Number of symbols in the configured watchlist",
			},
		),
	}

	reg.MustRegister(r.runsTotal)
	reg.MustRegister(r.runDuration)
	reg.MustRegister(r.signalsGenerated)
	reg.MustRegister(r.tradesSimulated)
	reg.MustRegister(r.barsLoaded)
	reg.MustRegister(r.watchlistSymbols)

	return r
}

// RecordRun records a completed backtest run.
func (r *Registry) RecordRun(strategy, status string, duration float64) {
	r.runsTotal.WithLabelValues(strategy, status).Inc()
	r.runDuration.Observe(duration)
}

// RecordSignals records signals generated by a strategy.
func (r *Registry) RecordSignals(strategy string, count int) {
	r.signalsGenerated.WithLabelValues(strategy).Add(float64(count))
}

// RecordTrades records trades produced by a simulation.
func (r *Registry) RecordTrades(strategy string, count int) {
	r.tradesSimulated.WithLabelValues(strategy).Add(float64(count))
}

// RecordBarsLoaded records bars read from a data source.
func (r *Registry) RecordBarsLoaded(count int) {
	r.barsLoaded.Add(float64(count))
}

// SetWatchlistSize sets the watchlist size.
func (r *Registry) SetWatchlistSize(size int) {
	r.watchlistSymbols.Set(float64(size))
}
