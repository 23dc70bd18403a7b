package backtest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jleetch1/backtester/internal/core"
	"github.com/jleetch1/backtester/internal/strategy"
	"go.uber.org/zap"
)

// Runner is the whole-run entry point: it asks the strategy for a
// signal stream, simulates the trades and computes the performance
// report, recording the result in the store when one is attached.
type Runner struct {
	store  *Store
	cfg    StatsConfig
	logger *zap.Logger
}

// NewRunner creates a Runner. The store may be nil when callers only
// want the returned result.
func NewRunner(store *Store, cfg StatsConfig, logger ...*zap.Logger) *Runner {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.NewNop()
	}
	return &Runner{
		store:  store,
		cfg:    cfg,
		logger: l,
	}
}

// Run executes one backtest of a strategy over a bar series. Errors
// from the strategy propagate unchanged; input validation errors come
// from the simulator.
func (r *Runner) Run(ctx context.Context, strat strategy.Strategy, symbol string, bars []core.Bar, initialCapital float64) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	signals, err := strat.Signals(bars)
	if err != nil {
		return nil, err
	}

	trades, finalCapital, err := Simulate(bars, signals, initialCapital, strat.PositionSize)
	if err != nil {
		return nil, err
	}

	for i := range trades {
		trades[i].Symbol = symbol
		trades[i].Strategy = strat.Name()
	}

	result := &Result{
		ID:             uuid.NewString(),
		Symbol:         symbol,
		Strategy:       strat.Name(),
		InitialCapital: initialCapital,
		FinalCapital:   finalCapital,
		Trades:         trades,
		EquityCurve:    BuildEquityCurve(trades, initialCapital),
		Report:         Compute(trades, initialCapital, finalCapital, r.cfg),
		CompletedAt:    time.Now(),
	}

	if r.store != nil {
		r.store.Put(result)
	}

	r.logger.Info("backtest run complete",
		zap.String("symbol", symbol),
		zap.String("strategy", strat.Name()),
		zap.Int("trades", len(trades)),
		zap.Float64("net_profit", result.Report.NetProfit),
	)

	return result, nil
}
