// Package app wires configuration, strategies, data feeds and the
// backtest engine into a batch runner for the configured watchlist.
package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jleetch1/backtester/internal/backtest"
	"github.com/jleetch1/backtester/internal/config"
	"github.com/jleetch1/backtester/internal/feed"
	"github.com/jleetch1/backtester/internal/metrics"
	"github.com/jleetch1/backtester/internal/strategy"
	"github.com/jleetch1/backtester/internal/strategy/bollinger"
	"github.com/jleetch1/backtester/internal/strategy/macd"
	"github.com/jleetch1/backtester/internal/strategy/macross"
	"github.com/jleetch1/backtester/internal/strategy/meanrev"
	"github.com/jleetch1/backtester/internal/strategy/momentum"
	"github.com/jleetch1/backtester/internal/strategy/rsi"
)

// RunOutcome is the per-(symbol, strategy) result of a batch run.
// Exactly one of Result and Err is set.
type RunOutcome struct {
	Symbol   string
	Strategy string
	Result   *backtest.Result
	Err      error
}

// App is the main application orchestrator.
type App struct {
	cfg        *config.Config
	logger     *zap.Logger
	metrics    *metrics.Registry
	strategies *strategy.Registry
	source     feed.Source
	store      *backtest.Store
	runner     *backtest.Runner
}

// New creates an App around a bar source. The built-in strategies are
// pre-registered; RegisterStrategy adds more.
func New(cfg *config.Config, source feed.Source, logger ...*zap.Logger) *App {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.NewNop()
	}

	statsCfg := backtest.DefaultStatsConfig()
	statsCfg.RiskFreeRate = cfg.Backtest.RiskFreeRate
	statsCfg.PeriodsPerYear = cfg.Backtest.PeriodsPerYear

	store := backtest.NewStore()

	a := &App{
		cfg:        cfg,
		logger:     l,
		metrics:    metrics.NewRegistry(),
		strategies: strategy.NewRegistry(l),
		source:     source,
		store:      store,
		runner:     backtest.NewRunner(store, statsCfg, l),
	}
	a.registerBuiltins()
	a.metrics.SetWatchlistSize(len(cfg.Watchlist))
	return a
}

func (a *App) registerBuiltins() {
	a.strategies.Register("ma_cross", macross.FromParams)
	a.strategies.Register("rsi", rsi.FromParams)
	a.strategies.Register("macd", macd.FromParams)
	a.strategies.Register("bollinger", bollinger.FromParams)
	a.strategies.Register("momentum", momentum.FromParams)
	a.strategies.Register("mean_reversion", meanrev.FromParams)
}

// RegisterStrategy adds a strategy factory under the given name.
func (a *App) RegisterStrategy(name string, f strategy.Factory) {
	a.strategies.Register(name, f)
}

// Strategies returns the registered strategy names.
func (a *App) Strategies() []string {
	return a.strategies.Names()
}

// Describe instantiates a strategy with the given params and returns
// its self-description.
func (a *App) Describe(name string, params strategy.Params) (string, error) {
	s, err := a.strategies.Create(name, params)
	if err != nil {
		return "", err
	}
	return s.Description(), nil
}

// Store returns the result store populated by runs.
func (a *App) Store() *backtest.Store {
	return a.store
}

// Metrics returns the Prometheus registry for this app.
func (a *App) Metrics() *metrics.Registry {
	return a.metrics
}

// RunAll backtests every (symbol, strategy) pair in the watchlist with
// bounded concurrency. A failed pair is reported in its outcome and
// does not stop the rest of the batch.
func (a *App) RunAll(ctx context.Context) []RunOutcome {
	var pairs []RunOutcome
	for _, item := range a.cfg.Watchlist {
		for _, name := range item.Strategies {
			pairs = append(pairs, RunOutcome{Symbol: item.Symbol, Strategy: name})
		}
	}
	if len(pairs) == 0 {
		a.logger.Warn("watchlist is empty, nothing to run")
		return nil
	}

	workers := a.cfg.Backtest.Concurrency
	if workers < 1 {
		workers = 1
	}

	a.logger.Info("starting batch run",
		zap.Int("pairs", len(pairs)),
		zap.Int("workers", workers),
	)

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i := range pairs {
		wg.Add(1)
		go func(o *RunOutcome) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			o.Result, o.Err = a.RunOne(ctx, o.Symbol, o.Strategy)
		}(&pairs[i])
	}
	wg.Wait()

	failed := 0
	for _, o := range pairs {
		if o.Err != nil {
			failed++
		}
	}
	a.logger.Info("batch run finished",
		zap.Int("pairs", len(pairs)),
		zap.Int("failed", failed),
	)
	return pairs
}

// RunOne backtests a single strategy over a single symbol's bars and
// stores the result.
func (a *App) RunOne(ctx context.Context, symbol, strategyName string) (*backtest.Result, error) {
	started := time.Now()

	strat, err := a.strategies.Create(strategyName, a.cfg.StrategyParams(strategyName))
	if err != nil {
		a.recordFailure(symbol, strategyName, started, err)
		return nil, err
	}

	bars, err := a.source.Bars(ctx, symbol)
	if err != nil {
		a.recordFailure(symbol, strategyName, started, err)
		return nil, err
	}
	a.metrics.RecordBarsLoaded(len(bars))

	result, err := a.runner.Run(ctx, strat, symbol, bars, a.cfg.Backtest.InitialCapital)
	if err != nil {
		a.recordFailure(symbol, strategyName, started, err)
		return nil, err
	}

	a.metrics.RecordRun(strategyName, "success", time.Since(started).Seconds())
	a.metrics.RecordSignals(strategyName, len(bars))
	a.metrics.RecordTrades(strategyName, len(result.Trades))
	return result, nil
}

func (a *App) recordFailure(symbol, strategyName string, started time.Time, err error) {
	a.metrics.RecordRun(strategyName, "error", time.Since(started).Seconds())
	a.logger.Error("backtest run failed",
		zap.String("symbol", symbol),
		zap.String("strategy", strategyName),
		zap.Error(err),
	)
}
