// Package bollinger implements a Bollinger Bands reversion strategy.
package bollinger

import (
	"fmt"

	"github.com/jleetch1/backtester/internal/core"
	"github.com/jleetch1/backtester/internal/indicator"
	"github.com/jleetch1/backtester/internal/strategy"
)

// Bollinger buys touches of the lower band and sells touches of the
// upper band.
type Bollinger struct {
	period int
	stdDev float64
	sizing strategy.Sizing
}

// New creates a new Bollinger Bands strategy.
func New(period int, stdDev float64, sizing strategy.Sizing) (*Bollinger, error) {
	if period < 2 || stdDev <= 0 {
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("band period must exceed 1 and std dev must be positive, got %d/%.2f", period, stdDev))
	}
	return &Bollinger{
		period: period,
		stdDev: stdDev,
		sizing: sizing,
	}, nil
}

// FromParams builds the strategy from configuration parameters.
func FromParams(p strategy.Params) (strategy.Strategy, error) {
	return New(
		p.Int("period", 20),
		p.Float("std_dev", 2.0),
		strategy.SizingFromParams(p),
	)
}

func (b *Bollinger) Name() string {
	return "bollinger"
}

func (b *Bollinger) Description() string {
	return fmt.Sprintf("Bollinger Bands (%d, %.1f sd)", b.period, b.stdDev)
}

func (b *Bollinger) PositionSize(capital, price float64) float64 {
	return b.sizing.Size(capital, price)
}

// Signals buys bars closing at or below the lower band and sells bars
// closing at or above the upper band.
func (b *Bollinger) Signals(bars []core.Bar) ([]core.Signal, error) {
	if len(bars) < b.period {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("need at least %d bars, got %d", b.period, len(bars)))
	}

	closes := indicator.Closes(bars)
	upper, _, lower := indicator.BollingerBands(closes, b.period, b.stdDev)

	signals := make([]core.Signal, len(bars))
	for i := b.period - 1; i < len(bars); i++ {
		switch {
		case closes[i] <= lower[i]:
			signals[i] = core.Enter
		case closes[i] >= upper[i]:
			signals[i] = core.Exit
		}
	}
	return signals, nil
}
