// Package rsi implements an RSI overbought/oversold strategy.
package rsi

import (
	"fmt"

	"github.com/jleetch1/backtester/internal/core"
	"github.com/jleetch1/backtester/internal/indicator"
	"github.com/jleetch1/backtester/internal/strategy"
)

// RSI buys oversold bars and sells overbought ones.
type RSI struct {
	period     int
	oversold   float64
	overbought float64
	sizing     strategy.Sizing
}

// New creates a new RSI strategy.
func New(period int, oversold, overbought float64, sizing strategy.Sizing) (*RSI, error) {
	if period < 2 {
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("rsi period must be at least 2, got %d", period))
	}
	if oversold >= overbought {
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("oversold level %.1f must be below overbought level %.1f", oversold, overbought))
	}
	return &RSI{
		period:     period,
		oversold:   oversold,
		overbought: overbought,
		sizing:     sizing,
	}, nil
}

// FromParams builds the strategy from configuration parameters.
func FromParams(p strategy.Params) (strategy.Strategy, error) {
	return New(
		p.Int("rsi_period", 14),
		p.Float("oversold", 30),
		p.Float("overbought", 70),
		strategy.SizingFromParams(p),
	)
}

func (r *RSI) Name() string {
	return "rsi"
}

func (r *RSI) Description() string {
	return fmt.Sprintf("RSI (%d, %.0f/%.0f)", r.period, r.oversold, r.overbought)
}

func (r *RSI) PositionSize(capital, price float64) float64 {
	return r.sizing.Size(capital, price)
}

// Signals buys when RSI drops below the oversold level and sells when
// it rises above the overbought level. Warm-up bars hold; RSI is
// undefined there and its zero placeholder must not read as oversold.
func (r *RSI) Signals(bars []core.Bar) ([]core.Signal, error) {
	if len(bars) <= r.period {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("need more than %d bars, got %d", r.period, len(bars)))
	}

	values := indicator.RSI(indicator.Closes(bars), r.period)

	signals := make([]core.Signal, len(bars))
	for i := r.period; i < len(bars); i++ {
		switch {
		case values[i] < r.oversold:
			signals[i] = core.Enter
		case values[i] > r.overbought:
			signals[i] = core.Exit
		}
	}
	return signals, nil
}
