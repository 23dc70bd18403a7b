// Package macross implements a moving average crossover strategy.
package macross

import (
	"fmt"

	"github.com/jleetch1/backtester/internal/core"
	"github.com/jleetch1/backtester/internal/indicator"
	"github.com/jleetch1/backtester/internal/strategy"
)

// MACross holds short when the averages are in warm-up or equal, and
// goes long while the short average trades above the long one.
type MACross struct {
	shortWindow int
	longWindow  int
	sizing      strategy.Sizing
}

// New creates a new MA crossover strategy.
func New(shortWindow, longWindow int, sizing strategy.Sizing) (*MACross, error) {
	if shortWindow < 1 || longWindow <= shortWindow {
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("ma windows must satisfy 0 < short < long, got %d/%d", shortWindow, longWindow))
	}
	return &MACross{
		shortWindow: shortWindow,
		longWindow:  longWindow,
		sizing:      sizing,
	}, nil
}

// FromParams builds the strategy from configuration parameters.
func FromParams(p strategy.Params) (strategy.Strategy, error) {
	return New(
		p.Int("short_window", 20),
		p.Int("long_window", 50),
		strategy.SizingFromParams(p),
	)
}

func (m *MACross) Name() string {
	return "ma_cross"
}

func (m *MACross) Description() string {
	return fmt.Sprintf("MA Crossover (%d/%d)", m.shortWindow, m.longWindow)
}

func (m *MACross) PositionSize(capital, price float64) float64 {
	return m.sizing.Size(capital, price)
}

// Signals goes long while the short SMA is above the long SMA and flat
// while it is below. Bars inside the long warm-up window hold.
func (m *MACross) Signals(bars []core.Bar) ([]core.Signal, error) {
	if len(bars) < m.longWindow {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("need at least %d bars, got %d", m.longWindow, len(bars)))
	}

	closes := indicator.Closes(bars)
	shortMA := indicator.SMA(closes, m.shortWindow)
	longMA := indicator.SMA(closes, m.longWindow)

	signals := make([]core.Signal, len(bars))
	for i := m.longWindow - 1; i < len(bars); i++ {
		switch {
		case shortMA[i] > longMA[i]:
			signals[i] = core.Enter
		case shortMA[i] < longMA[i]:
			signals[i] = core.Exit
		}
	}
	return signals, nil
}
