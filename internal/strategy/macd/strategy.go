// Package macd implements a MACD line/signal line crossover strategy.
package macd

import (
	"fmt"

	"github.com/jleetch1/backtester/internal/core"
	"github.com/jleetch1/backtester/internal/indicator"
	"github.com/jleetch1/backtester/internal/strategy"
)

// MACD goes long while the MACD line trades above its signal line.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
	sizing       strategy.Sizing
}

// New creates a new MACD strategy.
func New(fastPeriod, slowPeriod, signalPeriod int, sizing strategy.Sizing) (*MACD, error) {
	if fastPeriod < 2 || slowPeriod <= fastPeriod || signalPeriod < 1 {
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("macd periods must satisfy 1 < fast < slow and signal > 0, got %d/%d/%d",
				fastPeriod, slowPeriod, signalPeriod))
	}
	return &MACD{
		fastPeriod:   fastPeriod,
		slowPeriod:   slowPeriod,
		signalPeriod: signalPeriod,
		sizing:       sizing,
	}, nil
}

// FromParams builds the strategy from configuration parameters.
func FromParams(p strategy.Params) (strategy.Strategy, error) {
	return New(
		p.Int("fast_period", 12),
		p.Int("slow_period", 26),
		p.Int("signal_period", 9),
		strategy.SizingFromParams(p),
	)
}

func (m *MACD) Name() string {
	return "macd"
}

func (m *MACD) Description() string {
	return fmt.Sprintf("MACD (%d/%d/%d)", m.fastPeriod, m.slowPeriod, m.signalPeriod)
}

func (m *MACD) PositionSize(capital, price float64) float64 {
	return m.sizing.Size(capital, price)
}

// Signals buys while the MACD line is above the signal line and sells
// while it is below. Both lines need slow+signal-1 bars of warm-up.
func (m *MACD) Signals(bars []core.Bar) ([]core.Signal, error) {
	warmup := m.slowPeriod + m.signalPeriod - 1
	if len(bars) < warmup {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("need at least %d bars, got %d", warmup, len(bars)))
	}

	line, signalLine, _ := indicator.MACD(indicator.Closes(bars), m.fastPeriod, m.slowPeriod, m.signalPeriod)

	signals := make([]core.Signal, len(bars))
	for i := warmup - 1; i < len(bars); i++ {
		switch {
		case line[i] > signalLine[i]:
			signals[i] = core.Enter
		case line[i] < signalLine[i]:
			signals[i] = core.Exit
		}
	}
	return signals, nil
}
