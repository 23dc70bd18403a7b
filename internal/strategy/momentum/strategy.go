// Package momentum implements a rate-of-change momentum strategy with
// a volume confirmation filter.
package momentum

import (
	"fmt"

	"github.com/jleetch1/backtester/internal/core"
	"github.com/jleetch1/backtester/internal/indicator"
	"github.com/jleetch1/backtester/internal/strategy"
)

// Momentum buys strong upward rate-of-change moves confirmed by
// above-average volume, and sells when momentum fades or reverses.
type Momentum struct {
	period        int
	buyThreshold  float64
	sellThreshold float64
	volumeFactor  float64
	sizing        strategy.Sizing
}

// New creates a new momentum strategy.
func New(period int, buyThreshold, sellThreshold, volumeFactor float64, sizing strategy.Sizing) (*Momentum, error) {
	if period < 1 {
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("momentum period must be positive, got %d", period))
	}
	if volumeFactor <= 0 {
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("volume factor must be positive, got %.2f", volumeFactor))
	}
	return &Momentum{
		period:        period,
		buyThreshold:  buyThreshold,
		sellThreshold: sellThreshold,
		volumeFactor:  volumeFactor,
		sizing:        sizing,
	}, nil
}

// FromParams builds the strategy from configuration parameters.
func FromParams(p strategy.Params) (strategy.Strategy, error) {
	return New(
		p.Int("momentum_period", 10),
		p.Float("buy_threshold", 2.0),
		p.Float("sell_threshold", -1.0),
		p.Float("volume_factor", 1.5),
		strategy.SizingFromParams(p),
	)
}

func (m *Momentum) Name() string {
	return "momentum"
}

func (m *Momentum) Description() string {
	return fmt.Sprintf("Momentum (%d, buy > %.1f%%, sell < %.1f%%, vol x%.1f)",
		m.period, m.buyThreshold, m.sellThreshold, m.volumeFactor)
}

func (m *Momentum) PositionSize(capital, price float64) float64 {
	return m.sizing.Size(capital, price)
}

// Signals buys when the rate of change exceeds the buy threshold on
// volume above volumeFactor times its moving average, and sells when
// momentum drops below the sell threshold or below the previous bar's
// momentum. The sell condition wins when both hold on the same bar.
func (m *Momentum) Signals(bars []core.Bar) ([]core.Signal, error) {
	if len(bars) <= m.period+1 {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("need more than %d bars, got %d", m.period+1, len(bars)))
	}

	mom := indicator.ROC(indicator.Closes(bars), m.period)
	volMA := indicator.SMA(indicator.Volumes(bars), m.period)

	signals := make([]core.Signal, len(bars))
	for i := m.period + 1; i < len(bars); i++ {
		switch {
		case mom[i] < m.sellThreshold || mom[i] < mom[i-1]:
			signals[i] = core.Exit
		case mom[i] > m.buyThreshold && bars[i].Volume > volMA[i]*m.volumeFactor:
			signals[i] = core.Enter
		}
	}
	return signals, nil
}
