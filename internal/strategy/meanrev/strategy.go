// Package meanrev implements a z-score mean reversion strategy that
// scales out of winners in two steps.
package meanrev

import (
	"fmt"
	"math"

	"github.com/jleetch1/backtester/internal/core"
	"github.com/jleetch1/backtester/internal/indicator"
	"github.com/jleetch1/backtester/internal/strategy"
)

// partial exits realize this share of the remaining position when the
// z-score recrosses the exit threshold short of the opposite extreme.
const scaleOutFraction = 0.5

// MeanRev buys deep discounts to the rolling mean and unwinds as price
// reverts: half off at the exit threshold, the rest at the opposite
// extreme.
type MeanRev struct {
	maPeriod int
	entryZ   float64
	exitZ    float64
	sizing   strategy.Sizing
}

// New creates a new mean reversion strategy.
func New(maPeriod int, entryZ, exitZ float64, sizing strategy.Sizing) (*MeanRev, error) {
	if maPeriod < 2 {
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("ma period must exceed 1, got %d", maPeriod))
	}
	if entryZ <= 0 || exitZ < 0 || exitZ >= entryZ {
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("thresholds must satisfy 0 <= exit < entry, got entry %.2f exit %.2f", entryZ, exitZ))
	}
	return &MeanRev{
		maPeriod: maPeriod,
		entryZ:   entryZ,
		exitZ:    exitZ,
		sizing:   sizing,
	}, nil
}

// FromParams builds the strategy from configuration parameters.
func FromParams(p strategy.Params) (strategy.Strategy, error) {
	return New(
		p.Int("ma_period", 20),
		p.Float("std_dev_threshold", 2.0),
		p.Float("exit_threshold", 0.5),
		strategy.SizingFromParams(p),
	)
}

func (m *MeanRev) Name() string {
	return "mean_reversion"
}

func (m *MeanRev) Description() string {
	return fmt.Sprintf("Mean Reversion (%d, entry %.1f sd, exit %.1f sd)", m.maPeriod, m.entryZ, m.exitZ)
}

func (m *MeanRev) PositionSize(capital, price float64) float64 {
	return m.sizing.Size(capital, price)
}

// Signals buys when the close sits entryZ sample standard deviations
// below its rolling mean, fully exits once the z-score reaches the
// opposite extreme, and scales out half the remaining position while
// the z-score rests between the exit threshold and that extreme.
func (m *MeanRev) Signals(bars []core.Bar) ([]core.Signal, error) {
	if len(bars) < m.maPeriod {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("need at least %d bars, got %d", m.maPeriod, len(bars)))
	}

	closes := indicator.Closes(bars)
	ma := indicator.SMA(closes, m.maPeriod)
	std := indicator.RollingStd(closes, m.maPeriod)
	// RollingStd is the population deviation; rescale to the sample
	// deviation the z-score is defined against.
	sampleAdj := math.Sqrt(float64(m.maPeriod) / float64(m.maPeriod-1))

	signals := make([]core.Signal, len(bars))
	for i := m.maPeriod - 1; i < len(bars); i++ {
		if std[i] == 0 {
			continue
		}
		z := (closes[i] - ma[i]) / (std[i] * sampleAdj)
		switch {
		case z <= -m.entryZ:
			signals[i] = core.Enter
		case z >= m.entryZ:
			signals[i] = core.Exit
		case z >= m.exitZ:
			signals[i] = core.Signal(-scaleOutFraction)
		}
	}
	return signals, nil
}
