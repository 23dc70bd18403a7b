package backtest

import (
	"fmt"

	"github.com/jleetch1/backtester/internal/core"
)

// PositionSizer returns the quantity to open for a new position given
// the current capital and the entry price. The returned quantity must
// be finite and non-negative; the simulator determines the sign.
type PositionSizer func(capital, price float64) float64

// Simulate converts an aligned bar and signal series into a trade
// ledger in a single forward pass. At most one position is open at any
// time; entries and exits both fill at the bar's close price. A
// position still open after the last bar is force-closed at that bar's
// close, so every returned trade is closed.
//
// Fractional exit signals (between -1 and 0) scale out that fraction
// of the remaining position, realizing the proportional profit while
// keeping the trade open.
func Simulate(bars []core.Bar, signals []core.Signal, initialCapital float64, sizer PositionSizer) ([]Trade, float64, error) {
	if len(bars) == 0 {
		return nil, 0, core.WrapError(core.ErrInvalidInput, fmt.Errorf("empty bar series"))
	}
	if len(signals) != len(bars) {
		return nil, 0, core.WrapError(core.ErrInvalidInput,
			fmt.Errorf("signal count %d does not match bar count %d", len(signals), len(bars)))
	}
	if initialCapital <= 0 {
		return nil, 0, core.WrapError(core.ErrInvalidInput,
			fmt.Errorf("initial capital must be positive, got %v", initialCapital))
	}
	if sizer == nil {
		return nil, 0, core.WrapError(core.ErrInvalidInput, fmt.Errorf("position sizer is required"))
	}

	var (
		trades     []Trade
		position   float64
		entryPrice float64
		capital    = initialCapital
		open       = -1 // ledger index of the open trade
	)

	for i := range bars {
		bar := bars[i]
		sig := signals[i]

		switch {
		case position == 0 && sig.IsEnter():
			qty := sizer(capital, bar.Close)
			if qty <= 0 {
				continue // nothing to open
			}
			position = qty
			entryPrice = bar.Close
			trades = append(trades, Trade{
				Symbol:     bar.Symbol,
				EntryTime:  bar.Time,
				EntryPrice: entryPrice,
				Position:   position,
				Scale:      1,
			})
			open = len(trades) - 1

		case position != 0 && sig.IsExit():
			profit := (bar.Close - entryPrice) * position
			capital += profit
			t := &trades[open]
			t.ExitTime = bar.Time
			t.ExitPrice = bar.Close
			t.Profit += profit
			t.Scale = 0
			position = 0
			open = -1

		case position != 0 && sig.IsPartialExit():
			closed := position * sig.Fraction()
			profit := (bar.Close - entryPrice) * closed
			capital += profit
			position -= closed
			t := &trades[open]
			t.Profit += profit
			t.Scale = position / t.Position

		default:
			// Hold, Enter while in a position, or Exit while flat.
		}
	}

	// A run never ends with an open position.
	if position != 0 {
		last := bars[len(bars)-1]
		profit := (last.Close - entryPrice) * position
		capital += profit
		t := &trades[open]
		t.ExitTime = last.Time
		t.ExitPrice = last.Close
		t.Profit += profit
		t.Scale = 0
	}

	return trades, capital, nil
}
