// Package feed supplies the bar series a backtest runs over. Sources
// return fully validated, chronologically ordered bars; the engine
// never re-checks ordering.
package feed

import (
	"context"

	"github.com/jleetch1/backtester/internal/core"
)

// Source loads the historical bar series for a symbol.
type Source interface {
	Bars(ctx context.Context, symbol string) ([]core.Bar, error)
}
