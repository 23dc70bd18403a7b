// Package strategy defines the signal-source boundary of the
// backtester: a strategy turns a bar series into a per-bar signal
// stream and sizes positions at entry. Strategies are pure with
// respect to the engine; it treats them as opaque policies.
package strategy

import (
	"github.com/jleetch1/backtester/internal/core"
)

// Strategy is the interface trading strategies implement.
type Strategy interface {
	Name() string
	Description() string

	// Signals produces one signal per bar, aligned index-for-index
	// with the input series.
	Signals(bars []core.Bar) ([]core.Signal, error)

	// PositionSize returns the quantity to open given the current
	// capital and the entry price. Queried only at Enter transitions.
	PositionSize(capital, price float64) float64
}

// Params holds free-form strategy parameters from configuration.
type Params map[string]any

// Int reads an integer parameter, falling back to def when absent.
// YAML decoding may deliver numbers as int or float64.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// Float reads a float parameter, falling back to def when absent.
func (p Params) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}
