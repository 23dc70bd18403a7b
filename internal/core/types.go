package core

import "time"

// Bar represents one OHLCV sample at a fixed timestamp.
type Bar struct {
	Symbol string
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// IsValid checks that the bar carries usable price data.
func (b Bar) IsValid() bool {
	return !b.Time.IsZero() &&
		b.Open > 0 && b.High > 0 && b.Low > 0 && b.Close > 0 &&
		b.Volume >= 0
}

// Signal is a per-bar directional trading instruction. Whole-unit values
// cover the base contract; a value strictly between -1 and 0 requests a
// partial exit of that fraction of the remaining position.
type Signal float64

const (
	Enter Signal = 1
	Exit  Signal = -1
	Hold  Signal = 0
)

// IsEnter reports whether the signal opens a position.
func (s Signal) IsEnter() bool {
	return s >= 1
}

// IsExit reports whether the signal closes a position in full.
func (s Signal) IsExit() bool {
	return s <= -1
}

// IsPartialExit reports whether the signal requests a fractional
// position reduction.
func (s Signal) IsPartialExit() bool {
	return s > -1 && s < 0
}

// Fraction returns the share of the remaining position a partial-exit
// signal scales out, in (0, 1).
func (s Signal) Fraction() float64 {
	if !s.IsPartialExit() {
		return 0
	}
	return float64(-s)
}
