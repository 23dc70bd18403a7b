// Package indicator exposes the technical indicators strategies build
// signals from, backed by github.com/markcheno/go-talib. All outputs
// are aligned with the input series: same length, with zeroes over the
// warm-up prefix, so strategies can index bar-for-bar.
package indicator

import (
	talib "github.com/markcheno/go-talib"

	"github.com/jleetch1/backtester/internal/core"
)

// Closes extracts the close prices of a bar series.
func Closes(bars []core.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Volumes extracts the volumes of a bar series.
func Volumes(bars []core.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Volume
	}
	return out
}

// SMA calculates the simple moving average over the given period.
func SMA(values []float64, period int) []float64 {
	if len(values) < period || period < 1 {
		return make([]float64, len(values))
	}
	return talib.Sma(values, period)
}

// EMA calculates the exponential moving average over the given period.
func EMA(values []float64, period int) []float64 {
	if len(values) < period || period < 2 {
		return make([]float64, len(values))
	}
	return talib.Ema(values, period)
}

// RSI scales from 0-100; above 70 usually signals an overbought
// market, below 30 an oversold one.
func RSI(values []float64, period int) []float64 {
	if len(values) <= period || period < 1 {
		return make([]float64, len(values))
	}
	return talib.Rsi(values, period)
}

// MACD returns the MACD line, signal line and histogram.
func MACD(values []float64, fast, slow, signal int) (macd, sig, hist []float64) {
	if len(values) < slow+signal {
		return make([]float64, len(values)), make([]float64, len(values)), make([]float64, len(values))
	}
	return talib.Macd(values, fast, slow, signal)
}

// BollingerBands returns the upper, middle and lower bands for the
// given period and standard-deviation multiple.
func BollingerBands(values []float64, period int, stdDev float64) (upper, middle, lower []float64) {
	if len(values) < period || period < 2 {
		return make([]float64, len(values)), make([]float64, len(values)), make([]float64, len(values))
	}
	return talib.BBands(values, period, stdDev, stdDev, talib.SMA)
}

// ROC is the rate of change over the period, as a percentage.
func ROC(values []float64, period int) []float64 {
	if len(values) <= period || period < 1 {
		return make([]float64, len(values))
	}
	return talib.Roc(values, period)
}

// ATR is the average true range of the bar series.
func ATR(bars []core.Bar, period int) []float64 {
	if len(bars) <= period || period < 1 {
		return make([]float64, len(bars))
	}
	high := make([]float64, len(bars))
	low := make([]float64, len(bars))
	closes := make([]float64, len(bars))
	for i, b := range bars {
		high[i] = b.High
		low[i] = b.Low
		closes[i] = b.Close
	}
	return talib.Atr(high, low, closes, period)
}

// RollingStd is the rolling population standard deviation over the
// period, used for z-scores and band widths.
func RollingStd(values []float64, period int) []float64 {
	if len(values) < period || period < 2 {
		return make([]float64, len(values))
	}
	return talib.StdDev(values, period, 1.0)
}
