package backtest

// BuildEquityCurve derives the equity trajectory from a trade ledger:
// one point per closed trade in ledger order, equity being initial
// capital plus cumulative realized profit. The curve is recomputed on
// demand and never mutated in place.
func BuildEquityCurve(trades []Trade, initialCapital float64) []EquityPoint {
	var curve []EquityPoint
	equity := initialCapital
	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}
		equity += t.Profit
		curve = append(curve, EquityPoint{Time: t.ExitTime, Equity: equity})
	}
	return curve
}

// PeriodicReturns computes the percentage change between consecutive
// equity points. The first point has no predecessor and is dropped;
// fewer than two points yield an empty series.
func PeriodicReturns(curve []EquityPoint) []float64 {
	if len(curve) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		returns = append(returns, (curve[i].Equity-prev)/prev)
	}
	return returns
}

// MaxDrawdown walks the equity curve tracking the running peak and
// returns the largest peak-to-trough decline as a positive percentage.
// The peak starts at the initial capital, so an immediate losing first
// trade is measured against the starting capital rather than itself.
func MaxDrawdown(trades []Trade, initialCapital float64) float64 {
	curve := BuildEquityCurve(trades, initialCapital)
	if len(curve) == 0 {
		return 0
	}

	var maxDD float64
	peak := initialCapital
	for _, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		dd := (peak - p.Equity) / peak * 100
		if dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}
