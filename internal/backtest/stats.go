package backtest

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Compute derives the full performance report from a trade ledger and
// the capital trajectory of the run. Only closed trades contribute; an
// empty ledger (or one with no closed trades) yields the canonical
// zero-valued report so batch callers never need special-case
// handling.
func Compute(trades []Trade, initialCapital, finalCapital float64, cfg StatsConfig) Report {
	closed := closedTrades(trades)
	if len(closed) == 0 {
		return emptyReport()
	}

	var winners, losers []Trade
	for _, t := range closed {
		if t.IsWin() {
			winners = append(winners, t)
		} else {
			losers = append(losers, t)
		}
	}

	grossProfit := sumProfit(winners)
	// No losing trades leaves gross loss at 1 so the profit factor
	// stays finite and comparable across runs.
	grossLoss := 1.0
	if len(losers) > 0 {
		grossLoss = math.Abs(sumProfit(losers))
	}

	netProfit := finalCapital - initialCapital
	totalReturn := netProfit / initialCapital * 100
	totalDays := wholeDays(closed[0].EntryTime, closed[len(closed)-1].ExitTime)

	var annualized float64
	if totalDays > 0 {
		annualized = (math.Pow(finalCapital/initialCapital, cfg.DaysPerYear/float64(totalDays)) - 1) * 100
	}

	var cagr float64
	if years := float64(totalDays) / cfg.DaysPerYear; years > 0 {
		cagr = (math.Pow(finalCapital/initialCapital, 1/years) - 1) * 100
	}

	returns := PeriodicReturns(BuildEquityCurve(closed, initialCapital))

	retStd := sampleStdDev(returns)
	volatility := retStd * math.Sqrt(cfg.PeriodsPerYear) * 100

	var retMean float64
	if len(returns) > 0 {
		retMean = stat.Mean(returns, nil)
	}
	excess := retMean*cfg.PeriodsPerYear - cfg.RiskFreeRate

	var sharpe float64
	if denom := retStd * math.Sqrt(cfg.PeriodsPerYear); denom != 0 {
		sharpe = excess / denom
	}

	var negative []float64
	for _, r := range returns {
		if r < 0 {
			negative = append(negative, r)
		}
	}
	var sortino float64
	if downside := sampleStdDev(negative) * math.Sqrt(cfg.PeriodsPerYear); downside != 0 {
		sortino = excess / downside
	}

	maxDD := MaxDrawdown(closed, initialCapital)
	var calmar float64
	if maxDD != 0 {
		calmar = annualized / maxDD
	}

	var avgWin, avgLoss float64
	if len(winners) > 0 {
		avgWin = grossProfit / float64(len(winners))
	}
	if len(losers) > 0 {
		avgLoss = sumProfit(losers) / float64(len(losers))
	}
	winFrac := float64(len(winners)) / float64(len(closed))
	expectancy := avgWin*winFrac - math.Abs(avgLoss)*(1-winFrac)

	var var95, var99, cvar95 float64
	if len(returns) > 0 {
		var95 = math.Abs(percentile(returns, 0.05))
		var99 = math.Abs(percentile(returns, 0.01))
		var tail []float64
		for _, r := range returns {
			if r <= -var95 {
				tail = append(tail, r)
			}
		}
		if len(tail) > 0 {
			cvar95 = math.Abs(stat.Mean(tail, nil))
		}
	}

	var durationDays float64
	for _, t := range closed {
		durationDays += float64(wholeDays(t.EntryTime, t.ExitTime))
	}
	avgDuration := durationDays / float64(len(closed))

	largestWin := 0.0
	for _, t := range winners {
		if t.Profit > largestWin {
			largestWin = t.Profit
		}
	}
	largestLoss := 0.0
	for i, t := range losers {
		if i == 0 || t.Profit < largestLoss {
			largestLoss = t.Profit
		}
	}

	return Report{
		NetProfit:        netProfit,
		TotalTrades:      len(closed),
		WinRate:          winFrac * 100,
		ProfitFactor:     grossProfit / grossLoss,
		MaxDrawdown:      maxDD,
		AvgTrade:         netProfit / float64(len(closed)),
		AvgBarsInTrade:   avgDuration,
		TotalReturn:      totalReturn,
		AnnualizedReturn: annualized,
		CAGR:             cagr,
		MonthlyReturns:   monthlyReturns(closed),
		Volatility:       volatility,
		SharpeRatio:      sharpe,
		SortinoRatio:     sortino,
		CalmarRatio:      calmar,
		AvgWin:           avgWin,
		AvgLoss:          avgLoss,
		Expectancy:       expectancy,
		VaR95:            var95,
		VaR99:            var99,
		CVaR95:           cvar95,
		WinningTrades:    len(winners),
		LosingTrades:     len(losers),
		LargestWin:       largestWin,
		LargestLoss:      largestLoss,
		AvgTradeDuration: avgDuration,
		ProfitDist:       profitDistribution(closed),
	}
}

// emptyReport is the canonical zero-valued report returned for runs
// with no closed trades.
func emptyReport() Report {
	return Report{MonthlyReturns: map[string]float64{}}
}

func closedTrades(trades []Trade) []Trade {
	var closed []Trade
	for _, t := range trades {
		if t.IsClosed() {
			closed = append(closed, t)
		}
	}
	return closed
}

func sumProfit(trades []Trade) float64 {
	var sum float64
	for _, t := range trades {
		sum += t.Profit
	}
	return sum
}

// monthlyReturns sums realized profit by the month of each trade's
// exit, labeled "YYYY-MM".
func monthlyReturns(closed []Trade) map[string]float64 {
	monthly := make(map[string]float64)
	for _, t := range closed {
		monthly[t.ExitTime.Format("2006-01")] += t.Profit
	}
	return monthly
}

func profitDistribution(closed []Trade) ProfitDistribution {
	profits := make([]float64, len(closed))
	for i, t := range closed {
		profits[i] = t.Profit
	}

	mean := stat.Mean(profits, nil)
	std := stat.PopStdDev(profits, nil)

	var skew, kurtosis float64
	if std != 0 {
		skew = stat.MomentAbout(3, profits, mean, nil) / math.Pow(std, 3)
		kurtosis = stat.MomentAbout(4, profits, mean, nil)/math.Pow(std, 4) - 3
	}

	return ProfitDistribution{
		Mean:     mean,
		Median:   percentile(profits, 0.5),
		StdDev:   std,
		Skew:     skew,
		Kurtosis: kurtosis,
	}
}

// sampleStdDev is the n-1 standard deviation, 0 when it is undefined.
func sampleStdDev(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return stat.StdDev(x, nil)
}

// percentile is the empirical quantile with linear interpolation
// between order statistics. gonum's cumulant kinds use a different
// quantile definition, so this matches the reference directly.
func percentile(x []float64, p float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// wholeDays returns the number of complete days between two instants.
func wholeDays(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
