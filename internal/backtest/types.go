package backtest

import (
	"time"
)

// Trade represents one entry/exit cycle of the simulated position.
// A trade is open until its exit fields are set; the simulator
// guarantees every trade in a returned ledger is closed, forcibly at
// the final bar if necessary.
type Trade struct {
	Symbol     string
	Strategy   string
	EntryTime  time.Time
	EntryPrice float64
	Position   float64 // signed quantity at entry
	Scale      float64 // remaining fraction of Position still held, 1 at open
	ExitTime   time.Time
	ExitPrice  float64
	Profit     float64 // realized, accrues across partial exits
}

// IsClosed returns true if the trade has an exit.
func (t Trade) IsClosed() bool {
	return !t.ExitTime.IsZero()
}

// IsWin returns true if the trade realized a profit.
func (t Trade) IsWin() bool {
	return t.Profit > 0
}

// Duration returns the time between entry and exit, zero while open.
func (t Trade) Duration() time.Duration {
	if !t.IsClosed() {
		return 0
	}
	return t.ExitTime.Sub(t.EntryTime)
}

// EquityPoint is one sample of the derived equity curve, taken at a
// closed trade's exit.
type EquityPoint struct {
	Time   time.Time
	Equity float64
}

// ProfitDistribution describes the per-trade profit distribution using
// population moments.
type ProfitDistribution struct {
	Mean     float64
	Median   float64
	StdDev   float64
	Skew     float64
	Kurtosis float64 // excess kurtosis
}

// Report holds the complete performance statistics of one run. All
// percentage fields are already multiplied by 100.
type Report struct {
	NetProfit        float64
	TotalTrades      int
	WinRate          float64
	ProfitFactor     float64
	MaxDrawdown      float64
	AvgTrade         float64
	AvgBarsInTrade   float64
	TotalReturn      float64
	AnnualizedReturn float64
	CAGR             float64
	MonthlyReturns   map[string]float64 // "2006-01" label -> summed profit
	Volatility       float64
	SharpeRatio      float64
	SortinoRatio     float64
	CalmarRatio      float64
	AvgWin           float64
	AvgLoss          float64
	Expectancy       float64
	VaR95            float64
	VaR99            float64
	CVaR95           float64
	WinningTrades    int
	LosingTrades     int
	LargestWin       float64
	LargestLoss      float64
	AvgTradeDuration float64 // whole days
	ProfitDist       ProfitDistribution
}

// StatsConfig carries the conventions baked into the risk-adjusted
// metrics. Defaults must be preserved for report compatibility.
type StatsConfig struct {
	RiskFreeRate   float64 // annual, as a fraction
	PeriodsPerYear float64 // trading periods used to annualize returns
	DaysPerYear    float64 // calendar days used for annualized return and CAGR
}

// DefaultStatsConfig returns the reference conventions: 2% risk-free
// rate, 252 trading periods and 365 calendar days per year.
func DefaultStatsConfig() StatsConfig {
	return StatsConfig{
		RiskFreeRate:   0.02,
		PeriodsPerYear: 252,
		DaysPerYear:    365,
	}
}

// Result is the complete output of one backtest run.
type Result struct {
	ID             string
	Symbol         string
	Strategy       string
	InitialCapital float64
	FinalCapital   float64
	Trades         []Trade
	EquityCurve    []EquityPoint
	Report         Report
	CompletedAt    time.Time
}
