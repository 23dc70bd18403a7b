package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jleetch1/backtester/internal/app"
	"github.com/jleetch1/backtester/internal/backtest"
	"github.com/jleetch1/backtester/internal/feed"
	"github.com/jleetch1/backtester/internal/logger"
)

var (
	backtestSymbol  string
	backtestDataDir string
	backtestCapital float64
	backtestTrades  bool
)

var backtestCmd = &cobra.Command{
	Use:   "backtest [strategy]",
	Short: "Run one strategy against one symbol",
	Long:  "Run a strategy against historical data and show performance statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestSymbol, "symbol", "", "Symbol to backtest (required)")
	backtestCmd.Flags().StringVar(&backtestDataDir, "data", "", "Directory with <SYMBOL>.csv bar files (overrides config)")
	backtestCmd.Flags().Float64Var(&backtestCapital, "capital", 0, "Initial capital (overrides config)")
	backtestCmd.Flags().BoolVar(&backtestTrades, "trades", false, "Print the trade ledger")

	backtestCmd.MarkFlagRequired("symbol")

	rootCmd.AddCommand(backtestCmd)
}

func runBacktest(cmd *cobra.Command, args []string) error {
	strategyName := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if backtestDataDir != "" {
		cfg.Data.Dir = backtestDataDir
	}
	if backtestCapital > 0 {
		cfg.Backtest.InitialCapital = backtestCapital
	}

	log := logger.Must(logLevel(cfg), cfg.Logging.Format)
	defer log.Sync()

	a := app.New(cfg, feed.NewCSVSource(cfg.Data.Dir, log), log)
	result, err := a.RunOne(cmd.Context(), backtestSymbol, strategyName)
	if err != nil {
		return err
	}

	printResult(result)
	if backtestTrades {
		printTrades(result.Trades)
	}
	return nil
}

func printResult(r *backtest.Result) {
	rep := r.Report

	fmt.Printf("=== Backtest: %s / %s ===\n", r.Symbol, r.Strategy)
	fmt.Printf("Initial capital:    %14.2f\n", r.InitialCapital)
	fmt.Printf("Final capital:      %14.2f\n", r.FinalCapital)
	fmt.Printf("Net profit:         %14.2f\n", rep.NetProfit)
	fmt.Println()

	fmt.Printf("Total trades:       %8d (%d won, %d lost)\n",
		rep.TotalTrades, rep.WinningTrades, rep.LosingTrades)
	fmt.Printf("Win rate:           %11.2f%%\n", rep.WinRate)
	fmt.Printf("Profit factor:      %12.2f\n", rep.ProfitFactor)
	fmt.Printf("Expectancy:         %12.2f\n", rep.Expectancy)
	fmt.Printf("Avg win / loss:     %12.2f / %.2f\n", rep.AvgWin, rep.AvgLoss)
	fmt.Printf("Largest win / loss: %12.2f / %.2f\n", rep.LargestWin, rep.LargestLoss)
	fmt.Printf("Avg duration:       %12.2f days\n", rep.AvgTradeDuration)
	fmt.Println()

	fmt.Printf("Total return:       %11.2f%%\n", rep.TotalReturn)
	fmt.Printf("Annualized return:  %11.2f%%\n", rep.AnnualizedReturn)
	fmt.Printf("CAGR:               %11.2f%%\n", rep.CAGR)
	fmt.Printf("Max drawdown:       %11.2f%%\n", rep.MaxDrawdown)
	fmt.Printf("Volatility:         %11.2f%%\n", rep.Volatility)
	fmt.Println()

	fmt.Printf("Sharpe ratio:       %12.2f\n", rep.SharpeRatio)
	fmt.Printf("Sortino ratio:      %12.2f\n", rep.SortinoRatio)
	fmt.Printf("Calmar ratio:       %12.2f\n", rep.CalmarRatio)
	fmt.Printf("VaR 95 / 99:        %12.4f / %.4f\n", rep.VaR95, rep.VaR99)
	fmt.Printf("CVaR 95:            %12.4f\n", rep.CVaR95)
	fmt.Println()

	if len(rep.MonthlyReturns) > 0 {
		fmt.Println("Monthly profit:")
		months := make([]string, 0, len(rep.MonthlyReturns))
		for m := range rep.MonthlyReturns {
			months = append(months, m)
		}
		sort.Strings(months)
		for _, m := range months {
			fmt.Printf("  %s  %12.2f\n", m, rep.MonthlyReturns[m])
		}
		fmt.Println()
	}

	fmt.Println("Profit distribution:")
	fmt.Printf("  mean %.2f  median %.2f  std %.2f  skew %.2f  kurtosis %.2f\n",
		rep.ProfitDist.Mean, rep.ProfitDist.Median, rep.ProfitDist.StdDev,
		rep.ProfitDist.Skew, rep.ProfitDist.Kurtosis)
}

func printTrades(trades []backtest.Trade) {
	fmt.Println()
	fmt.Println("Trades:")
	for i, tr := range trades {
		fmt.Printf("  %3d  %s -> %s  entry %.2f  exit %.2f  qty %.4f  profit %12.2f\n",
			i+1,
			tr.EntryTime.Format("2006-01-02"),
			tr.ExitTime.Format("2006-01-02"),
			tr.EntryPrice, tr.ExitPrice, tr.Position, tr.Profit)
	}
}
