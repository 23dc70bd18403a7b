package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jleetch1/backtester/internal/app"
	"github.com/jleetch1/backtester/internal/feed"
	"github.com/jleetch1/backtester/internal/logger"
)

var batchMetricsAddr string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Backtest the configured watchlist",
	Long:  "Run every configured (symbol, strategy) pair and print a summary table",
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the run (e.g. :9090)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.Must(logLevel(cfg), cfg.Logging.Format)
	defer log.Sync()

	a := app.New(cfg, feed.NewCSVSource(cfg.Data.Dir, log), log)

	if cfg.Metrics.Enabled && batchMetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(a.Metrics(), promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(batchMetricsAddr, mux); err != nil {
				log.Warn("metrics server stopped", zap.Error(err))
			}
		}()
		log.Info("serving metrics",
			zap.String("addr", batchMetricsAddr),
			zap.String("path", cfg.Metrics.Path),
		)
	}

	outcomes := a.RunAll(cmd.Context())
	if len(outcomes) == 0 {
		return fmt.Errorf("watchlist is empty, nothing to run")
	}

	fmt.Printf("%-10s %-16s %8s %10s %12s %10s %8s\n",
		"SYMBOL", "STRATEGY", "TRADES", "WIN RATE", "NET PROFIT", "MAX DD", "SHARPE")
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Printf("%-10s %-16s %s\n", o.Symbol, o.Strategy, o.Err)
			continue
		}
		rep := o.Result.Report
		fmt.Printf("%-10s %-16s %8d %9.2f%% %12.2f %9.2f%% %8.2f\n",
			o.Symbol, o.Strategy,
			rep.TotalTrades, rep.WinRate, rep.NetProfit, rep.MaxDrawdown, rep.SharpeRatio)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d runs failed", failed, len(outcomes))
	}
	return nil
}
