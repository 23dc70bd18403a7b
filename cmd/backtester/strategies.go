package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jleetch1/backtester/internal/app"
	"github.com/jleetch1/backtester/internal/feed"
	"github.com/jleetch1/backtester/internal/strategy"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List available strategies",
	RunE:  runStrategies,
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}

func runStrategies(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a := app.New(cfg, feed.NewCSVSource(cfg.Data.Dir))
	for _, name := range a.Strategies() {
		desc := ""
		if s, err := a.Describe(name, strategy.Params(cfg.StrategyParams(name))); err == nil {
			desc = s
		}
		fmt.Printf("  %-16s %s\n", name, desc)
	}
	return nil
}
