package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jleetch1/backtester/internal/config"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "backtester",
	Short: "Event-driven trading strategy backtester",
	Long: `backtester replays historical bar data through trading strategies,
simulates the resulting trades and reports performance statistics.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// loadConfig reads the configured file or falls back to defaults, and
// validates the result.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func logLevel(cfg *config.Config) string {
	if debug {
		return "debug"
	}
	return cfg.Logging.Level
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
