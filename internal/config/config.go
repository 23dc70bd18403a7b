package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/jleetch1/backtester/internal/core"
)

type Config struct {
	Backtest   BacktestConfig            `mapstructure:"backtest"`
	Data       DataConfig                `mapstructure:"data"`
	Strategies map[string]StrategyConfig `mapstructure:"strategies"`
	Watchlist  []WatchlistItem           `mapstructure:"watchlist"`
	Metrics    MetricsConfig             `mapstructure:"metrics"`
	Logging    LoggingConfig             `mapstructure:"logging"`
}

// BacktestConfig holds the simulation and statistics settings.
type BacktestConfig struct {
	InitialCapital float64 `mapstructure:"initial_capital"`
	RiskFreeRate   float64 `mapstructure:"risk_free_rate"`
	PeriodsPerYear float64 `mapstructure:"periods_per_year"`
	Concurrency    int     `mapstructure:"concurrency"`
}

// DataConfig locates the bar series input.
type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

type StrategyConfig struct {
	Enabled bool           `mapstructure:"enabled"`
	Params  map[string]any `mapstructure:"params"`
}

type WatchlistItem struct {
	Symbol     string   `mapstructure:"symbol"`
	Name       string   `mapstructure:"name"`
	Strategies []string `mapstructure:"strategies"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig holds logger configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Backtest: BacktestConfig{
			InitialCapital: 100000,
			RiskFreeRate:   0.02,
			PeriodsPerYear: 252,
			Concurrency:    4,
		},
		Data: DataConfig{
			Dir: "data",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Backtest.InitialCapital <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("initial_capital must be positive, got %f", c.Backtest.InitialCapital))
	}
	if c.Backtest.RiskFreeRate < 0 || c.Backtest.RiskFreeRate > 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("risk_free_rate must be between 0 and 1, got %f", c.Backtest.RiskFreeRate))
	}
	if c.Backtest.PeriodsPerYear <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("periods_per_year must be positive, got %f", c.Backtest.PeriodsPerYear))
	}
	if c.Backtest.Concurrency < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("concurrency must be at least 1, got %d", c.Backtest.Concurrency))
	}

	if c.Data.Dir == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("data dir is required"))
	}

	for _, item := range c.Watchlist {
		if item.Symbol == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("watchlist entries require a symbol"))
		}
		if len(item.Strategies) == 0 {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("watchlist entry %s names no strategies", item.Symbol))
		}
	}

	return nil
}

// StrategyParams returns the configured params for a strategy, or an
// empty map when the strategy has no config section.
func (c *Config) StrategyParams(name string) map[string]any {
	if sc, ok := c.Strategies[name]; ok && sc.Params != nil {
		return sc.Params
	}
	return map[string]any{}
}
