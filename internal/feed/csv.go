package feed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/jleetch1/backtester/internal/core"
)

// csvBar is the on-disk row format: one OHLCV sample per line with a
// header row naming the columns.
type csvBar struct {
	Timestamp string  `csv:"timestamp"`
	Open      float64 `csv:"open"`
	High      float64 `csv:"high"`
	Low       float64 `csv:"low"`
	Close     float64 `csv:"close"`
	Volume    float64 `csv:"volume"`
}

// timestamp layouts accepted in CSV files, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CSVSource reads bar series from per-symbol CSV files in a directory:
// <dir>/<SYMBOL>.csv.
type CSVSource struct {
	dir    string
	logger *zap.Logger
}

// NewCSVSource creates a Source backed by CSV files under dir.
func NewCSVSource(dir string, logger ...*zap.Logger) *CSVSource {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.NewNop()
	}
	return &CSVSource{dir: dir, logger: l}
}

// Bars loads and validates the bar series for a symbol. The series
// must be non-empty, strictly chronological, and carry positive
// prices on every row.
func (s *CSVSource) Bars(ctx context.Context, symbol string) ([]core.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, strings.ToUpper(symbol)+".csv")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.WrapError(core.ErrNoData, fmt.Errorf("no data file for %s at %s", symbol, path))
		}
		return nil, core.WrapError(core.ErrFeedFailed, err)
	}
	defer f.Close()

	var rows []*csvBar
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, core.WrapError(core.ErrFeedFailed, fmt.Errorf("parsing %s: %w", path, err))
	}
	if len(rows) == 0 {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("empty data file %s", path))
	}

	bars := make([]core.Bar, 0, len(rows))
	var prev time.Time
	for i, row := range rows {
		ts, err := parseTimestamp(row.Timestamp)
		if err != nil {
			return nil, core.WrapError(core.ErrFeedFailed,
				fmt.Errorf("%s row %d: %w", path, i+1, err))
		}
		bar := core.Bar{
			Symbol: strings.ToUpper(symbol),
			Time:   ts,
			Open:   row.Open,
			High:   row.High,
			Low:    row.Low,
			Close:  row.Close,
			Volume: row.Volume,
		}
		if !bar.IsValid() {
			return nil, core.WrapError(core.ErrInvalidInput,
				fmt.Errorf("%s row %d: non-positive price or volume", path, i+1))
		}
		if !prev.IsZero() && !ts.After(prev) {
			return nil, core.WrapError(core.ErrInvalidInput,
				fmt.Errorf("%s row %d: timestamp %s not after %s", path, i+1, ts, prev))
		}
		prev = ts
		bars = append(bars, bar)
	}

	s.logger.Debug("loaded bar series",
		zap.String("symbol", symbol),
		zap.Int("bars", len(bars)),
		zap.Time("first", bars[0].Time),
		zap.Time("last", bars[len(bars)-1].Time))
	return bars, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
