package bollinger

import (
	"errors"
	"testing"
	"time"

	"github.com/jleetch1/backtester/internal/core"
	"github.com/jleetch1/backtester/internal/strategy"
)

func barsFromCloses(closes []float64) []core.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]core.Bar, len(closes))
	for i, c := range closes {
		bars[i] = core.Bar{
			Symbol: "TEST",
			Time:   start.AddDate(0, 0, i),
			Open:   c, High: c, Low: c, Close: c,
			Volume: 1000,
		}
	}
	return bars
}

func TestBollinger_ImplementsStrategy(t *testing.T) {
	var _ strategy.Strategy = (*Bollinger)(nil)
}

func TestBollinger_SellsUpperBandBreak(t *testing.T) {
	s, err := New(3, 1, strategy.DefaultSizing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Final window {10, 10, 20}: mean 13.33, std 4.71, upper 18.05.
	// The 20 close breaks the upper band.
	closes := []float64{10, 11, 10, 10, 20}
	got, err := s.Signals(barsFromCloses(closes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[len(got)-1] != core.Exit {
		t.Errorf("expected Exit on upper band break, got %v", got[len(got)-1])
	}
}

func TestBollinger_BuysLowerBandBreak(t *testing.T) {
	s, err := New(3, 1, strategy.DefaultSizing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Final window {10, 10, 2}: mean 7.33, std 3.77, lower 3.56.
	closes := []float64{10, 11, 10, 10, 2}
	got, err := s.Signals(barsFromCloses(closes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[len(got)-1] != core.Enter {
		t.Errorf("expected Enter on lower band break, got %v", got[len(got)-1])
	}
}

func TestBollinger_NotEnoughData(t *testing.T) {
	s, err := New(20, 2, strategy.DefaultSizing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = s.Signals(barsFromCloses(make([]float64, 10)))
	if !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestBollinger_InvalidParams(t *testing.T) {
	if _, err := New(1, 2, strategy.DefaultSizing()); !errors.Is(err, core.ErrConfigInvalid) {
		t.Errorf("expected ErrConfigInvalid for period 1, got %v", err)
	}
	if _, err := New(20, 0, strategy.DefaultSizing()); !errors.Is(err, core.ErrConfigInvalid) {
		t.Errorf("expected ErrConfigInvalid for zero std dev, got %v", err)
	}
}

func TestBollinger_FromParams(t *testing.T) {
	s, err := FromParams(strategy.Params{"period": 10, "std_dev": 1.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Description() != "Bollinger Bands (10, 1.5 sd)" {
		t.Errorf("unexpected description: %s", s.Description())
	}
}
