package rsi

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

func TestRSI_ImplementsStrategy(t *testing.T) {
	var _ strategy.Strategy = (*RSI)(nil)
}

func TestRSI_SellsOverbought(t *testing.T) {
	s, err := New(14, 30, 70, strategy.DefaultSizing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Strictly rising closes drive RSI to 100 past the warm-up.
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	got, err := s.Signals(barsFromCloses(closes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 14; i++ {
		if got[i] != core.Hold {
			t.Errorf("warm-up signal[%d] = %v, want Hold", i, got[i])
		}
	}
	for i := 14; i < len(got); i++ {
		if got[i] != core.Exit {
			t.Errorf("signal[%d] = %v, want Exit", i, got[i])
		}
	}
}

func TestRSI_BuysOversold(t *testing.T) {
	s, err := New(14, 30, 70, strategy.DefaultSizing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}

	got, err := s.Signals(barsFromCloses(closes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 14; i < len(got); i++ {
		if got[i] != core.Enter {
			t.Errorf("signal[%d] = %v, want Enter", i, got[i])
		}
	}
}

func TestRSI_NotEnoughData(t *testing.T) {
	s, err := New(14, 30, 70, strategy.DefaultSizing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = s.Signals(barsFromCloses(make([]float64, 14)))
	if !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestRSI_InvalidLevels(t *testing.T) {
	if _, err := New(14, 70, 30, strategy.DefaultSizing()); !errors.Is(err, core.ErrConfigInvalid) {
		t.Errorf("expected ErrConfigInvalid for inverted levels, got %v", err)
	}
	if _, err := New(1, 30, 70, strategy.DefaultSizing()); !errors.Is(err, core.ErrConfigInvalid) {
		t.Errorf("expected ErrConfigInvalid for period 1, got %v", err)
	}
}

func TestRSI_FromParams(t *testing.T) {
	s, err := FromParams(strategy.Params{"rsi_period": 7, "oversold": 25.0, "overbought": 75.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Description() != "RSI (7, 25/75)" {
		t.Errorf("unexpected description: %s", s.Description())
	}
}
