package momentum

import (
	"errors"
	"testing"
	"time"

	"github.com/jleetch1/backtester/internal/core"
	"github.com/jleetch1/backtester/internal/strategy"
)

func makeBars(closes, volumes []float64) []core.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]core.Bar, len(closes))
	for i, c := range closes {
		bars[i] = core.Bar{
			Symbol: "TEST",
			Time:   start.AddDate(0, 0, i),
			Open:   c, High: c, Low: c, Close: c,
			Volume: volumes[i],
		}
	}
	return bars
}

func TestMomentum_ImplementsStrategy(t *testing.T) {
	var _ strategy.Strategy = (*Momentum)(nil)
}

func TestMomentum_Signals(t *testing.T) {
	s, err := New(2, 1.5, -1.0, 1.5, strategy.DefaultSizing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// ROC(2): -, -, 1.0, 4.0, 1.98.
	// i=3: momentum 4.0 > 1.5 and volume 400 > 1.5 * avg(100, 400) -> Enter.
	// i=4: momentum 1.98 fell below 4.0 -> Exit on reversal.
	closes := []float64{100, 100, 101, 104, 103}
	volumes := []float64{100, 100, 100, 400, 100}

	got, err := s.Signals(makeBars(closes, volumes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []core.Signal{0, 0, 0, core.Enter, core.Exit}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("signal[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMomentum_VolumeFilterBlocksEntry(t *testing.T) {
	s, err := New(2, 1.5, -1.0, 1.5, strategy.DefaultSizing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same price path but flat volume: momentum alone is not enough.
	closes := []float64{100, 100, 101, 104, 105}
	volumes := []float64{100, 100, 100, 100, 100}

	got, err := s.Signals(makeBars(closes, volumes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[3] != core.Hold {
		t.Errorf("expected Hold without volume confirmation, got %v", got[3])
	}
}

func TestMomentum_SellsBelowThreshold(t *testing.T) {
	s, err := New(2, 1.5, -1.0, 1.5, strategy.DefaultSizing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// i=3: momentum (97-100)/100*100 = -3.0 < -1.0 -> Exit.
	closes := []float64{100, 100, 100, 97}
	volumes := []float64{100, 100, 100, 100}

	got, err := s.Signals(makeBars(closes, volumes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[3] != core.Exit {
		t.Errorf("expected Exit below sell threshold, got %v", got[3])
	}
}

func TestMomentum_NotEnoughData(t *testing.T) {
	s, err := New(10, 2.0, -1.0, 1.5, strategy.DefaultSizing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = s.Signals(makeBars(make([]float64, 11), make([]float64, 11)))
	if !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestMomentum_InvalidParams(t *testing.T) {
	if _, err := New(0, 2.0, -1.0, 1.5, strategy.DefaultSizing()); !errors.Is(err, core.ErrConfigInvalid) {
		t.Errorf("expected ErrConfigInvalid for zero period, got %v", err)
	}
	if _, err := New(10, 2.0, -1.0, 0, strategy.DefaultSizing()); !errors.Is(err, core.ErrConfigInvalid) {
		t.Errorf("expected ErrConfigInvalid for zero volume factor, got %v", err)
	}
}

func TestMomentum_FromParams(t *testing.T) {
	s, err := FromParams(strategy.Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name() != "momentum" {
		t.Errorf("unexpected name: %s", s.Name())
	}
}
