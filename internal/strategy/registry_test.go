package strategy

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jleetch1/backtester/internal/core"
)

type mockStrategy struct {
	name string
}

func (m *mockStrategy) Name() string        { return m.name }
func (m *mockStrategy) Description() string { return "mock strategy" }
func (m *mockStrategy) Signals(bars []core.Bar) ([]core.Signal, error) {
	return make([]core.Signal, len(bars)), nil
}
func (m *mockStrategy) PositionSize(capital, price float64) float64 {
	return capital / price
}

func mockFactory(name string) Factory {
	return func(params Params) (Strategy, error) {
		return &mockStrategy{name: name}, nil
	}
}

func TestRegistry_RegisterAndCreate(t *testing.T) {
	r := NewRegistry()
	r.Register("mock", mockFactory("mock"))

	s, err := r.Create("mock", Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name() != "mock" {
		t.Errorf("expected 'mock', got '%s'", s.Name())
	}
}

func TestRegistry_CreateUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Create("missing", Params{})
	if !errors.Is(err, core.ErrStrategyUnknown) {
		t.Errorf("expected ErrStrategyUnknown, got %v", err)
	}
}

func TestRegistry_FactoryErrorPropagates(t *testing.T) {
	r := NewRegistry()
	r.Register("broken", func(params Params) (Strategy, error) {
		return nil, core.ErrConfigInvalid
	})

	_, err := r.Create("broken", Params{})
	if !errors.Is(err, core.ErrConfigInvalid) {
		t.Errorf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := NewRegistry()
	r.Register("zeta", mockFactory("zeta"))
	r.Register("alpha", mockFactory("alpha"))
	r.Register("mid", mockFactory("mid"))

	want := []string{"alpha", "mid", "zeta"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRegistry_ReRegisterReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register("mock", mockFactory("first"))
	r.Register("mock", mockFactory("second"))

	s, err := r.Create("mock", Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name() != "second" {
		t.Errorf("expected replacement factory, got '%s'", s.Name())
	}
	if len(r.Names()) != 1 {
		t.Errorf("expected a single registered name, got %v", r.Names())
	}
}

func TestParams_Accessors(t *testing.T) {
	p := Params{
		"int":     5,
		"int64":   int64(7),
		"float":   2.5,
		"whole":   10.0,
		"ignored": "text",
	}

	if got := p.Int("int", 0); got != 5 {
		t.Errorf("Int(int) = %d, want 5", got)
	}
	if got := p.Int("int64", 0); got != 7 {
		t.Errorf("Int(int64) = %d, want 7", got)
	}
	if got := p.Int("whole", 0); got != 10 {
		t.Errorf("Int(whole) = %d, want 10", got)
	}
	if got := p.Int("missing", 42); got != 42 {
		t.Errorf("Int(missing) = %d, want default 42", got)
	}
	if got := p.Int("ignored", 42); got != 42 {
		t.Errorf("Int(ignored) = %d, want default 42", got)
	}
	if got := p.Float("float", 0); got != 2.5 {
		t.Errorf("Float(float) = %v, want 2.5", got)
	}
	if got := p.Float("int", 0); got != 5 {
		t.Errorf("Float(int) = %v, want 5", got)
	}
	if got := p.Float("missing", 1.5); got != 1.5 {
		t.Errorf("Float(missing) = %v, want default 1.5", got)
	}
}
