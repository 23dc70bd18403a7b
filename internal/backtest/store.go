package backtest

import (
	"sync"

	"github.com/jleetch1/backtester/internal/core"
)

type resultKey struct {
	symbol   string
	strategy string
}

// Store keeps completed backtest results keyed by (symbol, strategy)
// for post-run inspection. It is created per batch and owned by the
// orchestrating caller; the runner is the only writer, readers never
// mutate it.
type Store struct {
	mu      sync.RWMutex
	results map[resultKey]*Result
	order   []resultKey // insertion order for enumeration
}

// NewStore creates an empty result store.
func NewStore() *Store {
	return &Store{
		results: make(map[resultKey]*Result),
	}
}

// Put records a run result, replacing any previous result for the same
// symbol and strategy.
func (s *Store) Put(r *Result) {
	key := resultKey{symbol: r.Symbol, strategy: r.Strategy}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[key]; !exists {
		s.order = append(s.order, key)
	}
	s.results[key] = r
}

// Get returns the result for a symbol and strategy.
func (s *Store) Get(symbol, strategy string) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.results[resultKey{symbol: symbol, strategy: strategy}]
	if !ok {
		return nil, core.ErrResultNotFound
	}
	// Return a copy so readers cannot mutate stored state.
	cp := *r
	cp.Trades = append([]Trade(nil), r.Trades...)
	cp.EquityCurve = append([]EquityPoint(nil), r.EquityCurve...)
	return &cp, nil
}

// Has reports whether a run for the symbol and strategy produced any
// trades.
func (s *Store) Has(symbol, strategy string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.results[resultKey{symbol: symbol, strategy: strategy}]
	return ok && len(r.Trades) > 0
}

// TradeDetails returns the ordered trade ledger of a completed run.
func (s *Store) TradeDetails(symbol, strategy string) ([]Trade, error) {
	r, err := s.Get(symbol, strategy)
	if err != nil {
		return nil, err
	}
	return r.Trades, nil
}

// EquityCurve returns the derived equity curve of a completed run.
func (s *Store) EquityCurve(symbol, strategy string) ([]EquityPoint, error) {
	r, err := s.Get(symbol, strategy)
	if err != nil {
		return nil, err
	}
	return r.EquityCurve, nil
}

// Results enumerates all stored results in insertion order.
func (s *Store) Results() []*Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Result, 0, len(s.order))
	for _, key := range s.order {
		cp := *s.results[key]
		out = append(out, &cp)
	}
	return out
}

// Len returns the number of stored results.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
