package strategy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jleetch1/backtester/internal/core"
	"go.uber.org/zap"
)

// Factory constructs a strategy from configuration parameters.
type Factory func(params Params) (Strategy, error)

// Registry is a static mapping from strategy name to factory,
// populated by explicit registration at program start. There is no
// runtime discovery.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	logger    *zap.Logger
}

// NewRegistry creates an empty strategy registry.
func NewRegistry(logger ...*zap.Logger) *Registry {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.NewNop()
	}
	return &Registry{
		factories: make(map[string]Factory),
		logger:    l,
	}
}

// Register adds a strategy factory under the given name.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		r.logger.Warn("strategy re-registered", zap.String("strategy", name))
	}
	r.factories[name] = f
}

// Create instantiates a registered strategy with the given parameters.
func (r *Registry) Create(name string, params Params) (Strategy, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, core.WrapError(core.ErrStrategyUnknown, fmt.Errorf("%q", name))
	}
	return f(params)
}

// Names returns the registered strategy names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
