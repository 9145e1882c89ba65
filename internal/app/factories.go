package app

import (
	"context"
	"fmt"
	"sync"

	"rollcall/internal/api"
)

// FactoryRegistry maps service names to the factories that construct them.
// Manifests declare services without code, so the embedding program binds
// the constructors here before Run materializes anything.
type FactoryRegistry struct {
	mu        sync.RWMutex
	factories map[string]api.Factory
	fallback  api.Factory
}

// NewFactoryRegistry creates an empty registry.
func NewFactoryRegistry() *FactoryRegistry {
	return &FactoryRegistry{
		factories: make(map[string]api.Factory),
	}
}

// Bind associates a factory with a service name. Binding a name twice is an
// error; there is no unbind.
func (r *FactoryRegistry) Bind(name string, factory api.Factory) error {
	if factory == nil {
		return fmt.Errorf("factory for %s: %w", name, api.ErrNilFactory)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("factory for %s already bound", name)
	}
	r.factories[name] = factory
	return nil
}

// SetFallback sets the factory used for names without an explicit binding.
func (r *FactoryRegistry) SetFallback(factory api.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fallback = factory
}

// Get returns the factory bound to name. An explicit binding wins over the
// fallback.
func (r *FactoryRegistry) Get(name string) (api.Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if factory, ok := r.factories[name]; ok {
		return factory, true
	}
	if r.fallback != nil {
		return r.fallback, true
	}
	return nil, false
}

// PlaceholderFactory constructs an inert empty instance. CLI commands set
// it as the fallback so manifest-only runs can exercise registration and
// materialization without the real constructors, which live in the
// embedding program.
func PlaceholderFactory(ctx context.Context, deps map[string]any, cfg map[string]any) (any, error) {
	return struct{}{}, nil
}
