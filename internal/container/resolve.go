package container

import (
	"context"
	"fmt"
	"time"

	"rollcall/internal/api"
	"rollcall/internal/dependency"
	"rollcall/pkg/logging"
)

// chainKey carries the per-resolution dependency chain on the context. The
// chain is the list of names currently under construction, outermost first.
type chainKey struct{}

// resolutionChain returns the chain carried by ctx, or nil.
func resolutionChain(ctx context.Context) []string {
	chain, _ := ctx.Value(chainKey{}).([]string)
	return chain
}

// withChainEntry returns a context whose chain has name appended. The chain
// is copied so sibling resolutions cannot alias each other's backing array.
func withChainEntry(ctx context.Context, name string) context.Context {
	chain := resolutionChain(ctx)
	next := make([]string, len(chain), len(chain)+1)
	copy(next, chain)
	next = append(next, name)
	return context.WithValue(ctx, chainKey{}, next)
}

// Resolve returns the instance registered under name, constructing it and
// its dependencies first if needed. Singletons are constructed once and
// cached; transients are constructed on every call. The context is handed
// through to factories, so a factory that calls back into Resolve should
// pass it on to keep cycle detection across the re-entry.
func (c *Container) Resolve(ctx context.Context, name string) (instance any, err error) {
	if _, ok := c.lookup(name); !ok {
		return nil, api.NewUnregisteredServiceError(name)
	}

	m := c.collectors()
	start := time.Now()
	defer func() {
		m.RecordResolution(name, err == nil, time.Since(start))
	}()

	// Declared cycles must fail before any flight is joined: two goroutines
	// entering a cycle from different ends would otherwise wait on each
	// other's flight forever.
	if cycleErr := c.precheckCycles(name); cycleErr != nil {
		logging.Debug(subsystem, "Resolve %s rejected: %v", name, cycleErr)
		return nil, cycleErr
	}

	return c.resolve(ctx, name)
}

// ResolveAll resolves names in the given order, typically one produced by
// the resolver, and returns the instances keyed by name. It stops at the
// first failure; the error names the failing service and wraps the cause.
func (c *Container) ResolveAll(ctx context.Context, names []string) (map[string]any, error) {
	instances := make(map[string]any, len(names))
	for _, name := range names {
		instance, err := c.Resolve(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", name, err)
		}
		instances[name] = instance
	}
	logging.Info(subsystem, "Resolved %d services", len(instances))
	return instances, nil
}

// resolve is the recursion target behind Resolve. It assumes the static
// cycle precheck already ran for the top-level name.
func (c *Container) resolve(ctx context.Context, name string) (any, error) {
	// A name re-entered while still under construction is a runtime cycle.
	// This also catches factories that call back into the container.
	chain := resolutionChain(ctx)
	for i, entry := range chain {
		if entry == name {
			path := make([]string, 0, len(chain)-i+1)
			path = append(path, chain[i:]...)
			path = append(path, name)
			return nil, api.NewCircularDependencyError(path)
		}
	}

	def, ok := c.lookup(name)
	if !ok {
		return nil, api.NewUnregisteredServiceError(name)
	}

	if def.EffectiveLifecycle() == api.LifecycleTransient {
		return c.construct(withChainEntry(ctx, name), def)
	}
	return c.resolveSingleton(ctx, name, def)
}

// resolveSingleton returns the cached instance or constructs it exactly
// once, even under concurrent callers.
func (c *Container) resolveSingleton(ctx context.Context, name string, def *api.ServiceDefinition) (any, error) {
	c.mu.RLock()
	if instance, ok := c.singletons[name]; ok {
		c.mu.RUnlock()
		c.collectors().RecordCacheHit()
		return instance, nil
	}
	c.mu.RUnlock()

	// Concurrent callers for the same name share one factory invocation. A
	// completed flight is dropped from the group, so after a factory
	// failure the next Resolve retries instead of replaying the error.
	instance, err, _ := c.flights.Do(name, func() (any, error) {
		// Double-check the cache after winning the flight.
		c.mu.RLock()
		if instance, ok := c.singletons[name]; ok {
			c.mu.RUnlock()
			c.collectors().RecordCacheHit()
			return instance, nil
		}
		c.mu.RUnlock()

		instance, err := c.construct(withChainEntry(ctx, name), def)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.singletons[name] = instance
		c.publishGauges()
		c.mu.Unlock()
		return instance, nil
	})
	if err != nil {
		return nil, err
	}
	return instance, nil
}

// construct resolves the declared dependencies in declaration order and
// invokes the factory. Failed constructions are never cached.
func (c *Container) construct(ctx context.Context, def *api.ServiceDefinition) (any, error) {
	deps := make(map[string]any, len(def.Dependencies))
	for _, depName := range def.Dependencies {
		if _, ok := c.lookup(depName); !ok {
			return nil, api.NewMissingDependencyError(def.Name, depName)
		}
		instance, err := c.resolve(ctx, depName)
		if err != nil {
			return nil, err
		}
		deps[depName] = instance
	}

	instance, err := def.Factory(ctx, deps, def.Config)
	if err != nil {
		logging.Error(subsystem, err, "Factory for service %s failed", def.Name)
		return nil, api.NewFactoryExecutionError(def.Name, err)
	}

	logging.Debug(subsystem, "Constructed service %s", def.Name)
	return instance, nil
}

// precheckCycles runs the static cycle check on the subgraph reachable from
// name against the current definitions.
func (c *Container) precheckCycles(name string) error {
	cycle := c.reachableGraph(name).DetectCycles()
	if cycle == nil {
		return nil
	}
	path := make([]string, len(cycle))
	for i, id := range cycle {
		path[i] = string(id)
	}
	return api.NewCircularDependencyError(path)
}

// reachableGraph builds the dependency subgraph reachable from name.
// Unregistered dependencies stay leaf nodes, so the walk cannot loop
// through them and missing-dependency errors keep their attribution.
func (c *Container) reachableGraph(name string) *dependency.Graph {
	c.mu.RLock()
	defer c.mu.RUnlock()

	graph := dependency.New()
	visited := make(map[string]bool)
	queue := []string{name}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true

		def, ok := c.definitions[current]
		if !ok {
			continue
		}
		graph.AddNode(dependency.NodeID(current))
		for _, dep := range def.Dependencies {
			graph.AddEdge(dependency.NodeID(current), dependency.NodeID(dep))
			queue = append(queue, dep)
		}
	}
	return graph
}
