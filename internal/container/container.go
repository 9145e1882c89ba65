package container

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"rollcall/internal/api"
	"rollcall/internal/metrics"
	"rollcall/pkg/logging"
)

const subsystem = "container"

// Container is the runtime registry of service definitions and the cache of
// constructed singleton instances. All methods are safe for concurrent use.
type Container struct {
	// id correlates log lines from this container instance.
	id string

	mu          sync.RWMutex
	definitions map[string]*api.ServiceDefinition
	singletons  map[string]any

	// metrics receives registry and resolution events. Nil disables
	// recording; every collector method tolerates a nil receiver.
	metrics *metrics.Metrics

	// flights deduplicates concurrent constructions of the same singleton.
	flights singleflight.Group
}

// New creates an empty container.
func New() *Container {
	c := &Container{
		id:          uuid.New().String(),
		definitions: make(map[string]*api.ServiceDefinition),
		singletons:  make(map[string]any),
	}
	logging.Debug(subsystem, "Created container %s", c.id)
	return c
}

// ID returns the container's correlation id, generated at creation.
func (c *Container) ID() string {
	return c.id
}

// SetMetrics attaches the collectors the container reports into. Passing
// nil, the default, disables recording.
func (c *Container) SetMetrics(m *metrics.Metrics) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.metrics = m
}

// collectors returns the attached collectors, possibly nil.
func (c *Container) collectors() *metrics.Metrics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.metrics
}

// publishGauges mirrors the registry counts into the gauges. Callers must
// hold c.mu.
func (c *Container) publishGauges() {
	c.metrics.UpdateContainerStats(api.ContainerStatistics{
		Registered:         len(c.definitions),
		ResolvedSingletons: len(c.singletons),
	})
}

// Register adds a service definition to the container. The definition must
// be structurally valid and carry a factory. Registering a name that is
// already taken fails with a DuplicateServiceError and leaves the existing
// registration untouched.
func (c *Container) Register(def *api.ServiceDefinition) error {
	if def == nil {
		return api.ErrNilDefinition
	}
	if err := def.Validate(); err != nil {
		return err
	}
	if def.Factory == nil {
		return fmt.Errorf("service %s: %w", def.Name, api.ErrNilFactory)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.definitions[def.Name]; exists {
		return api.NewDuplicateServiceError(def.Name)
	}

	c.definitions[def.Name] = def
	c.publishGauges()
	logging.Debug(subsystem, "Registered service %s (lifecycle %s)", def.Name, def.EffectiveLifecycle())
	return nil
}

// Unregister removes a definition and, for singletons, drops the cached
// instance. Register after Unregister is the only sanctioned way to replace
// a service; dependents resolved against the old instance keep it.
func (c *Container) Unregister(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.definitions[name]; !exists {
		return api.NewUnregisteredServiceError(name)
	}

	delete(c.definitions, name)
	delete(c.singletons, name)
	c.publishGauges()
	logging.Debug(subsystem, "Unregistered service %s", name)
	return nil
}

// Has reports whether a definition is registered under name.
func (c *Container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, exists := c.definitions[name]
	return exists
}

// Len returns the number of registered definitions.
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.definitions)
}

// Definitions returns the registered definitions sorted by name. The slice
// is a snapshot; the definitions themselves are shared and must not be
// mutated.
func (c *Container) Definitions() []*api.ServiceDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	defs := make([]*api.ServiceDefinition, 0, len(c.definitions))
	for _, def := range c.definitions {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})
	return defs
}

// Statistics returns registry and cache counts for observability.
func (c *Container) Statistics() api.ContainerStatistics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := api.ContainerStatistics{
		Registered:         len(c.definitions),
		ResolvedSingletons: len(c.singletons),
		ByCategory:         make(map[string]int),
	}
	for _, def := range c.definitions {
		if def.EffectiveLifecycle() == api.LifecycleTransient {
			stats.Transients++
		} else {
			stats.Singletons++
		}
		stats.ByCategory[api.CategoryOf(def)]++
	}
	return stats
}

// lookup returns the definition registered under name.
func (c *Container) lookup(name string) (*api.ServiceDefinition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	def, exists := c.definitions[name]
	return def, exists
}
