package api

import (
	"context"
	"fmt"
	"strings"
)

// Lifecycle controls how often a service factory is invoked.
type Lifecycle string

const (
	// LifecycleSingleton constructs the instance once and caches it for the
	// lifetime of the container.
	LifecycleSingleton Lifecycle = "singleton"

	// LifecycleTransient constructs a fresh instance on every resolution
	// request. Transient instances are never cached.
	LifecycleTransient Lifecycle = "transient"
)

// IsValid reports whether the lifecycle is one of the supported values.
// The empty string is valid and treated as singleton.
func (l Lifecycle) IsValid() bool {
	switch l {
	case "", LifecycleSingleton, LifecycleTransient:
		return true
	}
	return false
}

// Factory constructs one service instance.
//
// deps holds the already-resolved dependency instances keyed by service name,
// one entry per declared dependency. cfg is the opaque configuration block
// from the service definition and may be nil. The context is the one passed
// to the resolution call; factories that perform I/O should honor it.
type Factory func(ctx context.Context, deps map[string]any, cfg map[string]any) (any, error)

// ServiceDefinition describes one registrable unit: its unique name, the
// names of the services it requires at construction time, and how to build
// it. Definitions are created at bootstrap and never mutated afterwards.
type ServiceDefinition struct {
	// Name is the unique identifier used in all lookups.
	Name string `yaml:"name" json:"name"`

	// Category is a grouping tag (e.g. "infrastructure", "domain") used for
	// diagnostics and statistics only, never for ordering correctness.
	Category string `yaml:"category,omitempty" json:"category,omitempty"`

	// Dependencies lists the names this service requires at construction
	// time, in the order their instances should be resolved.
	Dependencies []string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`

	// Lifecycle selects singleton or transient construction. Empty means
	// singleton.
	Lifecycle Lifecycle `yaml:"lifecycle,omitempty" json:"lifecycle,omitempty"`

	// Config is an opaque configuration block handed to the factory
	// untouched.
	Config map[string]any `yaml:"config,omitempty" json:"config,omitempty"`

	// Factory builds the instance. Definitions loaded from manifests carry
	// no factory until the embedding program supplies one.
	Factory Factory `yaml:"-" json:"-"`
}

// EffectiveLifecycle returns the lifecycle with the empty value defaulted to
// singleton.
func (d *ServiceDefinition) EffectiveLifecycle() Lifecycle {
	if d.Lifecycle == "" {
		return LifecycleSingleton
	}
	return d.Lifecycle
}

// Validate checks the structural validity of the definition. It does not
// check cross-definition properties such as missing dependency references;
// those belong to the resolver.
func (d *ServiceDefinition) Validate() error {
	if d == nil {
		return ErrNilDefinition
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("service definition has empty name")
	}
	if !d.Lifecycle.IsValid() {
		return fmt.Errorf("service %s has invalid lifecycle %q (must be %q or %q)",
			d.Name, d.Lifecycle, LifecycleSingleton, LifecycleTransient)
	}
	for _, dep := range d.Dependencies {
		if dep == d.Name {
			return fmt.Errorf("service %s depends on itself", d.Name)
		}
	}
	return nil
}

// ResolutionStatistics summarizes a successfully resolved definition set.
// The numbers are diagnostic and never feed back into ordering decisions.
type ResolutionStatistics struct {
	// TotalServices is the number of definitions in the resolved set.
	TotalServices int `yaml:"totalServices" json:"totalServices"`

	// MaxDependencyDepth is the length in edges of the longest dependency
	// chain. A set with no dependencies has depth 0.
	MaxDependencyDepth int `yaml:"maxDependencyDepth" json:"maxDependencyDepth"`

	// CategoryBreakdown counts definitions per category. Definitions without
	// a category are counted under "uncategorized".
	CategoryBreakdown map[string]int `yaml:"categoryBreakdown" json:"categoryBreakdown"`
}

// ResolutionResult is the outcome of an order resolution or validation pass.
// Validation-class failures (missing references, cycles) are reported here
// rather than as returned errors, so callers always receive the complete
// picture in one pass.
type ResolutionResult struct {
	// Success is true when every reference resolved and the graph is acyclic.
	Success bool `yaml:"success" json:"success"`

	// OrderedServices is the deterministic registration order. Populated only
	// on success; a failed resolution produces no partial order.
	OrderedServices []string `yaml:"orderedServices,omitempty" json:"orderedServices,omitempty"`

	// Statistics is populated only on success.
	Statistics ResolutionStatistics `yaml:"statistics" json:"statistics"`

	// Errors collects every validation failure. Empty on success.
	Errors []error `yaml:"-" json:"-"`
}

// ErrorMessages renders the collected errors as strings for serialization
// and display.
func (r *ResolutionResult) ErrorMessages() []string {
	if len(r.Errors) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		msgs = append(msgs, err.Error())
	}
	return msgs
}

// ContainerStatistics reports registry and cache counts for observability.
type ContainerStatistics struct {
	// Registered is the number of registered definitions.
	Registered int `yaml:"registered" json:"registered"`

	// ResolvedSingletons is the number of singleton instances currently
	// cached.
	ResolvedSingletons int `yaml:"resolvedSingletons" json:"resolvedSingletons"`

	// Singletons and Transients split the registered definitions by
	// lifecycle.
	Singletons int `yaml:"singletons" json:"singletons"`
	Transients int `yaml:"transients" json:"transients"`

	// ByCategory counts registered definitions per category.
	ByCategory map[string]int `yaml:"byCategory" json:"byCategory"`
}

// Uncategorized is the category reported for definitions that declare none.
const Uncategorized = "uncategorized"

// CategoryOf returns the definition's category, defaulting to Uncategorized.
func CategoryOf(def *ServiceDefinition) string {
	if def == nil || strings.TrimSpace(def.Category) == "" {
		return Uncategorized
	}
	return def.Category
}
