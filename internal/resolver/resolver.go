package resolver

import (
	"fmt"

	"rollcall/internal/api"
	"rollcall/internal/dependency"
	"rollcall/pkg/logging"
)

const subsystem = "resolver"

// Resolver translates a set of service definitions into a validated,
// deterministic registration order with diagnostics. It is stateless; one
// Resolver can serve any number of definition sets.
type Resolver struct{}

// New returns a Resolver.
func New() *Resolver {
	return &Resolver{}
}

// ResolveOrder validates the definition set and computes the registration
// order. Validation-class failures (missing references, cycles, malformed
// definitions) are collected into the result, never returned as Go errors,
// and they are all reported in one pass. On failure no partial order is
// produced.
func (r *Resolver) ResolveOrder(definitions []*api.ServiceDefinition) *api.ResolutionResult {
	result, graph := r.validate(definitions)
	if !result.Success {
		return result
	}

	order, err := graph.TopologicalOrder()
	if err != nil {
		// validate already ran the cycle check, so this only triggers when
		// the two checks disagree; report it the same way rather than panic.
		result.Success = false
		result.Errors = append(result.Errors, translateCycleError(err))
		return result
	}

	result.OrderedServices = make([]string, len(order))
	for i, id := range order {
		result.OrderedServices[i] = string(id)
	}
	result.Statistics = statistics(definitions, graph)

	logging.Info(subsystem, "Resolved order for %d services (max depth %d)",
		result.Statistics.TotalServices, result.Statistics.MaxDependencyDepth)
	return result
}

// Validate runs reference and cycle validation without computing the order.
// It is the fast pre-flight counterpart of ResolveOrder. A successful result
// carries statistics but no order.
func (r *Resolver) Validate(definitions []*api.ServiceDefinition) *api.ResolutionResult {
	result, graph := r.validate(definitions)
	if result.Success {
		result.Statistics = statistics(definitions, graph)
	}
	return result
}

// validate performs the full validation pass: structural checks on every
// definition, collection of ALL missing dependency references into one
// ValidationError, and the static cycle check. The built graph is returned
// for the ordering step.
func (r *Resolver) validate(definitions []*api.ServiceDefinition) (*api.ResolutionResult, *dependency.Graph) {
	result := &api.ResolutionResult{Success: true}
	graph := dependency.New()

	logging.Debug(subsystem, "Validating %d service definitions", len(definitions))

	defined := make(map[string]bool, len(definitions))
	for i, def := range definitions {
		if def == nil {
			result.Errors = append(result.Errors, fmt.Errorf("definition %d: %w", i, api.ErrNilDefinition))
			continue
		}
		if err := def.Validate(); err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		if defined[def.Name] {
			result.Errors = append(result.Errors, api.NewDuplicateServiceError(def.Name))
			continue
		}
		defined[def.Name] = true
	}

	// Every missing reference is collected before reporting, so one run
	// surfaces the complete list instead of the first hit.
	var missing []api.MissingRef
	for _, def := range definitions {
		if def == nil || !defined[def.Name] {
			continue
		}
		graph.AddNode(dependency.NodeID(def.Name))
		for _, dep := range def.Dependencies {
			if !defined[dep] {
				missing = append(missing, api.MissingRef{Service: def.Name, Missing: dep})
			}
			// Edge direction: dependent -> dependency. Unknown names become
			// leaf nodes; they cannot form cycles.
			graph.AddEdge(dependency.NodeID(def.Name), dependency.NodeID(dep))
		}
	}
	if len(missing) > 0 {
		result.Errors = append(result.Errors, api.NewValidationError(missing))
	}

	if cycle := graph.DetectCycles(); cycle != nil {
		path := make([]string, len(cycle))
		for i, id := range cycle {
			path[i] = string(id)
		}
		result.Errors = append(result.Errors, api.NewCircularDependencyError(path))
	}

	if len(result.Errors) > 0 {
		result.Success = false
		logging.Debug(subsystem, "Validation failed with %d errors", len(result.Errors))
	}
	return result, graph
}

// statistics derives the diagnostic numbers for a successfully validated
// set. The graph must be acyclic at this point.
func statistics(definitions []*api.ServiceDefinition, graph *dependency.Graph) api.ResolutionStatistics {
	stats := api.ResolutionStatistics{
		TotalServices:     len(definitions),
		CategoryBreakdown: make(map[string]int),
	}
	for _, def := range definitions {
		stats.CategoryBreakdown[api.CategoryOf(def)]++
	}
	stats.MaxDependencyDepth = maxDependencyDepth(graph)
	return stats
}

// maxDependencyDepth returns the length in edges of the longest dependency
// chain, computed with a memoized depth-first walk. A set without
// dependencies has depth 0.
func maxDependencyDepth(graph *dependency.Graph) int {
	memo := make(map[dependency.NodeID]int, graph.Len())

	var depth func(id dependency.NodeID) int
	depth = func(id dependency.NodeID) int {
		if d, ok := memo[id]; ok {
			return d
		}
		best := 0
		for _, dep := range graph.Dependencies(id) {
			if d := depth(dep) + 1; d > best {
				best = d
			}
		}
		memo[id] = best
		return best
	}

	max := 0
	for _, id := range graph.Nodes() {
		if d := depth(id); d > max {
			max = d
		}
	}
	return max
}

// translateCycleError converts the graph package's cycle error into the
// shared api error, preserving the path.
func translateCycleError(err error) error {
	if cycleErr, ok := err.(*dependency.CyclicGraphError); ok {
		path := make([]string, len(cycleErr.Path))
		for i, id := range cycleErr.Path {
			path[i] = string(id)
		}
		return api.NewCircularDependencyError(path)
	}
	return err
}
