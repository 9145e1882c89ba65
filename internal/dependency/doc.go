// Package dependency provides a directed graph over service names for
// managing construction-order dependencies in rollcall.
//
// This package is the foundation for deterministic service startup: it
// detects dependency cycles with a precise diagnostic path and computes a
// reproducible topological order for any acyclic definition set.
//
// # Core Concepts
//
// Graph: A directed graph where each node is a service name and each edge
// records that one service depends on another. The graph may be constructed
// with a cycle present; validation is an explicit, separate step so callers
// can report the exact cycle path instead of failing mid-build.
//
// NodeID: The unique string identifier of a node. Callers choose the
// encoding; the resolver uses bare service names.
//
// # Dependency Rules
//
//  1. Edges point from dependent to dependency ("A depends on B").
//  2. A node is ready for placement only when all its dependencies are
//     already placed.
//  3. Cycles never produce an order; they are reported, never silently
//     broken by picking an arbitrary sequence.
//
// # Operations
//
// AddNode: Add a name with no edges. Idempotent; duplicate adds are no-ops.
//
// AddEdge: Record a dependency. Both endpoints are implicitly added;
// duplicate edges are dropped.
//
// DetectCycles: Depth-first search with three-state marking (unvisited,
// in-progress, done). A back-edge to an in-progress node closes a loop; the
// actual cycle path is returned for diagnostics, with the starting node
// repeated at the end.
//
// TopologicalOrder: Kahn's algorithm over the readiness relation. Nodes that
// become ready simultaneously are emitted in lexicographically ascending
// order, so the same graph always yields the identical order across runs.
// When residual nodes cannot be placed, the returned CyclicGraphError
// carries the cycle path from DetectCycles.
//
// Dependents: All nodes that directly depend on a given node, used for
// impact analysis and reverse traversal.
//
// # Usage Example
//
//	// Build the graph from declared dependencies
//	g := dependency.New()
//	g.AddNode("config")
//	g.AddEdge("database", "config")
//	g.AddEdge("backend", "database")
//	g.AddEdge("backend", "config")
//
//	// Validate before ordering
//	if cycle := g.DetectCycles(); cycle != nil {
//	    // cycle holds the full path, e.g. [a b a]
//	}
//
//	// Get the startup order
//	order, err := g.TopologicalOrder()
//	// Returns: ["config", "database", "backend"]
//
// # Thread Safety
//
// The Graph is not thread-safe by itself. Queries never mutate, so
// concurrent reads are fine once construction is finished; callers must
// synchronise mutation against queries.
package dependency
