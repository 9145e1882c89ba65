// Package container implements the runtime service container: a registry of
// service definitions plus the machinery that turns definitions into live
// instances by invoking their factories with already-resolved dependencies.
//
// # Lifecycles
//
// A singleton is constructed at most once; the instance is cached and every
// later Resolve returns it without touching the factory again. A transient
// is constructed on every Resolve and never cached. Diamond-shaped graphs
// therefore construct each shared singleton exactly once per container.
//
// # Resolution
//
// Resolve walks the declared dependencies depth-first, in declaration
// order, building the map[string]any handed to the factory. Failures are
// typed (api.MissingDependencyError, api.CircularDependencyError,
// api.FactoryExecutionError) and are never cached: after a factory failure
// the next Resolve retries the construction.
//
// Cycle detection is layered. Before any construction starts, Resolve runs
// the static cycle check from internal/dependency over the subgraph
// reachable from the requested name. During construction, the chain of
// names currently being built travels on the context, so re-entering a name
// mid-construction fails with the offending path even when the re-entry
// happens inside a factory.
//
// # Concurrency
//
// All methods are safe for concurrent use. Concurrent Resolve calls for the
// same singleton are collapsed into one factory invocation with
// golang.org/x/sync/singleflight; every caller receives the same instance.
// Resolves for different names proceed independently. The static precheck
// runs before a flight is joined, so a declared cycle entered from two
// goroutines fails fast instead of deadlocking the flight group. There is
// no cancellation of an in-flight construction; the context is passed
// through to factories, but the container imposes no timeout.
//
// # Instrumentation
//
// SetMetrics attaches optional collectors from internal/metrics. The
// container then records per-service resolution outcomes and durations and
// singleton cache hits, and mirrors the registry counts into gauges. With
// no collectors attached nothing is recorded.
//
// # Usage Example
//
//	c := container.New()
//	err := c.Register(&api.ServiceDefinition{
//		Name: "database",
//		Factory: func(ctx context.Context, deps, cfg map[string]any) (any, error) {
//			return openDatabase(cfg)
//		},
//	})
//	...
//	db, err := c.Resolve(ctx, "database")
package container
