// Package api provides the shared types and error taxonomy for rollcall.
//
// This package is the single vocabulary every other package speaks: service
// definitions, resolution results, statistics, and typed errors all live
// here, preventing direct inter-package dependencies between the resolver,
// the container, and the surfaces built on top of them.
//
// # Core Types
//
//   - **ServiceDefinition**: A named, declarative description of how to
//     construct one service, including its dependency names, category,
//     lifecycle, and factory.
//   - **Lifecycle**: singleton (constructed once, cached) or transient
//     (constructed on every resolution).
//   - **Factory**: The construction function, invoked with the resolved
//     dependency instances and the definition's configuration block.
//   - **ResolutionResult / ResolutionStatistics**: The structured outcome of
//     an order resolution pass, including the deterministic service order
//     and diagnostic statistics.
//   - **ContainerStatistics**: Registry and cache counts for observability.
//
// # Error Taxonomy
//
// All failure modes are typed, constructed through New* functions, and
// recognizable through Is* helpers built on errors.As so wrapped errors are
// handled uniformly:
//
//   - **MissingDependencyError**: A referenced name has no registered
//     definition. Recoverable by registering the missing service; never
//     auto-retried.
//   - **DuplicateServiceError**: A name was registered twice without an
//     explicit unregister. Fatal to that registration call only.
//   - **CircularDependencyError**: A dependency loop exists. Always fatal to
//     the resolution attempt; carries the full cycle path.
//   - **FactoryExecutionError**: A factory returned an error. Wraps the
//     original cause; a failed construction is never cached, so a later
//     resolve retries the factory.
//   - **ValidationError**: Aggregates every missing reference found in one
//     validation pass, so all problems surface in a single report.
//
// # Propagation Policy
//
// The resolver reports validation-class failures (missing references,
// cycles) inside ResolutionResult and never returns them as Go errors; the
// container returns typed errors from Resolve because a failed runtime
// resolution cannot produce a usable instance. Neither layer retries.
package api
