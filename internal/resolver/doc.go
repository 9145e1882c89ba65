// Package resolver validates service definition sets and computes their
// deterministic registration order.
//
// The resolver sits between raw service definitions and the container: it
// checks that every declared dependency reference has a definition, builds
// the dependency graph, runs the static cycle check, and emits the order in
// which services must be constructed.
//
// # Result Contract
//
// ResolveOrder and Validate never return Go errors for expected validation
// failures. Instead they return an api.ResolutionResult that either carries
// the full order plus statistics (Success true) or the complete list of
// problems (Success false):
//
//   - every missing reference is collected into one api.ValidationError,
//     not just the first one found
//   - a dependency loop is reported as an api.CircularDependencyError with
//     the full cycle path
//   - malformed definitions (nil entries, empty names, bad lifecycles,
//     duplicate names) are reported alongside
//
// Failures are all-or-nothing: a failed resolution produces no partial
// order.
//
// # Statistics
//
// Successful results include diagnostic statistics: the total service
// count, the per-category breakdown, and the maximum dependency depth (the
// length in edges of the longest dependency chain). These feed logging and
// CLI output and never influence the order itself.
//
// # Usage
//
//	r := resolver.New()
//	result := r.ResolveOrder(definitions)
//	if !result.Success {
//	    for _, err := range result.Errors {
//	        // report; errors are typed, see the api package
//	    }
//	    return
//	}
//	for _, name := range result.OrderedServices {
//	    // register/construct in this order
//	}
package resolver
