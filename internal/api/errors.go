package api

import (
	"errors"
	"fmt"
	"strings"
)

// MissingDependencyError reports a service name that has no registered
// definition. It is raised both for a direct resolution of an unknown name
// and for an unknown name pulled in as a dependency; the two cases are
// distinguished by whether Service is set.
type MissingDependencyError struct {
	// Service is the name of the service that declared the missing
	// reference. Empty when the missing name was requested directly.
	Service string

	// Missing is the name that has no registered definition.
	Missing string
}

// Error implements the error interface for MissingDependencyError.
func (e *MissingDependencyError) Error() string {
	if e.Service == "" {
		return fmt.Sprintf("service %s is not registered", e.Missing)
	}
	return fmt.Sprintf("service %s depends on %s, which is not registered", e.Service, e.Missing)
}

// IsMissingDependency checks if an error is a MissingDependencyError using
// error unwrapping, so wrapped errors are recognized too.
//
// Example:
//
//	instance, err := c.Resolve(ctx, "database")
//	if api.IsMissingDependency(err) {
//	    // a registration is missing, surface it to the developer
//	}
func IsMissingDependency(err error) bool {
	var missingErr *MissingDependencyError
	return errors.As(err, &missingErr)
}

// NewMissingDependencyError creates a MissingDependencyError for a dependency
// declared by service that has no registered definition.
func NewMissingDependencyError(service, missing string) *MissingDependencyError {
	return &MissingDependencyError{
		Service: service,
		Missing: missing,
	}
}

// NewUnregisteredServiceError creates a MissingDependencyError for a name
// that was requested directly and is not registered.
func NewUnregisteredServiceError(name string) *MissingDependencyError {
	return &MissingDependencyError{Missing: name}
}

// DuplicateServiceError reports a registration attempt for a name that is
// already registered. Replacement requires an explicit unregister first;
// nothing is ever silently overwritten.
type DuplicateServiceError struct {
	// Service is the name that was registered twice.
	Service string
}

// Error implements the error interface for DuplicateServiceError.
func (e *DuplicateServiceError) Error() string {
	return fmt.Sprintf("service %s is already registered", e.Service)
}

// IsDuplicateService checks if an error is a DuplicateServiceError using
// error unwrapping.
func IsDuplicateService(err error) bool {
	var dupErr *DuplicateServiceError
	return errors.As(err, &dupErr)
}

// NewDuplicateServiceError creates a new DuplicateServiceError for the given
// service name.
func NewDuplicateServiceError(name string) *DuplicateServiceError {
	return &DuplicateServiceError{Service: name}
}

// CircularDependencyError reports a dependency loop. It always carries the
// full cycle path so the loop can be fixed in one pass; a cycle is never
// silently broken by picking an arbitrary order.
type CircularDependencyError struct {
	// Path lists the nodes of the cycle in walk order. The first name
	// appears again as the last element, e.g. ["a", "b", "a"].
	Path []string
}

// Error implements the error interface for CircularDependencyError.
// The path is rendered in walk order: "circular dependency detected: a -> b -> a".
func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected: %s", strings.Join(e.Path, " -> "))
}

// IsCircularDependency checks if an error is a CircularDependencyError using
// error unwrapping.
func IsCircularDependency(err error) bool {
	var cycleErr *CircularDependencyError
	return errors.As(err, &cycleErr)
}

// NewCircularDependencyError creates a new CircularDependencyError carrying
// the given cycle path.
func NewCircularDependencyError(path []string) *CircularDependencyError {
	return &CircularDependencyError{Path: path}
}

// FactoryExecutionError wraps a failure raised by a service factory, so a
// misbehaving service's failure stays attributable to that service. The
// original error is preserved as the cause and reachable via errors.Unwrap.
type FactoryExecutionError struct {
	// Service is the name whose factory failed.
	Service string

	// Err is the original factory error.
	Err error
}

// Error implements the error interface for FactoryExecutionError.
func (e *FactoryExecutionError) Error() string {
	return fmt.Sprintf("factory for service %s failed: %v", e.Service, e.Err)
}

// Unwrap returns the original factory error for errors.Is/errors.As chains.
func (e *FactoryExecutionError) Unwrap() error {
	return e.Err
}

// IsFactoryExecution checks if an error is a FactoryExecutionError using
// error unwrapping.
func IsFactoryExecution(err error) bool {
	var factoryErr *FactoryExecutionError
	return errors.As(err, &factoryErr)
}

// NewFactoryExecutionError creates a new FactoryExecutionError wrapping err.
func NewFactoryExecutionError(service string, err error) *FactoryExecutionError {
	return &FactoryExecutionError{
		Service: service,
		Err:     err,
	}
}

// MissingRef pairs a service with one dependency name it references that has
// no definition.
type MissingRef struct {
	// Service declared the reference.
	Service string `yaml:"service" json:"service"`

	// Missing is the referenced name without a definition.
	Missing string `yaml:"missing" json:"missing"`
}

// String renders the reference as "service -> missing (missing)".
func (r MissingRef) String() string {
	return fmt.Sprintf("%s -> %s (missing)", r.Service, r.Missing)
}

// ValidationError aggregates every unresolvable dependency reference found in
// one validation pass. Collecting all of them at once spares the caller the
// fix-one-rerun loop a first-failure report would force.
type ValidationError struct {
	// Missing lists every (service, missing dependency) pair, in the order
	// the definitions were inspected.
	Missing []MissingRef
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Missing))
	for _, ref := range e.Missing {
		parts = append(parts, ref.String())
	}
	return fmt.Sprintf("missing dependency references: %s", strings.Join(parts, ", "))
}

// IsValidation checks if an error is a ValidationError using error
// unwrapping.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// NewValidationError creates a new ValidationError from the collected
// missing references.
func NewValidationError(missing []MissingRef) *ValidationError {
	return &ValidationError{Missing: missing}
}

// Common errors for container and resolver operations.
var (
	// ErrNilDefinition indicates a nil *ServiceDefinition was passed where a
	// definition is required.
	ErrNilDefinition = errors.New("service definition is nil")

	// ErrNilFactory indicates a definition without a factory was registered
	// with the container.
	ErrNilFactory = errors.New("service definition has no factory")
)
