package dependency

import (
	"errors"
	"fmt"
	"strings"
)

// CyclicGraphError reports that no topological order exists because the
// graph contains at least one cycle.
type CyclicGraphError struct {
	// Path is the offending cycle in walk order, with the first node
	// repeated at the end.
	Path []NodeID
}

// Error implements the error interface for CyclicGraphError.
func (e *CyclicGraphError) Error() string {
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = string(id)
	}
	return fmt.Sprintf("graph contains a cycle: %s", strings.Join(parts, " -> "))
}

// NewCyclicGraphError creates a CyclicGraphError carrying the given cycle
// path.
func NewCyclicGraphError(path []NodeID) *CyclicGraphError {
	return &CyclicGraphError{Path: path}
}

// IsCyclicGraph checks if an error is a CyclicGraphError using error
// unwrapping.
func IsCyclicGraph(err error) bool {
	var cycleErr *CyclicGraphError
	return errors.As(err, &cycleErr)
}
