package dependency

// visitState is the DFS marking used by cycle detection.
type visitState int

const (
	// stateUnvisited: the node has not been reached yet.
	stateUnvisited visitState = iota
	// stateInProgress: the node is on the current DFS path; a back-edge to it
	// closes a cycle.
	stateInProgress
	// stateDone: the node and everything reachable from it is cycle-checked.
	stateDone
)

// DetectCycles searches the graph for a dependency loop and returns the
// actual cycle path in walk order, with the starting node repeated at the
// end, e.g. [a b c a]. It returns nil when the graph is acyclic.
//
// When the graph contains more than one cycle, the one reached first from
// the lexicographically smallest start node is reported; fixing cycles one
// report at a time converges because each run reports a real loop.
func (g *Graph) DetectCycles() []NodeID {
	state := make(map[NodeID]visitState, len(g.nodes))
	// path is the current DFS chain, kept so the cycle can be cut out of it.
	var path []NodeID
	var cycle []NodeID

	var visit func(id NodeID) bool
	visit = func(id NodeID) bool {
		state[id] = stateInProgress
		path = append(path, id)

		for _, dep := range g.nodes[id].dependsOn {
			switch state[dep] {
			case stateInProgress:
				// Back-edge: the loop runs from dep's position on the path to
				// the current node and back to dep.
				for i, n := range path {
					if n == dep {
						cycle = append(cycle, path[i:]...)
						cycle = append(cycle, dep)
						return true
					}
				}
			case stateUnvisited:
				if visit(dep) {
					return true
				}
			}
		}

		path = path[:len(path)-1]
		state[id] = stateDone
		return false
	}

	for _, id := range g.Nodes() {
		if state[id] == stateUnvisited {
			if visit(id) {
				return cycle
			}
		}
	}
	return nil
}
