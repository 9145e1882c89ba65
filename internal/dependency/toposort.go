package dependency

import "sort"

// TopologicalOrder returns the node IDs ordered so that every node appears
// after all nodes it depends on. Nodes that become ready at the same time
// are emitted in lexicographically ascending order, so the same graph always
// yields the identical order across runs.
//
// When no complete order exists the graph necessarily contains a cycle; the
// returned CyclicGraphError carries the cycle path from DetectCycles rather
// than failing silently.
func (g *Graph) TopologicalOrder() ([]NodeID, error) {
	// remaining counts, per node, how many of its dependencies have not been
	// placed yet. A node is ready when the count reaches zero.
	remaining := make(map[NodeID]int, len(g.nodes))
	for id, n := range g.nodes {
		remaining[id] = len(n.dependsOn)
	}
	dependents := g.dependents()

	// ready is kept sorted ascending; Nodes() is sorted, so the initial fill
	// needs no extra sort.
	var ready []NodeID
	for _, id := range g.Nodes() {
		if remaining[id] == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]NodeID, 0, len(g.nodes))
	for len(ready) > 0 {
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		for _, dependent := range dependents[next] {
			remaining[dependent]--
			if remaining[dependent] == 0 {
				ready = insertSorted(ready, dependent)
			}
		}
	}

	if len(order) != len(g.nodes) {
		// Residual nodes could not be placed, so at least one cycle exists.
		return nil, NewCyclicGraphError(g.DetectCycles())
	}
	return order, nil
}

// insertSorted inserts id into the ascending-sorted slice, keeping it sorted.
func insertSorted(ids []NodeID, id NodeID) []NodeID {
	i := sort.Search(len(ids), func(j int) bool { return ids[j] >= id })
	ids = append(ids, "")
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}
