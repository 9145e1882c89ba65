package dependency

import "sort"

// NodeID is the unique identifier for a node inside a dependency graph.
// It is a string alias so callers can choose their own encoding (a bare
// service name or "category:name").
type NodeID string

// node stores one service name together with its dependency list. DependsOn
// preserves insertion order; duplicate edges are dropped on add.
type node struct {
	id        NodeID
	dependsOn []NodeID
}

// Graph is a directed graph over service names, where an edge from A to B
// records that A depends on B. It answers two questions: "is there a cycle?"
// (DetectCycles) and "what is a valid startup order?" (TopologicalOrder).
//
// A graph may well contain a cycle after construction; validation is a
// separate, explicit step so the caller can report the precise cycle path.
// The Graph is *not* thread-safe by itself; callers must synchronise if they
// mutate concurrently with queries.
type Graph struct {
	nodes map[NodeID]*node
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[NodeID]*node)}
}

// AddNode adds a node with no edges if it is not present. Adding an existing
// node is a no-op, never an error.
func (g *Graph) AddNode(id NodeID) {
	if g.nodes == nil {
		g.nodes = make(map[NodeID]*node)
	}
	if _, ok := g.nodes[id]; !ok {
		g.nodes[id] = &node{id: id}
	}
}

// AddEdge records that from depends on to. Both endpoints are implicitly
// added if missing. Adding an edge twice is a no-op.
func (g *Graph) AddEdge(from, to NodeID) {
	g.AddNode(from)
	g.AddNode(to)
	n := g.nodes[from]
	for _, dep := range n.dependsOn {
		if dep == to {
			return
		}
	}
	n.dependsOn = append(n.dependsOn, to)
}

// Has reports whether the node exists in the graph.
func (g *Graph) Has(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns all node IDs in lexicographically ascending order, so
// iteration over the graph is deterministic.
func (g *Graph) Nodes() []NodeID {
	ids := make([]NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Dependencies returns the immediate dependency IDs of the given node in
// declaration order, or nil if the node does not exist.
func (g *Graph) Dependencies(id NodeID) []NodeID {
	if n, ok := g.nodes[id]; ok {
		// Return a copy to avoid callers modifying the internal slice.
		depsCopy := make([]NodeID, len(n.dependsOn))
		copy(depsCopy, n.dependsOn)
		return depsCopy
	}
	return nil
}

// Dependents returns all node IDs that directly depend on the given node,
// sorted ascending.
func (g *Graph) Dependents(id NodeID) []NodeID {
	var res []NodeID
	for _, n := range g.nodes {
		for _, dep := range n.dependsOn {
			if dep == id {
				res = append(res, n.id)
				break
			}
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// dependents builds the reverse adjacency for the whole graph in one pass:
// for every node, the list of nodes that depend on it. Lists come out in
// sorted order because the outer iteration is sorted.
func (g *Graph) dependents() map[NodeID][]NodeID {
	rev := make(map[NodeID][]NodeID, len(g.nodes))
	for _, id := range g.Nodes() {
		for _, dep := range g.nodes[id].dependsOn {
			rev[dep] = append(rev[dep], id)
		}
	}
	return rev
}
