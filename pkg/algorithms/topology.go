package algorithms

import (
	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// HasCycle reports whether the directed graph contains a cycle, using
// iterative DFS with a three-color marking.
func HasCycle(g *threatgraph.Graph) bool {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current DFS path
		black = 2 // fully explored
	)

	color := make(map[uint64]int)

	var visit func(uint64) bool
	visit = func(id uint64) bool {
		color[id] = gray
		for _, edge := range g.Outgoing(id) {
			switch color[edge.ToID] {
			case gray:
				return true
			case white:
				if visit(edge.ToID) {
					return true
				}
			}
		}
		color[id] = black
		return false
	}

	for _, id := range g.NodeIDs() {
		if color[id] == white {
			if visit(id) {
				return true
			}
		}
	}
	return false
}

// IsDAG reports whether the graph is a directed acyclic graph.
func IsDAG(g *threatgraph.Graph) bool {
	return !HasCycle(g)
}

// WeaklyConnectedComponents returns the node IDs of each weakly connected
// component, treating every relation as undirected.
func WeaklyConnectedComponents(g *threatgraph.Graph) [][]uint64 {
	visited := make(map[uint64]bool)
	var components [][]uint64

	for _, start := range g.NodeIDs() {
		if visited[start] {
			continue
		}

		component := []uint64{}
		queue := []uint64{start}
		visited[start] = true

		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			component = append(component, id)

			for _, edge := range g.Outgoing(id) {
				if !visited[edge.ToID] {
					visited[edge.ToID] = true
					queue = append(queue, edge.ToID)
				}
			}
			for _, edge := range g.Incoming(id) {
				if !visited[edge.FromID] {
					visited[edge.FromID] = true
					queue = append(queue, edge.FromID)
				}
			}
		}

		components = append(components, component)
	}

	return components
}

// IsWeaklyConnected reports whether all nodes belong to one weakly
// connected component. The empty graph counts as connected.
func IsWeaklyConnected(g *threatgraph.Graph) bool {
	return len(WeaklyConnectedComponents(g)) <= 1
}
