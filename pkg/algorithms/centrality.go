// Package algorithms provides the graph analytics the attack-graph analyzer
// is built on: centrality measures, path enumeration, topology checks and
// attack-surface detection over a threatgraph.Graph.
package algorithms

import (
	"container/list"

	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// DegreeCentrality computes total degree centrality for all nodes,
// normalized by n-1.
func DegreeCentrality(g *threatgraph.Graph) map[uint64]float64 {
	nodeIDs := g.NodeIDs()
	scores := make(map[uint64]float64, len(nodeIDs))

	for _, id := range nodeIDs {
		total := g.InDegree(id) + g.OutDegree(id)
		if len(nodeIDs) > 1 {
			scores[id] = float64(total) / float64(len(nodeIDs)-1)
		} else {
			scores[id] = 0.0
		}
	}
	return scores
}

// InDegreeCentrality computes in-degree centrality, normalized by n-1.
// High values mark threats that many other threats lead to.
func InDegreeCentrality(g *threatgraph.Graph) map[uint64]float64 {
	nodeIDs := g.NodeIDs()
	scores := make(map[uint64]float64, len(nodeIDs))

	for _, id := range nodeIDs {
		if len(nodeIDs) > 1 {
			scores[id] = float64(g.InDegree(id)) / float64(len(nodeIDs)-1)
		} else {
			scores[id] = 0.0
		}
	}
	return scores
}

// OutDegreeCentrality computes out-degree centrality, normalized by n-1.
// High values mark threats that enable many others.
func OutDegreeCentrality(g *threatgraph.Graph) map[uint64]float64 {
	nodeIDs := g.NodeIDs()
	scores := make(map[uint64]float64, len(nodeIDs))

	for _, id := range nodeIDs {
		if len(nodeIDs) > 1 {
			scores[id] = float64(g.OutDegree(id)) / float64(len(nodeIDs)-1)
		} else {
			scores[id] = 0.0
		}
	}
	return scores
}

// BetweennessCentrality computes node betweenness centrality with a single
// O(VE) Brandes pass over the directed graph, normalized by (n-1)(n-2)
// for n > 2. It measures how often a threat sits on shortest attack chains
// between other threats.
func BetweennessCentrality(g *threatgraph.Graph) map[uint64]float64 {
	nodeIDs := g.NodeIDs()

	betweenness := make(map[uint64]float64, len(nodeIDs))
	for _, id := range nodeIDs {
		betweenness[id] = 0.0
	}

	for _, source := range nodeIDs {
		stack := make([]uint64, 0, len(nodeIDs))
		predecessors := make(map[uint64][]uint64, len(nodeIDs))
		sigma := make(map[uint64]float64, len(nodeIDs))
		distance := make(map[uint64]int, len(nodeIDs))

		for _, id := range nodeIDs {
			sigma[id] = 0.0
			distance[id] = -1
		}
		sigma[source] = 1.0
		distance[source] = 0

		queue := list.New()
		queue.PushBack(source)

		for queue.Len() > 0 {
			v, ok := queue.Remove(queue.Front()).(uint64)
			if !ok {
				continue
			}
			stack = append(stack, v)

			for _, edge := range g.Outgoing(v) {
				w := edge.ToID

				if distance[w] < 0 {
					queue.PushBack(w)
					distance[w] = distance[v] + 1
				}
				if distance[w] == distance[v]+1 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		// Back-propagation of pair dependencies.
		delta := make(map[uint64]float64, len(nodeIDs))
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, pred := range predecessors[w] {
				delta[pred] += (sigma[pred] / sigma[w]) * (1.0 + delta[w])
			}
			if w != source {
				betweenness[w] += delta[w]
			}
		}
	}

	if len(nodeIDs) > 2 {
		normFactor := 1.0 / float64((len(nodeIDs)-1)*(len(nodeIDs)-2))
		for id := range betweenness {
			betweenness[id] *= normFactor
		}
	}

	return betweenness
}

// ClosenessCentrality computes closeness centrality for all nodes as
// reachable-count / total-distance over outgoing BFS. Nodes that reach
// nothing score 0.
func ClosenessCentrality(g *threatgraph.Graph) map[uint64]float64 {
	nodeIDs := g.NodeIDs()
	closeness := make(map[uint64]float64, len(nodeIDs))

	for _, source := range nodeIDs {
		distance := make(map[uint64]int, len(nodeIDs))
		for _, id := range nodeIDs {
			distance[id] = -1
		}
		distance[source] = 0

		queue := list.New()
		queue.PushBack(source)

		for queue.Len() > 0 {
			v, ok := queue.Remove(queue.Front()).(uint64)
			if !ok {
				continue
			}
			for _, edge := range g.Outgoing(v) {
				w := edge.ToID
				if distance[w] < 0 {
					distance[w] = distance[v] + 1
					queue.PushBack(w)
				}
			}
		}

		totalDistance := 0
		reachable := 0
		for _, dist := range distance {
			if dist > 0 {
				totalDistance += dist
				reachable++
			}
		}

		if totalDistance > 0 {
			closeness[source] = float64(reachable) / float64(totalDistance)
		} else {
			closeness[source] = 0.0
		}
	}

	return closeness
}
