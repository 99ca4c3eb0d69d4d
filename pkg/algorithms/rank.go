package algorithms

import (
	"container/heap"
	"sort"

	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// RankedThreat pairs a threat with a centrality score.
type RankedThreat struct {
	Threat *threatgraph.Threat
	Score  float64
}

// rankedHeap is a min-heap of RankedThreat by score, used for top-K
// selection without sorting the full score map.
type rankedHeap []RankedThreat

func (h rankedHeap) Len() int           { return len(h) }
func (h rankedHeap) Less(i, j int) bool { return h[i].Score < h[j].Score }
func (h rankedHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *rankedHeap) Push(x any) {
	*h = append(*h, x.(RankedThreat))
}

func (h *rankedHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// TopThreats returns the n highest-scoring threats, ordered by score
// descending and node ID ascending on ties so output stays deterministic.
func TopThreats(g *threatgraph.Graph, scores map[uint64]float64, n int) []RankedThreat {
	if n <= 0 {
		return nil
	}

	h := make(rankedHeap, 0, n)
	heap.Init(&h)

	for _, id := range g.NodeIDs() {
		score, ok := scores[id]
		if !ok {
			continue
		}
		node, err := g.Node(id)
		if err != nil {
			continue
		}

		rt := RankedThreat{Threat: node, Score: score}
		if h.Len() < n {
			heap.Push(&h, rt)
		} else if score > h[0].Score {
			heap.Pop(&h)
			heap.Push(&h, rt)
		}
	}

	result := make([]RankedThreat, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(RankedThreat)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Threat.ID < result[j].Threat.ID
	})

	return result
}
