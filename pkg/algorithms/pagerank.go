package algorithms

import (
	"errors"
	"math"

	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// PageRankOptions configures the PageRank computation.
type PageRankOptions struct {
	DampingFactor float64
	MaxIterations int
	Tolerance     float64
}

// DefaultPageRankOptions returns the usual PageRank configuration.
func DefaultPageRankOptions() PageRankOptions {
	return PageRankOptions{
		DampingFactor: 0.85,
		MaxIterations: 100,
		Tolerance:     1e-6,
	}
}

// PageRankResult contains PageRank scores and convergence information.
type PageRankResult struct {
	Scores     map[uint64]float64
	Iterations int
	Converged  bool
}

// PageRank computes PageRank scores for all threats. Dangling nodes (no
// outgoing relations) distribute their mass uniformly.
func PageRank(g *threatgraph.Graph, opts PageRankOptions) *PageRankResult {
	nodeIDs := g.NodeIDs()
	n := len(nodeIDs)
	if n == 0 {
		return &PageRankResult{Scores: map[uint64]float64{}, Converged: true}
	}

	scores := make(map[uint64]float64, n)
	initial := 1.0 / float64(n)
	for _, id := range nodeIDs {
		scores[id] = initial
	}

	base := (1.0 - opts.DampingFactor) / float64(n)

	for iteration := 1; iteration <= opts.MaxIterations; iteration++ {
		next := make(map[uint64]float64, n)
		for _, id := range nodeIDs {
			next[id] = base
		}

		danglingMass := 0.0
		for _, id := range nodeIDs {
			outgoing := g.Outgoing(id)
			if len(outgoing) == 0 {
				danglingMass += scores[id]
				continue
			}
			share := opts.DampingFactor * scores[id] / float64(len(outgoing))
			for _, edge := range outgoing {
				next[edge.ToID] += share
			}
		}

		if danglingMass > 0 {
			spread := opts.DampingFactor * danglingMass / float64(n)
			for _, id := range nodeIDs {
				next[id] += spread
			}
		}

		diff := 0.0
		for _, id := range nodeIDs {
			diff += math.Abs(next[id] - scores[id])
		}
		scores = next

		if diff < opts.Tolerance {
			return &PageRankResult{Scores: scores, Iterations: iteration, Converged: true}
		}
	}

	return &PageRankResult{Scores: scores, Iterations: opts.MaxIterations, Converged: false}
}

// ErrNoConvergence is returned by EigenvectorCentrality when power
// iteration fails to converge within the iteration budget.
var ErrNoConvergence = errors.New("eigenvector centrality did not converge")

// EigenvectorCentrality computes eigenvector centrality by power iteration
// over incoming relations. Graphs whose adjacency spectrum carries no mass
// along directed cycles (e.g. pure DAGs) will not converge; callers should
// treat the error as "measure not applicable" and continue.
func EigenvectorCentrality(g *threatgraph.Graph, maxIterations int) (map[uint64]float64, error) {
	nodeIDs := g.NodeIDs()
	n := len(nodeIDs)
	if n == 0 {
		return map[uint64]float64{}, nil
	}
	if maxIterations <= 0 {
		maxIterations = 1000
	}

	const tolerance = 1e-6

	scores := make(map[uint64]float64, n)
	for _, id := range nodeIDs {
		scores[id] = 1.0 / float64(n)
	}

	for iteration := 0; iteration < maxIterations; iteration++ {
		next := make(map[uint64]float64, n)
		for _, id := range nodeIDs {
			sum := 0.0
			for _, edge := range g.Incoming(id) {
				sum += scores[edge.FromID]
			}
			next[id] = sum
		}

		norm := 0.0
		for _, v := range next {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			return nil, ErrNoConvergence
		}

		diff := 0.0
		for _, id := range nodeIDs {
			next[id] /= norm
			diff += math.Abs(next[id] - scores[id])
		}
		scores = next

		if diff < tolerance {
			return scores, nil
		}
	}

	return nil, ErrNoConvergence
}
