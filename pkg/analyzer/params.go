package analyzer

import (
	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// Parameters bound the expensive parts of an analysis run. Zero values are
// not valid; use DynamicParameters or DefaultParameters.
type Parameters struct {
	TopCentralityNodes int // nodes listed per centrality measure
	MaxPathsPerPair    int // simple paths kept per source-target pair
	MaxPathLength      int // cutoff (relations) for critical-path search
	TopCriticalPaths   int // critical paths kept in the report
	FocusPathLength    int // cutoff for focused path queries, density-adjusted
}

// DefaultParameters returns the static fallback configuration used when no
// graph is available to size against.
func DefaultParameters() Parameters {
	return Parameters{
		TopCentralityNodes: 5,
		MaxPathsPerPair:    3,
		MaxPathLength:      6,
		TopCriticalPaths:   10,
		FocusPathLength:    5,
	}
}

// DynamicParameters sizes the analysis to the graph. Small graphs get an
// exhaustive treatment, large graphs trade path depth for runtime.
func DynamicParameters(g *threatgraph.Graph) Parameters {
	stats := g.Statistics()
	n := int(stats.NodeCount)

	var p Parameters
	switch {
	case n < 50:
		p.TopCentralityNodes = min(10, max(5, n/2))
		p.MaxPathsPerPair = 5
		p.MaxPathLength = 6
		p.TopCriticalPaths = min(15, n)
	case n < 200:
		p.TopCentralityNodes = min(15, n/4)
		p.MaxPathsPerPair = 3
		p.MaxPathLength = 5
		p.TopCriticalPaths = min(20, n/2)
	default:
		p.TopCentralityNodes = min(20, n/8)
		p.MaxPathsPerPair = 2
		p.MaxPathLength = 4
		p.TopCriticalPaths = min(25, n/4)
	}

	// Dense graphs explode combinatorially, so focused queries get a
	// tighter cutoff.
	density := g.Density()
	switch {
	case density > 0.3:
		p.FocusPathLength = 3
	case density > 0.1:
		p.FocusPathLength = 4
	default:
		p.FocusPathLength = 5
	}

	return p
}
