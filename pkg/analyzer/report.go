package analyzer

import (
	"github.com/orbitalsec/astrarisk/pkg/algorithms"
	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// Report is the result of a full attack-graph analysis.
type Report struct {
	Statistics threatgraph.Statistics
	Density    float64
	Parameters Parameters
	IsDAG      bool
	Components int

	Categories      CategoryAnalysis
	Centrality      CentralityReport
	CriticalSources []ScoredThreat
	CriticalTargets []ScoredThreat
	CriticalPaths   []CriticalPath
	Surface         algorithms.AttackSurface
}

// NameCount is a name with an occurrence count, used for category and
// relation-type distributions.
type NameCount struct {
	Name  string
	Count int
}

// CategoryPair counts relations from one category to another.
type CategoryPair struct {
	Source string
	Target string
	Count  int
}

// CategoryAnalysis summarises how threat categories relate.
type CategoryAnalysis struct {
	Distribution  []NameCount
	RelationTypes []NameCount
	Pairs         []CategoryPair
}

// CentralityReport holds the top threats per centrality measure.
// Eigenvector is empty with EigenvectorSkipped set when power iteration
// could not converge on this graph.
type CentralityReport struct {
	Degree             []algorithms.RankedThreat
	InDegree           []algorithms.RankedThreat
	OutDegree          []algorithms.RankedThreat
	Betweenness        []algorithms.RankedThreat
	Closeness          []algorithms.RankedThreat
	PageRank           []algorithms.RankedThreat
	Eigenvector        []algorithms.RankedThreat
	EigenvectorSkipped bool
}

// CriticalPath is a ranked attack path between a critical source and a
// critical target.
type CriticalPath struct {
	Path   algorithms.Path
	Source *threatgraph.Threat
	Target *threatgraph.Threat
	Score  float64
	Danger float64
}
