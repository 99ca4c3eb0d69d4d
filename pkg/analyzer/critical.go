package analyzer

import (
	"sort"

	"github.com/orbitalsec/astrarisk/pkg/algorithms"
	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// ScoredThreat is a threat with the criticality score that selected it.
type ScoredThreat struct {
	Threat *threatgraph.Threat
	Score  int
}

// Relation-type weights for path scoring. Causal links outrank the softer
// amplification links; unknown types count 1.
var relationWeights = map[string]int{
	"Enables":   3,
	"Causes":    4,
	"Leads-to":  2,
	"Triggers":  3,
	"Amplifies": 2,
}

// Categories whose compromise is most consequential for space systems:
// nefarious activity/abuse, eavesdropping/interception/hijacking and
// physical attack.
var criticalTargetCategories = map[string]bool{
	"NAA": true,
	"EIH": true,
	"PA":  true,
}

const (
	criticalSourceThreshold = 1
	criticalTargetThreshold = 2
	maxCriticalEndpoints    = 10
	maxSourceTargetPairs    = 25
)

// criticalSources scores every threat as an attack origin: its out-degree,
// plus 2 when its name matches a high-likelihood threat. Threats scoring
// below the threshold are dropped.
func criticalSources(g *threatgraph.Graph, keywords []string) []ScoredThreat {
	var sources []ScoredThreat
	for _, node := range g.Nodes() {
		score := g.OutDegree(node.ID)
		if matchesAny(node.Name, keywords) {
			score += 2
		}
		if score >= criticalSourceThreshold {
			sources = append(sources, ScoredThreat{Threat: node, Score: score})
		}
	}
	sortScored(sources)
	return sources
}

// criticalTargets scores every threat as an attack destination: its
// in-degree, plus 2 for a critical category, plus 3 when its name matches a
// high-impact threat. The threshold is stricter than for sources.
func criticalTargets(g *threatgraph.Graph, keywords []string) []ScoredThreat {
	var targets []ScoredThreat
	for _, node := range g.Nodes() {
		score := g.InDegree(node.ID)
		if criticalTargetCategories[node.Category] {
			score += 2
		}
		if matchesAny(node.Name, keywords) {
			score += 3
		}
		if score >= criticalTargetThreshold {
			targets = append(targets, ScoredThreat{Threat: node, Score: score})
		}
	}
	sortScored(targets)
	return targets
}

func sortScored(threats []ScoredThreat) {
	sort.SliceStable(threats, func(i, j int) bool {
		if threats[i].Score != threats[j].Score {
			return threats[i].Score > threats[j].Score
		}
		return threats[i].Threat.Name < threats[j].Threat.Name
	})
}

// PathCriticality scores an attack path: half a point per node, the
// relation-type weights, one point per node matching a high-risk threat,
// and half a point per distinct category traversed.
func PathCriticality(g *threatgraph.Graph, path algorithms.Path, highRisk []string) float64 {
	if len(path.Threats) < 2 {
		return 0
	}

	score := float64(len(path.Threats)) * 0.5

	for _, rel := range path.Relations {
		weight, ok := relationWeights[rel.Type]
		if !ok {
			weight = 1
		}
		score += float64(weight)
	}

	categories := make(map[string]bool, len(path.Threats))
	for _, node := range path.Threats {
		if matchesAny(node.Name, highRisk) {
			score += 1
		}
		categories[node.Category] = true
	}
	score += float64(len(categories)) * 0.5

	return score
}

// Danger normalizes a path criticality score to [0, 1].
func Danger(score float64) float64 {
	danger := (score - 2) / 48
	if danger < 0 {
		return 0
	}
	if danger > 1 {
		return 1
	}
	return danger
}
