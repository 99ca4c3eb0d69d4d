package analyzer

import (
	"fmt"
	"sort"

	"github.com/orbitalsec/astrarisk/pkg/algorithms"
	"github.com/orbitalsec/astrarisk/pkg/logging"
	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// Neighbor is a directly connected threat together with the relation that
// connects it and the degree used to rank it.
type Neighbor struct {
	Threat       *threatgraph.Threat
	RelationType string
	Degree       int
}

// CentralitySnapshot holds every centrality measure for a single threat.
type CentralitySnapshot struct {
	Degree      float64
	InDegree    float64
	OutDegree   float64
	Betweenness float64
	Closeness   float64
	PageRank    float64
}

// ConnectionReport describes how one threat sits in the graph.
type ConnectionReport struct {
	Threat    *threatgraph.Threat
	InDegree  int
	OutDegree int

	// Predecessors lead to the threat, ranked by their out-degree;
	// successors are enabled by it, ranked by their in-degree.
	Predecessors []Neighbor
	Successors   []Neighbor

	// SecondLevel holds threats two steps away in either direction,
	// excluding the threat itself and its direct neighbors.
	SecondLevel []*threatgraph.Threat

	Centrality CentralitySnapshot

	// SamplePaths are attack chains from low-in-degree entries to
	// low-out-degree sinks that pass through the threat.
	SamplePaths []algorithms.Path
}

const connectionSamplePaths = 5

// AnalyzeConnections builds the connection report for the named threat.
func (a *Analyzer) AnalyzeConnections(name string) (*ConnectionReport, error) {
	node, ok := a.graph.NodeByName(name)
	if !ok {
		return nil, fmt.Errorf("threat %q not found in graph", name)
	}

	a.logger.Info("analyzing threat connections", logging.Threat(name))

	report := &ConnectionReport{
		Threat:    node,
		InDegree:  a.graph.InDegree(node.ID),
		OutDegree: a.graph.OutDegree(node.ID),
	}

	for _, edge := range a.graph.Incoming(node.ID) {
		pred, err := a.graph.Node(edge.FromID)
		if err != nil {
			continue
		}
		report.Predecessors = append(report.Predecessors, Neighbor{
			Threat:       pred,
			RelationType: edge.Type,
			Degree:       a.graph.OutDegree(pred.ID),
		})
	}
	for _, edge := range a.graph.Outgoing(node.ID) {
		succ, err := a.graph.Node(edge.ToID)
		if err != nil {
			continue
		}
		report.Successors = append(report.Successors, Neighbor{
			Threat:       succ,
			RelationType: edge.Type,
			Degree:       a.graph.InDegree(succ.ID),
		})
	}
	sortNeighbors(report.Predecessors)
	sortNeighbors(report.Successors)

	report.SecondLevel = a.secondLevelNeighbors(node)
	report.Centrality = a.centralityFor(node.ID)
	report.SamplePaths = a.samplePathsThrough(node)

	return report, nil
}

func sortNeighbors(neighbors []Neighbor) {
	sort.SliceStable(neighbors, func(i, j int) bool {
		if neighbors[i].Degree != neighbors[j].Degree {
			return neighbors[i].Degree > neighbors[j].Degree
		}
		return neighbors[i].Threat.Name < neighbors[j].Threat.Name
	})
}

// secondLevelNeighbors collects threats exactly two undirected steps away.
func (a *Analyzer) secondLevelNeighbors(node *threatgraph.Threat) []*threatgraph.Threat {
	direct := make(map[uint64]bool)
	for _, edge := range a.graph.Incoming(node.ID) {
		direct[edge.FromID] = true
	}
	for _, edge := range a.graph.Outgoing(node.ID) {
		direct[edge.ToID] = true
	}

	second := make(map[uint64]*threatgraph.Threat)
	for neighborID := range direct {
		for _, edge := range a.graph.Incoming(neighborID) {
			a.collectSecondLevel(second, direct, node.ID, edge.FromID)
		}
		for _, edge := range a.graph.Outgoing(neighborID) {
			a.collectSecondLevel(second, direct, node.ID, edge.ToID)
		}
	}

	out := make([]*threatgraph.Threat, 0, len(second))
	for _, t := range second {
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (a *Analyzer) collectSecondLevel(second map[uint64]*threatgraph.Threat, direct map[uint64]bool, centerID, candidateID uint64) {
	if candidateID == centerID || direct[candidateID] {
		return
	}
	if _, ok := second[candidateID]; ok {
		return
	}
	if node, err := a.graph.Node(candidateID); err == nil {
		second[candidateID] = node
	}
}

func (a *Analyzer) centralityFor(id uint64) CentralitySnapshot {
	pr := algorithms.PageRank(a.graph, algorithms.DefaultPageRankOptions())
	return CentralitySnapshot{
		Degree:      algorithms.DegreeCentrality(a.graph)[id],
		InDegree:    algorithms.InDegreeCentrality(a.graph)[id],
		OutDegree:   algorithms.OutDegreeCentrality(a.graph)[id],
		Betweenness: algorithms.BetweennessCentrality(a.graph)[id],
		Closeness:   algorithms.ClosenessCentrality(a.graph)[id],
		PageRank:    pr.Scores[id],
	}
}

// samplePathsThrough joins entry-to-threat and threat-to-sink segments into
// example attack chains. Entries have in-degree <= 1, sinks out-degree <= 1;
// both candidate lists are capped to keep enumeration bounded.
func (a *Analyzer) samplePathsThrough(node *threatgraph.Threat) []algorithms.Path {
	var entries, sinks []uint64
	for _, id := range a.graph.NodeIDs() {
		if id == node.ID {
			continue
		}
		if a.graph.InDegree(id) <= 1 {
			entries = append(entries, id)
		}
		if a.graph.OutDegree(id) <= 1 {
			sinks = append(sinks, id)
		}
	}
	if len(entries) > 10 {
		entries = entries[:10]
	}
	if len(sinks) > 10 {
		sinks = sinks[:10]
	}

	var paths []algorithms.Path
	for _, entry := range entries {
		for _, sink := range sinks {
			if len(paths) >= connectionSamplePaths {
				return paths
			}
			found, err := algorithms.PathsThrough(a.graph, entry, node.ID, sink, a.params.FocusPathLength, 2)
			if err != nil {
				continue
			}
			for _, p := range found {
				if len(paths) >= connectionSamplePaths {
					break
				}
				if p.Length() >= 2 {
					paths = append(paths, p)
				}
			}
		}
	}
	return paths
}
