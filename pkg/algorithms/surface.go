package algorithms

import (
	"sort"

	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// SurfaceNode is a threat flagged as part of the attack surface, carrying
// the degree that qualified it.
type SurfaceNode struct {
	Threat *threatgraph.Threat
	Degree int
}

// AttackSurface holds the entry points and final targets of the graph.
type AttackSurface struct {
	EntryPoints  []SurfaceNode // few inbound relations, many outbound
	FinalTargets []SurfaceNode // many inbound relations, few outbound
}

// Attack-surface thresholds: an entry point has in-degree <= 1 and
// out-degree >= 3; a final target the mirror image.
const (
	entryMaxInDegree   = 1
	entryMinOutDegree  = 3
	targetMinInDegree  = 3
	targetMaxOutDegree = 1
)

// FindAttackSurface scans all threats and classifies entry points and
// final targets, each ranked by the qualifying degree (descending, name
// ascending on ties).
func FindAttackSurface(g *threatgraph.Graph) AttackSurface {
	var surface AttackSurface

	for _, node := range g.Nodes() {
		in := g.InDegree(node.ID)
		out := g.OutDegree(node.ID)

		if in <= entryMaxInDegree && out >= entryMinOutDegree {
			surface.EntryPoints = append(surface.EntryPoints, SurfaceNode{Threat: node, Degree: out})
		}
		if in >= targetMinInDegree && out <= targetMaxOutDegree {
			surface.FinalTargets = append(surface.FinalTargets, SurfaceNode{Threat: node, Degree: in})
		}
	}

	sortSurface(surface.EntryPoints)
	sortSurface(surface.FinalTargets)
	return surface
}

func sortSurface(nodes []SurfaceNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Degree != nodes[j].Degree {
			return nodes[i].Degree > nodes[j].Degree
		}
		return nodes[i].Threat.Name < nodes[j].Threat.Name
	})
}
