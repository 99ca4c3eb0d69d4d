package algorithms

import (
	"fmt"

	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// Path is a simple path through the threat graph: the visited threats and
// the relations connecting them (len(Relations) == len(Threats)-1).
type Path struct {
	Threats   []*threatgraph.Threat
	Relations []*threatgraph.Relation
}

// Length returns the number of relations in the path.
func (p Path) Length() int { return len(p.Relations) }

// Names returns the threat names along the path, in order.
func (p Path) Names() []string {
	names := make([]string, len(p.Threats))
	for i, t := range p.Threats {
		names[i] = t.Name
	}
	return names
}

// AllSimplePaths enumerates every simple path from source to target with at
// most cutoff relations, depth-first with visited-set backtracking. The
// graphs in scope are small hand-curated models, so exhaustive enumeration
// with a length cutoff is deliberate.
func AllSimplePaths(g *threatgraph.Graph, sourceID, targetID uint64, cutoff int) ([]Path, error) {
	if cutoff < 1 {
		return nil, fmt.Errorf("path cutoff must be at least 1, got %d", cutoff)
	}
	source, err := g.Node(sourceID)
	if err != nil {
		return nil, err
	}
	if _, err := g.Node(targetID); err != nil {
		return nil, err
	}

	var paths []Path
	visited := map[uint64]bool{sourceID: true}
	current := Path{Threats: []*threatgraph.Threat{source}}

	var walk func(id uint64)
	walk = func(id uint64) {
		if id == targetID {
			found := Path{
				Threats:   append([]*threatgraph.Threat(nil), current.Threats...),
				Relations: append([]*threatgraph.Relation(nil), current.Relations...),
			}
			paths = append(paths, found)
			return
		}
		if current.Length() >= cutoff {
			return
		}

		for _, edge := range g.Outgoing(id) {
			if visited[edge.ToID] {
				continue
			}
			next, err := g.Node(edge.ToID)
			if err != nil {
				continue
			}

			visited[edge.ToID] = true
			current.Threats = append(current.Threats, next)
			current.Relations = append(current.Relations, edge)

			walk(edge.ToID)

			current.Threats = current.Threats[:len(current.Threats)-1]
			current.Relations = current.Relations[:len(current.Relations)-1]
			delete(visited, edge.ToID)
		}
	}

	if sourceID == targetID {
		return []Path{current}, nil
	}

	walk(sourceID)
	return paths, nil
}

// PathsThrough enumerates paths from entry to exit that pass through the
// pivot threat, by joining entry->pivot and pivot->exit segments. Each
// segment respects the cutoff; joined paths sharing a node other than the
// pivot are discarded to keep results simple paths.
func PathsThrough(g *threatgraph.Graph, entryID, pivotID, exitID uint64, cutoff, maxPaths int) ([]Path, error) {
	toPivot, err := AllSimplePaths(g, entryID, pivotID, cutoff)
	if err != nil {
		return nil, err
	}
	fromPivot, err := AllSimplePaths(g, pivotID, exitID, cutoff)
	if err != nil {
		return nil, err
	}

	var joined []Path
	for _, head := range toPivot {
		for _, tail := range fromPivot {
			if maxPaths > 0 && len(joined) >= maxPaths {
				return joined, nil
			}
			if full, ok := joinPaths(head, tail); ok {
				joined = append(joined, full)
			}
		}
	}
	return joined, nil
}

// joinPaths concatenates two path segments sharing the pivot node. It
// fails when the segments revisit a node.
func joinPaths(head, tail Path) (Path, bool) {
	seen := make(map[uint64]bool, len(head.Threats)+len(tail.Threats))
	for _, t := range head.Threats {
		seen[t.ID] = true
	}
	for _, t := range tail.Threats[1:] {
		if seen[t.ID] {
			return Path{}, false
		}
		seen[t.ID] = true
	}

	full := Path{
		Threats:   append(append([]*threatgraph.Threat(nil), head.Threats...), tail.Threats[1:]...),
		Relations: append(append([]*threatgraph.Relation(nil), head.Relations...), tail.Relations...),
	}
	return full, true
}
