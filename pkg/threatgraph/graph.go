// Package threatgraph holds the directed graph of threat relationships the
// analyzer operates on. The graph is small (hundreds of nodes), hand-curated
// and loaded from CSV, so it lives entirely in memory.
package threatgraph

import (
	"fmt"
	"sort"
)

// Threat is a node in the graph: a named threat with its category code
// (e.g. NAA, EIH, PA) and the ratings carried over from the subset file.
type Threat struct {
	ID       uint64
	Name     string
	Category string
}

// Relation is a directed edge between two threats, labelled with the
// relation type (Enables, Causes, Leads-to, Triggers, Amplifies).
type Relation struct {
	ID     uint64
	FromID uint64
	ToID   uint64
	Type   string
}

// Statistics summarises the graph size.
type Statistics struct {
	NodeCount uint64
	EdgeCount uint64
}

// Graph is an in-memory directed multigraph of threats. Node and edge IDs
// are assigned sequentially from 1.
type Graph struct {
	nodes    map[uint64]*Threat
	edges    map[uint64]*Relation
	byName   map[string]uint64
	outgoing map[uint64][]uint64 // node ID -> edge IDs
	incoming map[uint64][]uint64
	nextNode uint64
	nextEdge uint64
}

// New creates an empty threat graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[uint64]*Threat),
		edges:    make(map[uint64]*Relation),
		byName:   make(map[string]uint64),
		outgoing: make(map[uint64][]uint64),
		incoming: make(map[uint64][]uint64),
		nextNode: 1,
		nextEdge: 1,
	}
}

// AddThreat inserts a threat node, merging with an existing node of the
// same name. A merge fills in a missing category but never overwrites a
// known one.
func (g *Graph) AddThreat(name, category string) (*Threat, error) {
	if name == "" {
		return nil, fmt.Errorf("threat name must not be empty")
	}
	if id, ok := g.byName[name]; ok {
		node := g.nodes[id]
		if node.Category == "" {
			node.Category = category
		}
		return node, nil
	}

	node := &Threat{ID: g.nextNode, Name: name, Category: category}
	g.nodes[node.ID] = node
	g.byName[name] = node.ID
	g.nextNode++
	return node, nil
}

// AddRelation inserts a directed edge between two existing threats.
func (g *Graph) AddRelation(fromID, toID uint64, relationType string) (*Relation, error) {
	if _, ok := g.nodes[fromID]; !ok {
		return nil, fmt.Errorf("source threat %d does not exist", fromID)
	}
	if _, ok := g.nodes[toID]; !ok {
		return nil, fmt.Errorf("target threat %d does not exist", toID)
	}

	edge := &Relation{ID: g.nextEdge, FromID: fromID, ToID: toID, Type: relationType}
	g.edges[edge.ID] = edge
	g.outgoing[fromID] = append(g.outgoing[fromID], edge.ID)
	g.incoming[toID] = append(g.incoming[toID], edge.ID)
	g.nextEdge++
	return edge, nil
}

// Node returns the threat with the given ID.
func (g *Graph) Node(id uint64) (*Threat, error) {
	node, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("threat %d not found", id)
	}
	return node, nil
}

// NodeByName returns the threat with the given name.
func (g *Graph) NodeByName(name string) (*Threat, bool) {
	id, ok := g.byName[name]
	if !ok {
		return nil, false
	}
	return g.nodes[id], true
}

// Edge returns the relation with the given ID.
func (g *Graph) Edge(id uint64) (*Relation, error) {
	edge, ok := g.edges[id]
	if !ok {
		return nil, fmt.Errorf("relation %d not found", id)
	}
	return edge, nil
}

// Outgoing returns the relations leaving a threat.
func (g *Graph) Outgoing(nodeID uint64) []*Relation {
	return g.collectEdges(g.outgoing[nodeID])
}

// Incoming returns the relations entering a threat.
func (g *Graph) Incoming(nodeID uint64) []*Relation {
	return g.collectEdges(g.incoming[nodeID])
}

func (g *Graph) collectEdges(ids []uint64) []*Relation {
	out := make([]*Relation, 0, len(ids))
	for _, id := range ids {
		if edge, ok := g.edges[id]; ok {
			out = append(out, edge)
		}
	}
	return out
}

// OutDegree returns the number of relations leaving a threat.
func (g *Graph) OutDegree(nodeID uint64) int { return len(g.outgoing[nodeID]) }

// InDegree returns the number of relations entering a threat.
func (g *Graph) InDegree(nodeID uint64) int { return len(g.incoming[nodeID]) }

// Statistics returns node and edge counts.
func (g *Graph) Statistics() Statistics {
	return Statistics{
		NodeCount: uint64(len(g.nodes)),
		EdgeCount: uint64(len(g.edges)),
	}
}

// NodeIDs returns all node IDs in ascending order. Deterministic ordering
// keeps analysis output stable between runs.
func (g *Graph) NodeIDs() []uint64 {
	ids := make([]uint64, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Nodes returns all threats ordered by ID.
func (g *Graph) Nodes() []*Threat {
	ids := g.NodeIDs()
	out := make([]*Threat, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns all relations ordered by ID.
func (g *Graph) Edges() []*Relation {
	ids := make([]uint64, 0, len(g.edges))
	for id := range g.edges {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*Relation, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.edges[id])
	}
	return out
}

// Density returns the edge density of the directed graph.
func (g *Graph) Density() float64 {
	n := len(g.nodes)
	if n < 2 {
		return 0
	}
	return float64(len(g.edges)) / float64(n*(n-1))
}

// RemoveThreat deletes a node and every relation touching it.
func (g *Graph) RemoveThreat(nodeID uint64) {
	node, ok := g.nodes[nodeID]
	if !ok {
		return
	}

	for _, edge := range g.Outgoing(nodeID) {
		g.removeEdge(edge)
	}
	for _, edge := range g.Incoming(nodeID) {
		g.removeEdge(edge)
	}

	delete(g.nodes, nodeID)
	delete(g.byName, node.Name)
	delete(g.outgoing, nodeID)
	delete(g.incoming, nodeID)
}

func (g *Graph) removeEdge(edge *Relation) {
	delete(g.edges, edge.ID)
	g.outgoing[edge.FromID] = removeID(g.outgoing[edge.FromID], edge.ID)
	g.incoming[edge.ToID] = removeID(g.incoming[edge.ToID], edge.ID)
}

func removeID(ids []uint64, id uint64) []uint64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Neighborhood returns the subgraph containing the center threat and every
// node within the given distance (following edges in both directions), with
// all relations among the kept nodes.
func (g *Graph) Neighborhood(centerID uint64, distance int) (*Graph, error) {
	if _, err := g.Node(centerID); err != nil {
		return nil, err
	}

	keep := map[uint64]bool{centerID: true}
	frontier := []uint64{centerID}

	for step := 0; step < distance; step++ {
		next := make([]uint64, 0)
		for _, id := range frontier {
			for _, edge := range g.Outgoing(id) {
				if !keep[edge.ToID] {
					keep[edge.ToID] = true
					next = append(next, edge.ToID)
				}
			}
			for _, edge := range g.Incoming(id) {
				if !keep[edge.FromID] {
					keep[edge.FromID] = true
					next = append(next, edge.FromID)
				}
			}
		}
		frontier = next
	}

	sub := New()
	mapping := make(map[uint64]uint64, len(keep))
	for _, node := range g.Nodes() {
		if keep[node.ID] {
			created, _ := sub.AddThreat(node.Name, node.Category)
			mapping[node.ID] = created.ID
		}
	}
	for _, edge := range g.Edges() {
		if keep[edge.FromID] && keep[edge.ToID] {
			if _, err := sub.AddRelation(mapping[edge.FromID], mapping[edge.ToID], edge.Type); err != nil {
				return nil, err
			}
		}
	}

	return sub, nil
}
