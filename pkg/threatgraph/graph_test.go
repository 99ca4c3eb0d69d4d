package threatgraph

import (
	"testing"
)

func TestAddThreat_MergesByName(t *testing.T) {
	g := New()

	first, err := g.AddThreat("Social Engineering", "")
	if err != nil {
		t.Fatalf("AddThreat failed: %v", err)
	}
	second, err := g.AddThreat("Social Engineering", "NAA")
	if err != nil {
		t.Fatalf("AddThreat failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("duplicate name created a second node: %d vs %d", first.ID, second.ID)
	}
	if second.Category != "NAA" {
		t.Errorf("merge should fill in missing category, got %q", second.Category)
	}

	third, _ := g.AddThreat("Social Engineering", "EIH")
	if third.Category != "NAA" {
		t.Errorf("merge must not overwrite a known category, got %q", third.Category)
	}
}

func TestAddRelation_RequiresNodes(t *testing.T) {
	g := New()
	node, _ := g.AddThreat("Jamming", "NAA")

	if _, err := g.AddRelation(node.ID, 99, "Enables"); err == nil {
		t.Error("expected error for missing target node")
	}
	if _, err := g.AddRelation(99, node.ID, "Enables"); err == nil {
		t.Error("expected error for missing source node")
	}
}

func TestDegreesAndStatistics(t *testing.T) {
	g := New()
	a, _ := g.AddThreat("A", "")
	b, _ := g.AddThreat("B", "")
	c, _ := g.AddThreat("C", "")

	mustRelate(t, g, a.ID, b.ID, "Enables")
	mustRelate(t, g, a.ID, c.ID, "Causes")
	mustRelate(t, g, b.ID, c.ID, "Triggers")

	if got := g.OutDegree(a.ID); got != 2 {
		t.Errorf("OutDegree(A) = %d, want 2", got)
	}
	if got := g.InDegree(c.ID); got != 2 {
		t.Errorf("InDegree(C) = %d, want 2", got)
	}

	stats := g.Statistics()
	if stats.NodeCount != 3 || stats.EdgeCount != 3 {
		t.Errorf("statistics = %+v, want 3 nodes / 3 edges", stats)
	}
}

func TestRemoveThreat_DropsIncidentEdges(t *testing.T) {
	g := New()
	a, _ := g.AddThreat("A", "")
	b, _ := g.AddThreat("B", "")
	c, _ := g.AddThreat("C", "")

	mustRelate(t, g, a.ID, b.ID, "Enables")
	mustRelate(t, g, b.ID, c.ID, "Enables")
	mustRelate(t, g, a.ID, c.ID, "Enables")

	g.RemoveThreat(b.ID)

	stats := g.Statistics()
	if stats.NodeCount != 2 {
		t.Errorf("NodeCount = %d, want 2", stats.NodeCount)
	}
	if stats.EdgeCount != 1 {
		t.Errorf("EdgeCount = %d, want 1 (only A->C survives)", stats.EdgeCount)
	}
	if _, ok := g.NodeByName("B"); ok {
		t.Error("removed node still resolvable by name")
	}
}

func TestNeighborhood(t *testing.T) {
	g := New()
	a, _ := g.AddThreat("A", "")
	b, _ := g.AddThreat("B", "")
	c, _ := g.AddThreat("C", "")
	d, _ := g.AddThreat("D", "")

	mustRelate(t, g, a.ID, b.ID, "Enables")
	mustRelate(t, g, b.ID, c.ID, "Enables")
	mustRelate(t, g, c.ID, d.ID, "Enables")

	sub, err := g.Neighborhood(b.ID, 1)
	if err != nil {
		t.Fatalf("Neighborhood failed: %v", err)
	}

	stats := sub.Statistics()
	if stats.NodeCount != 3 {
		t.Errorf("NodeCount = %d, want 3 (A, B, C)", stats.NodeCount)
	}
	if stats.EdgeCount != 2 {
		t.Errorf("EdgeCount = %d, want 2", stats.EdgeCount)
	}
	if _, ok := sub.NodeByName("D"); ok {
		t.Error("distance-2 node leaked into distance-1 neighborhood")
	}
}

func TestDensity(t *testing.T) {
	g := New()
	if g.Density() != 0 {
		t.Error("empty graph density must be 0")
	}

	a, _ := g.AddThreat("A", "")
	b, _ := g.AddThreat("B", "")
	mustRelate(t, g, a.ID, b.ID, "Enables")

	// One of two possible directed edges.
	if got := g.Density(); got != 0.5 {
		t.Errorf("density = %v, want 0.5", got)
	}
}

func mustRelate(t *testing.T, g *Graph, from, to uint64, relType string) {
	t.Helper()
	if _, err := g.AddRelation(from, to, relType); err != nil {
		t.Fatalf("AddRelation(%d, %d) failed: %v", from, to, err)
	}
}
