package algorithms

import (
	"testing"

	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// TestHasCycle_EmptyGraph tests cycle detection on an empty graph
func TestHasCycle_EmptyGraph(t *testing.T) {
	g := threatgraph.New()

	if HasCycle(g) {
		t.Error("Expected no cycle in empty graph")
	}
	if !IsDAG(g) {
		t.Error("Expected empty graph to be a DAG")
	}
}

// TestHasCycle_Chain tests that a linear chain has no cycle
func TestHasCycle_Chain(t *testing.T) {
	g := threatgraph.New()

	a := addThreat(t, g, "Jamming")
	b := addThreat(t, g, "Signal Loss")
	c := addThreat(t, g, "Mission Degradation")

	addRelation(t, g, a.ID, b.ID)
	addRelation(t, g, b.ID, c.ID)

	if HasCycle(g) {
		t.Error("Expected no cycle in linear chain")
	}
}

// TestHasCycle_SimpleCycle tests detection of a two-node cycle
func TestHasCycle_SimpleCycle(t *testing.T) {
	g := threatgraph.New()

	a := addThreat(t, g, "Replay Attack")
	b := addThreat(t, g, "Session Hijack")

	addRelation(t, g, a.ID, b.ID)
	addRelation(t, g, b.ID, a.ID)

	if !HasCycle(g) {
		t.Error("Expected cycle detection on a->b->a")
	}
	if IsDAG(g) {
		t.Error("Expected IsDAG to be false with a cycle present")
	}
}

// TestHasCycle_CycleInSecondComponent tests that cycles are found
// regardless of which component they sit in
func TestHasCycle_CycleInSecondComponent(t *testing.T) {
	g := threatgraph.New()

	a := addThreat(t, g, "Phishing")
	b := addThreat(t, g, "Credential Theft")
	addRelation(t, g, a.ID, b.ID)

	x := addThreat(t, g, "Firmware Tampering")
	y := addThreat(t, g, "Boot Compromise")
	z := addThreat(t, g, "Persistence")
	addRelation(t, g, x.ID, y.ID)
	addRelation(t, g, y.ID, z.ID)
	addRelation(t, g, z.ID, x.ID)

	if !HasCycle(g) {
		t.Error("Expected cycle in disconnected component to be detected")
	}
}

// TestWeaklyConnectedComponents tests component counting with mixed
// edge directions
func TestWeaklyConnectedComponents(t *testing.T) {
	g := threatgraph.New()

	a := addThreat(t, g, "Uplink Hijack")
	b := addThreat(t, g, "Command Injection")
	c := addThreat(t, g, "Telemetry Spoofing")
	addRelation(t, g, a.ID, b.ID)
	addRelation(t, g, c.ID, b.ID)

	isolated := addThreat(t, g, "Isolated Failure")
	_ = isolated

	components := WeaklyConnectedComponents(g)

	if len(components) != 2 {
		t.Fatalf("Expected 2 components, got %d", len(components))
	}

	sizes := map[int]int{}
	for _, component := range components {
		sizes[len(component)]++
	}
	if sizes[3] != 1 || sizes[1] != 1 {
		t.Errorf("Expected component sizes {3, 1}, got %v", sizes)
	}

	if IsWeaklyConnected(g) {
		t.Error("Expected graph with isolated node to be disconnected")
	}
}

// TestIsWeaklyConnected_SingleComponent tests connectivity on one component
func TestIsWeaklyConnected_SingleComponent(t *testing.T) {
	g := threatgraph.New()

	a := addThreat(t, g, "Reconnaissance")
	b := addThreat(t, g, "Exploitation")
	addRelation(t, g, a.ID, b.ID)

	if !IsWeaklyConnected(g) {
		t.Error("Expected two linked nodes to form one component")
	}

	empty := threatgraph.New()
	if !IsWeaklyConnected(empty) {
		t.Error("Expected empty graph to count as connected")
	}
}
