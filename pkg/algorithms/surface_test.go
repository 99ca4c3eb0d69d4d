package algorithms

import (
	"testing"

	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// TestFindAttackSurface_EmptyGraph tests surface detection on empty graph
func TestFindAttackSurface_EmptyGraph(t *testing.T) {
	g := threatgraph.New()

	surface := FindAttackSurface(g)

	if len(surface.EntryPoints) != 0 || len(surface.FinalTargets) != 0 {
		t.Errorf("Expected empty surface, got %d entries and %d targets",
			len(surface.EntryPoints), len(surface.FinalTargets))
	}
}

// TestFindAttackSurface_Thresholds tests the degree thresholds for
// entry points and final targets
func TestFindAttackSurface_Thresholds(t *testing.T) {
	g := threatgraph.New()

	entry := addThreat(t, g, "Spearphishing")
	mid1 := addThreat(t, g, "Credential Theft")
	mid2 := addThreat(t, g, "Malware Implant")
	mid3 := addThreat(t, g, "Uplink Hijack")
	target := addThreat(t, g, "Loss of Mission")

	// entry: in-degree 0, out-degree 3.
	addRelation(t, g, entry.ID, mid1.ID)
	addRelation(t, g, entry.ID, mid2.ID)
	addRelation(t, g, entry.ID, mid3.ID)

	// target: in-degree 3, out-degree 0.
	addRelation(t, g, mid1.ID, target.ID)
	addRelation(t, g, mid2.ID, target.ID)
	addRelation(t, g, mid3.ID, target.ID)

	surface := FindAttackSurface(g)

	if len(surface.EntryPoints) != 1 || surface.EntryPoints[0].Threat.ID != entry.ID {
		t.Fatalf("Expected single entry point %q, got %v", entry.Name, surface.EntryPoints)
	}
	if surface.EntryPoints[0].Degree != 3 {
		t.Errorf("Expected entry degree 3, got %d", surface.EntryPoints[0].Degree)
	}

	if len(surface.FinalTargets) != 1 || surface.FinalTargets[0].Threat.ID != target.ID {
		t.Fatalf("Expected single final target %q, got %v", target.Name, surface.FinalTargets)
	}
	if surface.FinalTargets[0].Degree != 3 {
		t.Errorf("Expected target degree 3, got %d", surface.FinalTargets[0].Degree)
	}
}

// TestFindAttackSurface_BelowThreshold tests that moderate nodes are excluded
func TestFindAttackSurface_BelowThreshold(t *testing.T) {
	g := threatgraph.New()

	a := addThreat(t, g, "Jamming")
	b := addThreat(t, g, "Signal Loss")
	c := addThreat(t, g, "Mission Degradation")

	// Out-degree 2 is below the entry threshold; in-degree 2 below the
	// target threshold.
	addRelation(t, g, a.ID, b.ID)
	addRelation(t, g, a.ID, c.ID)
	addRelation(t, g, b.ID, c.ID)

	surface := FindAttackSurface(g)

	if len(surface.EntryPoints) != 0 {
		t.Errorf("Expected no entry points, got %v", surface.EntryPoints)
	}
	if len(surface.FinalTargets) != 0 {
		t.Errorf("Expected no final targets, got %v", surface.FinalTargets)
	}
}

// TestFindAttackSurface_Ordering tests degree-descending ordering
func TestFindAttackSurface_Ordering(t *testing.T) {
	g := threatgraph.New()

	big := addThreat(t, g, "Ground Station Compromise")
	small := addThreat(t, g, "Supply Chain Attack")

	sinks := make([]*threatgraph.Threat, 0, 4)
	for _, name := range []string{"Bus Fault", "Payload Fault", "Telemetry Fault", "Command Fault"} {
		sinks = append(sinks, addThreat(t, g, name))
	}

	// big fans out to four sinks, small to three of them.
	for _, sink := range sinks {
		addRelation(t, g, big.ID, sink.ID)
	}
	for _, sink := range sinks[:3] {
		addRelation(t, g, small.ID, sink.ID)
	}

	surface := FindAttackSurface(g)

	if len(surface.EntryPoints) != 2 {
		t.Fatalf("Expected 2 entry points, got %d", len(surface.EntryPoints))
	}
	if surface.EntryPoints[0].Threat.ID != big.ID {
		t.Errorf("Expected highest-degree entry first, got %q", surface.EntryPoints[0].Threat.Name)
	}
}
