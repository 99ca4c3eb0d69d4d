package algorithms

import (
	"math"
	"testing"

	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// addThreat adds a threat and fails the test on error.
func addThreat(t *testing.T, g *threatgraph.Graph, name string) *threatgraph.Threat {
	t.Helper()
	node, err := g.AddThreat(name, "Test Category")
	if err != nil {
		t.Fatalf("AddThreat(%q) failed: %v", name, err)
	}
	return node
}

// addRelation adds a relation and fails the test on error.
func addRelation(t *testing.T, g *threatgraph.Graph, from, to uint64) {
	t.Helper()
	if _, err := g.AddRelation(from, to, "Enables"); err != nil {
		t.Fatalf("AddRelation(%d, %d) failed: %v", from, to, err)
	}
}

// TestDegreeCentrality_EmptyGraph tests degree centrality on empty graph
func TestDegreeCentrality_EmptyGraph(t *testing.T) {
	g := threatgraph.New()

	result := DegreeCentrality(g)

	if len(result) != 0 {
		t.Errorf("Expected 0 scores for empty graph, got %d", len(result))
	}
}

// TestDegreeCentrality_SingleNode tests degree centrality on a single node
func TestDegreeCentrality_SingleNode(t *testing.T) {
	g := threatgraph.New()

	node := addThreat(t, g, "Jamming")

	result := DegreeCentrality(g)

	if len(result) != 1 {
		t.Errorf("Expected 1 score, got %d", len(result))
	}
	if result[node.ID] != 0.0 {
		t.Errorf("Expected degree 0 for single node, got %f", result[node.ID])
	}
}

// TestDegreeCentrality_LinearChain tests degree centrality on A->B->C
func TestDegreeCentrality_LinearChain(t *testing.T) {
	g := threatgraph.New()

	a := addThreat(t, g, "Phishing")
	b := addThreat(t, g, "Credential Theft")
	c := addThreat(t, g, "Telemetry Spoofing")

	addRelation(t, g, a.ID, b.ID)
	addRelation(t, g, b.ID, c.ID)

	result := DegreeCentrality(g)

	// B has 1 in + 1 out, A and C have 1 each.
	if result[b.ID] <= result[a.ID] || result[b.ID] <= result[c.ID] {
		t.Errorf("Expected B degree (%f) > A degree (%f) and C degree (%f)",
			result[b.ID], result[a.ID], result[c.ID])
	}
	if result[b.ID] != 1.0 {
		t.Errorf("Expected B degree 2/(3-1) = 1.0, got %f", result[b.ID])
	}
}

// TestDegreeCentrality_Star tests degree centrality on a hub with three spokes
func TestDegreeCentrality_Star(t *testing.T) {
	g := threatgraph.New()

	hub := addThreat(t, g, "Ground Station Compromise")
	s1 := addThreat(t, g, "Uplink Hijack")
	s2 := addThreat(t, g, "Command Injection")
	s3 := addThreat(t, g, "Data Exfiltration")

	addRelation(t, g, s1.ID, hub.ID)
	addRelation(t, g, s2.ID, hub.ID)
	addRelation(t, g, s3.ID, hub.ID)

	result := DegreeCentrality(g)

	if result[hub.ID] != 1.0 {
		t.Errorf("Expected hub degree 3/(4-1) = 1.0, got %f", result[hub.ID])
	}
	for _, spoke := range []uint64{s1.ID, s2.ID, s3.ID} {
		want := 1.0 / 3.0
		if math.Abs(result[spoke]-want) > 1e-9 {
			t.Errorf("Expected spoke degree %f, got %f", want, result[spoke])
		}
	}
}

// TestInOutDegreeCentrality tests directional degree centrality
func TestInOutDegreeCentrality(t *testing.T) {
	g := threatgraph.New()

	src := addThreat(t, g, "Supply Chain Attack")
	mid := addThreat(t, g, "Firmware Tampering")
	dst := addThreat(t, g, "Loss of Mission")

	addRelation(t, g, src.ID, mid.ID)
	addRelation(t, g, mid.ID, dst.ID)
	addRelation(t, g, src.ID, dst.ID)

	in := InDegreeCentrality(g)
	out := OutDegreeCentrality(g)

	if in[src.ID] != 0.0 {
		t.Errorf("Expected source in-degree 0, got %f", in[src.ID])
	}
	if out[src.ID] != 1.0 {
		t.Errorf("Expected source out-degree 2/2 = 1.0, got %f", out[src.ID])
	}
	if in[dst.ID] != 1.0 {
		t.Errorf("Expected target in-degree 2/2 = 1.0, got %f", in[dst.ID])
	}
	if out[dst.ID] != 0.0 {
		t.Errorf("Expected target out-degree 0, got %f", out[dst.ID])
	}
}

// TestBetweennessCentrality_PathGraph tests betweenness on A->B->C
func TestBetweennessCentrality_PathGraph(t *testing.T) {
	g := threatgraph.New()

	a := addThreat(t, g, "RF Interference")
	b := addThreat(t, g, "Signal Degradation")
	c := addThreat(t, g, "Loss of Contact")

	addRelation(t, g, a.ID, b.ID)
	addRelation(t, g, b.ID, c.ID)

	result := BetweennessCentrality(g)

	// B sits on the only A->C shortest path: raw 1, normalized by (3-1)(3-2)=2.
	if math.Abs(result[b.ID]-0.5) > 1e-9 {
		t.Errorf("Expected betweenness 0.5 for middle node, got %f", result[b.ID])
	}
	if result[a.ID] != 0.0 || result[c.ID] != 0.0 {
		t.Errorf("Expected endpoints at 0, got A=%f C=%f", result[a.ID], result[c.ID])
	}
}

// TestBetweennessCentrality_Diamond tests betweenness split across
// two equal-length shortest paths
func TestBetweennessCentrality_Diamond(t *testing.T) {
	g := threatgraph.New()

	src := addThreat(t, g, "Initial Access")
	left := addThreat(t, g, "Bus Exploitation")
	right := addThreat(t, g, "Payload Exploitation")
	dst := addThreat(t, g, "Spacecraft Takeover")

	addRelation(t, g, src.ID, left.ID)
	addRelation(t, g, src.ID, right.ID)
	addRelation(t, g, left.ID, dst.ID)
	addRelation(t, g, right.ID, dst.ID)

	result := BetweennessCentrality(g)

	// Each intermediate carries half the single src->dst dependency,
	// normalized by (4-1)(4-2)=6.
	want := 0.5 / 6.0
	if math.Abs(result[left.ID]-want) > 1e-9 {
		t.Errorf("Expected betweenness %f for left branch, got %f", want, result[left.ID])
	}
	if math.Abs(result[left.ID]-result[right.ID]) > 1e-9 {
		t.Errorf("Expected symmetric branches, got left=%f right=%f", result[left.ID], result[right.ID])
	}
}

// TestClosenessCentrality_Chain tests closeness on a directed chain
func TestClosenessCentrality_Chain(t *testing.T) {
	g := threatgraph.New()

	a := addThreat(t, g, "Reconnaissance")
	b := addThreat(t, g, "Exploitation")
	c := addThreat(t, g, "Persistence")

	addRelation(t, g, a.ID, b.ID)
	addRelation(t, g, b.ID, c.ID)

	result := ClosenessCentrality(g)

	// A reaches B at 1 and C at 2: 2 reachable / 3 total distance.
	want := 2.0 / 3.0
	if math.Abs(result[a.ID]-want) > 1e-9 {
		t.Errorf("Expected closeness %f for chain head, got %f", want, result[a.ID])
	}
	// C reaches nothing.
	if result[c.ID] != 0.0 {
		t.Errorf("Expected closeness 0 for sink, got %f", result[c.ID])
	}
}

// TestTopThreats tests top-K selection ordering and truncation
func TestTopThreats(t *testing.T) {
	g := threatgraph.New()

	a := addThreat(t, g, "Alpha")
	b := addThreat(t, g, "Bravo")
	c := addThreat(t, g, "Charlie")

	scores := map[uint64]float64{
		a.ID: 0.2,
		b.ID: 0.9,
		c.ID: 0.5,
	}

	top := TopThreats(g, scores, 2)

	if len(top) != 2 {
		t.Fatalf("Expected 2 ranked threats, got %d", len(top))
	}
	if top[0].Threat.ID != b.ID || top[1].Threat.ID != c.ID {
		t.Errorf("Expected order [Bravo, Charlie], got [%s, %s]",
			top[0].Threat.Name, top[1].Threat.Name)
	}

	all := TopThreats(g, scores, 10)
	if len(all) != 3 {
		t.Errorf("Expected all 3 threats when n exceeds graph size, got %d", len(all))
	}

	if got := TopThreats(g, scores, 0); got != nil {
		t.Errorf("Expected nil for n=0, got %v", got)
	}
}
