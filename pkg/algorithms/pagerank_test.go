package algorithms

import (
	"errors"
	"math"
	"testing"

	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// TestPageRank_EmptyGraph tests PageRank on an empty graph
func TestPageRank_EmptyGraph(t *testing.T) {
	g := threatgraph.New()

	result := PageRank(g, DefaultPageRankOptions())

	if !result.Converged {
		t.Error("Expected empty graph to converge trivially")
	}
	if len(result.Scores) != 0 {
		t.Errorf("Expected 0 scores, got %d", len(result.Scores))
	}
}

// TestPageRank_Chain tests that downstream nodes accumulate rank
func TestPageRank_Chain(t *testing.T) {
	g := threatgraph.New()

	a := addThreat(t, g, "Entry Exploit")
	b := addThreat(t, g, "Lateral Movement")
	c := addThreat(t, g, "Mission Impact")

	addRelation(t, g, a.ID, b.ID)
	addRelation(t, g, b.ID, c.ID)

	result := PageRank(g, DefaultPageRankOptions())

	if !result.Converged {
		t.Fatalf("Expected convergence, stopped after %d iterations", result.Iterations)
	}
	if result.Scores[c.ID] <= result.Scores[b.ID] || result.Scores[b.ID] <= result.Scores[a.ID] {
		t.Errorf("Expected rank to grow along the chain, got a=%f b=%f c=%f",
			result.Scores[a.ID], result.Scores[b.ID], result.Scores[c.ID])
	}
}

// TestPageRank_SumsToOne tests that scores form a probability distribution
// even with dangling nodes present
func TestPageRank_SumsToOne(t *testing.T) {
	g := threatgraph.New()

	a := addThreat(t, g, "Jamming")
	b := addThreat(t, g, "Denial of Service")
	dangling := addThreat(t, g, "Isolated Failure")

	addRelation(t, g, a.ID, b.ID)
	addRelation(t, g, b.ID, a.ID)
	addRelation(t, g, a.ID, dangling.ID)

	result := PageRank(g, DefaultPageRankOptions())

	sum := 0.0
	for _, score := range result.Scores {
		sum += score
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("Expected scores to sum to 1.0, got %f", sum)
	}
}

// TestEigenvectorCentrality_Cycle tests convergence on a directed cycle
func TestEigenvectorCentrality_Cycle(t *testing.T) {
	g := threatgraph.New()

	a := addThreat(t, g, "Replay Attack")
	b := addThreat(t, g, "Session Hijack")
	c := addThreat(t, g, "Privilege Escalation")

	addRelation(t, g, a.ID, b.ID)
	addRelation(t, g, b.ID, c.ID)
	addRelation(t, g, c.ID, a.ID)

	scores, err := EigenvectorCentrality(g, 1000)
	if err != nil {
		t.Fatalf("EigenvectorCentrality failed: %v", err)
	}

	// On a symmetric cycle all nodes share the same centrality, and the
	// vector is L2-normalized.
	want := 1.0 / math.Sqrt(3)
	for id, score := range scores {
		if math.Abs(score-want) > 1e-4 {
			t.Errorf("Expected score %f for node %d, got %f", want, id, score)
		}
	}
}

// TestEigenvectorCentrality_DAG tests that a pure DAG reports no convergence
func TestEigenvectorCentrality_DAG(t *testing.T) {
	g := threatgraph.New()

	a := addThreat(t, g, "Spearphishing")
	b := addThreat(t, g, "Malware Implant")

	addRelation(t, g, a.ID, b.ID)

	_, err := EigenvectorCentrality(g, 50)
	if !errors.Is(err, ErrNoConvergence) {
		t.Errorf("Expected ErrNoConvergence on a DAG, got %v", err)
	}
}

// TestEigenvectorCentrality_EmptyGraph tests the empty graph edge case
func TestEigenvectorCentrality_EmptyGraph(t *testing.T) {
	g := threatgraph.New()

	scores, err := EigenvectorCentrality(g, 100)
	if err != nil {
		t.Fatalf("EigenvectorCentrality failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("Expected no scores for empty graph, got %d", len(scores))
	}
}
