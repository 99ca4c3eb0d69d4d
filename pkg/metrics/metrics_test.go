package metrics

import (
	"strings"
	"testing"
	"time"
)

func TestRegistry_RecordGraphLoad(t *testing.T) {
	r := NewRegistry()

	r.RecordGraphLoad(42, 99)

	summary, err := r.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if !strings.Contains(summary, "astrarisk_graph_nodes 42") {
		t.Errorf("Expected node gauge in summary, got:\n%s", summary)
	}
	if !strings.Contains(summary, "astrarisk_graph_edges 99") {
		t.Errorf("Expected edge gauge in summary, got:\n%s", summary)
	}
	if !strings.Contains(summary, "astrarisk_graphs_loaded_total 1") {
		t.Errorf("Expected load counter in summary, got:\n%s", summary)
	}
}

func TestRegistry_RecordAnalysis(t *testing.T) {
	r := NewRegistry()

	r.RecordAnalysis("success", 120*time.Millisecond, 37, 5)
	r.RecordAnalysis("success", 80*time.Millisecond, 13, 3)

	summary, err := r.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if !strings.Contains(summary, "astrarisk_analyses_total{status=success} 2") {
		t.Errorf("Expected analysis counter in summary, got:\n%s", summary)
	}
	if !strings.Contains(summary, "astrarisk_paths_enumerated_total 50") {
		t.Errorf("Expected paths counter in summary, got:\n%s", summary)
	}
	if !strings.Contains(summary, "astrarisk_analysis_duration_seconds count=2") {
		t.Errorf("Expected duration histogram in summary, got:\n%s", summary)
	}
}

func TestRegistry_ZeroCountersOmitted(t *testing.T) {
	r := NewRegistry()

	summary, err := r.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if strings.Contains(summary, "astrarisk_graph_load_errors_total") {
		t.Errorf("Expected zero counter to be omitted, got:\n%s", summary)
	}
	// Gauges always print, even at zero.
	if !strings.Contains(summary, "astrarisk_graph_nodes 0") {
		t.Errorf("Expected zero gauge to print, got:\n%s", summary)
	}
}

func TestDefaultRegistry_Singleton(t *testing.T) {
	a := DefaultRegistry()
	b := DefaultRegistry()
	if a != b {
		t.Error("Expected DefaultRegistry to return the same instance")
	}
}
