package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/orbitalsec/astrarisk/pkg/algorithms"
	"github.com/orbitalsec/astrarisk/pkg/analyzer"
)

// reportFile is the text report written into the export directory.
const reportFile = "Analysis_Report.txt"

// ExportReport renders the analysis report as plain text and writes it into
// the export directory.
func (e *Exporter) ExportReport(rep *analyzer.Report) error {
	start := time.Now()

	if err := os.WriteFile(e.path(reportFile), []byte(RenderReport(rep)), 0o644); err != nil {
		e.recordError()
		return fmt.Errorf("writing %s: %w", reportFile, err)
	}

	e.record("report", 1, start)
	return nil
}

// RenderReport formats an analysis report for terminals and text files.
func RenderReport(rep *analyzer.Report) string {
	var b strings.Builder

	section(&b, "ATTACK GRAPH ANALYSIS")
	fmt.Fprintf(&b, "Threats:   %d\n", rep.Statistics.NodeCount)
	fmt.Fprintf(&b, "Relations: %d\n", rep.Statistics.EdgeCount)
	fmt.Fprintf(&b, "Density:   %.4f\n", rep.Density)
	fmt.Fprintf(&b, "Acyclic:   %v\n", rep.IsDAG)
	fmt.Fprintf(&b, "Weakly connected components: %d\n", rep.Components)

	section(&b, "CATEGORY DISTRIBUTION")
	for _, nc := range rep.Categories.Distribution {
		fmt.Fprintf(&b, "  %-45s %d\n", nc.Name, nc.Count)
	}

	section(&b, "RELATION TYPES")
	for _, nc := range rep.Categories.RelationTypes {
		fmt.Fprintf(&b, "  %-45s %d\n", nc.Name, nc.Count)
	}

	if len(rep.Categories.Pairs) > 0 {
		section(&b, "CATEGORY INTERACTIONS")
		for _, pair := range rep.Categories.Pairs {
			fmt.Fprintf(&b, "  %s -> %s: %d\n", pair.Source, pair.Target, pair.Count)
		}
	}

	section(&b, "CENTRALITY")
	ranked(&b, "Degree", rep.Centrality.Degree)
	ranked(&b, "In-degree", rep.Centrality.InDegree)
	ranked(&b, "Out-degree", rep.Centrality.OutDegree)
	ranked(&b, "Betweenness", rep.Centrality.Betweenness)
	ranked(&b, "Closeness", rep.Centrality.Closeness)
	ranked(&b, "PageRank", rep.Centrality.PageRank)
	if rep.Centrality.EigenvectorSkipped {
		b.WriteString("\nEigenvector: skipped, power iteration did not converge\n")
	} else {
		ranked(&b, "Eigenvector", rep.Centrality.Eigenvector)
	}

	section(&b, "CRITICAL SOURCES")
	for _, st := range rep.CriticalSources {
		fmt.Fprintf(&b, "  %-45s score %d\n", st.Threat.Name, st.Score)
	}

	section(&b, "CRITICAL TARGETS")
	for _, st := range rep.CriticalTargets {
		fmt.Fprintf(&b, "  %-45s score %d\n", st.Threat.Name, st.Score)
	}

	section(&b, "CRITICAL ATTACK PATHS")
	for i, cp := range rep.CriticalPaths {
		fmt.Fprintf(&b, "%2d. [score %.1f, danger %.0f%%] %s\n",
			i+1, cp.Score, cp.Danger*100, strings.Join(cp.Path.Names(), " -> "))
	}

	section(&b, "ATTACK SURFACE")
	b.WriteString("Entry points:\n")
	surface(&b, rep.Surface.EntryPoints, "out-degree")
	b.WriteString("Final targets:\n")
	surface(&b, rep.Surface.FinalTargets, "in-degree")

	return b.String()
}

// RenderConnections formats a single-threat connection report.
func RenderConnections(rep *analyzer.ConnectionReport) string {
	var b strings.Builder

	section(&b, fmt.Sprintf("THREAT CONNECTIONS: %s", rep.Threat.Name))
	fmt.Fprintf(&b, "Category:   %s\n", rep.Threat.Category)
	fmt.Fprintf(&b, "In-degree:  %d\n", rep.InDegree)
	fmt.Fprintf(&b, "Out-degree: %d\n", rep.OutDegree)

	b.WriteString("\nLed to by:\n")
	if len(rep.Predecessors) == 0 {
		b.WriteString("  none\n")
	}
	for _, n := range rep.Predecessors {
		fmt.Fprintf(&b, "  %-45s %s (out-degree %d)\n", n.Threat.Name, n.RelationType, n.Degree)
	}

	b.WriteString("\nLeads to:\n")
	if len(rep.Successors) == 0 {
		b.WriteString("  none\n")
	}
	for _, n := range rep.Successors {
		fmt.Fprintf(&b, "  %-45s %s (in-degree %d)\n", n.Threat.Name, n.RelationType, n.Degree)
	}

	if len(rep.SecondLevel) > 0 {
		b.WriteString("\nTwo steps away:\n")
		for _, t := range rep.SecondLevel {
			fmt.Fprintf(&b, "  %s\n", t.Name)
		}
	}

	b.WriteString("\nCentrality:\n")
	fmt.Fprintf(&b, "  Degree      %.4f\n", rep.Centrality.Degree)
	fmt.Fprintf(&b, "  In-degree   %.4f\n", rep.Centrality.InDegree)
	fmt.Fprintf(&b, "  Out-degree  %.4f\n", rep.Centrality.OutDegree)
	fmt.Fprintf(&b, "  Betweenness %.4f\n", rep.Centrality.Betweenness)
	fmt.Fprintf(&b, "  Closeness   %.4f\n", rep.Centrality.Closeness)
	fmt.Fprintf(&b, "  PageRank    %.4f\n", rep.Centrality.PageRank)

	if len(rep.SamplePaths) > 0 {
		b.WriteString("\nSample attack chains through this threat:\n")
		for _, p := range rep.SamplePaths {
			fmt.Fprintf(&b, "  %s\n", strings.Join(p.Names(), " -> "))
		}
	}

	return b.String()
}

func section(b *strings.Builder, title string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
}

func ranked(b *strings.Builder, title string, threats []algorithms.RankedThreat) {
	if len(threats) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, rt := range threats {
		fmt.Fprintf(b, "  %-45s %.4f\n", rt.Threat.Name, rt.Score)
	}
}

func surface(b *strings.Builder, nodes []algorithms.SurfaceNode, degreeName string) {
	if len(nodes) == 0 {
		b.WriteString("  none\n")
		return
	}
	for _, node := range nodes {
		fmt.Fprintf(b, "  %-45s %s %d\n", node.Threat.Name, degreeName, node.Degree)
	}
}
