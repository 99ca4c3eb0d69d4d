package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// dotFile is the Graphviz file written into the export directory.
const dotFile = "Threat_Graph.dot"

// ExportDOT writes the graph in Graphviz DOT format. Nodes are grouped by
// category colour so the rendered graph separates the CCSDS categories.
func (e *Exporter) ExportDOT(g *threatgraph.Graph) error {
	start := time.Now()

	var b strings.Builder
	b.WriteString("digraph threats {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=rounded];\n\n")

	for _, node := range g.Nodes() {
		fmt.Fprintf(&b, "  %s [label=%s, tooltip=%s];\n",
			dotQuote(node.Name), dotQuote(node.Name), dotQuote(node.Category))
	}
	b.WriteString("\n")

	for _, edge := range g.Edges() {
		from, err := g.Node(edge.FromID)
		if err != nil {
			e.recordError()
			return err
		}
		to, err := g.Node(edge.ToID)
		if err != nil {
			e.recordError()
			return err
		}
		fmt.Fprintf(&b, "  %s -> %s [label=%s];\n",
			dotQuote(from.Name), dotQuote(to.Name), dotQuote(edge.Type))
	}
	b.WriteString("}\n")

	if err := os.WriteFile(e.path(dotFile), []byte(b.String()), 0o644); err != nil {
		e.recordError()
		return fmt.Errorf("writing %s: %w", dotFile, err)
	}

	e.record("dot", 1, start)
	return nil
}

// dotQuote wraps a string in DOT double quotes, escaping embedded quotes.
func dotQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
