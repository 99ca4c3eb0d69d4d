// Package visualization computes 2D layouts for threat graphs, feeding the
// GEXF and DOT exporters with node positions.
package visualization

import (
	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Number of iterations for iterative algorithms
	Padding    float64 // Padding from edges
	Seed       int64   // Seed for randomized layouts; same seed, same layout
}

// DefaultConfig returns the layout bounds used by the exporters.
func DefaultConfig() *LayoutConfig {
	return &LayoutConfig{
		Width:      1200,
		Height:     800,
		Iterations: 50,
		Padding:    50,
		Seed:       1,
	}
}

// Layout interface for different layout algorithms
type Layout interface {
	ComputeLayout(g *threatgraph.Graph, nodeIDs []uint64) (map[uint64]Position, error)
}
