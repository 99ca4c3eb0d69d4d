package visualization

import (
	"math"
	"sort"

	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// CircularLayout places every threat on a single circle. Threats of the same
// category sit on a contiguous arc, so the ring doubles as a category legend.
type CircularLayout struct {
	config *LayoutConfig
}

// NewCircularLayout creates a circular layout with the given config.
func NewCircularLayout(config *LayoutConfig) *CircularLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &CircularLayout{config: config}
}

// ComputeLayout spaces the nodes evenly around the circle, grouped by
// category. Within a category the input order is kept.
func (cl *CircularLayout) ComputeLayout(g *threatgraph.Graph, nodeIDs []uint64) (map[uint64]Position, error) {
	positions := make(map[uint64]Position)

	if len(nodeIDs) == 0 {
		return positions, nil
	}

	ordered := make([]uint64, len(nodeIDs))
	copy(ordered, nodeIDs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return cl.category(g, ordered[i]) < cl.category(g, ordered[j])
	})

	centerX := cl.config.Width / 2
	centerY := cl.config.Height / 2
	radius := math.Min(centerX, centerY) - cl.config.Padding

	angleStep := 2 * math.Pi / float64(len(ordered))

	for i, nodeID := range ordered {
		angle := float64(i) * angleStep
		positions[nodeID] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}

	return positions, nil
}

func (cl *CircularLayout) category(g *threatgraph.Graph, id uint64) string {
	node, err := g.Node(id)
	if err != nil {
		return ""
	}
	return node.Category
}
