package visualization

// normalizePositions rescales raw layout coordinates so every node lands
// inside the canvas with a padding margin on each side. An axis where all
// nodes coincide is given a unit range so the scale stays finite.
func normalizePositions(positions map[uint64]Position, width, height, padding float64) map[uint64]Position {
	if len(positions) == 0 {
		return positions
	}

	var minX, maxX, minY, maxY float64
	first := true
	for _, pos := range positions {
		if first {
			minX, maxX = pos.X, pos.X
			minY, maxY = pos.Y, pos.Y
			first = false
			continue
		}
		if pos.X < minX {
			minX = pos.X
		}
		if pos.X > maxX {
			maxX = pos.X
		}
		if pos.Y < minY {
			minY = pos.Y
		}
		if pos.Y > maxY {
			maxY = pos.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX < 0.01 {
		rangeX = 1
	}
	if rangeY < 0.01 {
		rangeY = 1
	}

	targetWidth := width - 2*padding
	targetHeight := height - 2*padding

	normalized := make(map[uint64]Position, len(positions))
	for nodeID, pos := range positions {
		normalized[nodeID] = Position{
			X: padding + (pos.X-minX)/rangeX*targetWidth,
			Y: padding + (pos.Y-minY)/rangeY*targetHeight,
		}
	}
	return normalized
}
