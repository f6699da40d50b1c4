package ladder

// DefaultMinHeight is the shortest ladder the game draws.
const DefaultMinHeight = 400

// DefaultWidth is the horizontal extent lanes are spread across.
const DefaultWidth = 600.0

// HeightFor sizes a ladder so the requested rung count fits comfortably.
// The non-adjacency rule lets a level hold roughly half of the gaps between
// lanes, so 2*rungCount/gaps levels are needed, plus four spacings of
// headroom for the rails.
func HeightFor(laneCount, rungCount int, geom Geometry, minHeight int) int {
	geom = geom.normalized()
	if minHeight <= 0 {
		minHeight = DefaultMinHeight
	}

	gaps := laneCount - 1
	if gaps <= 0 || rungCount <= 0 {
		return minHeight
	}

	levels := (2*rungCount + gaps - 1) / gaps
	return max(minHeight, (levels+4)*geom.Spacing)
}
