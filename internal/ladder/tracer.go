package ladder

// CalculateAllPaths traces every starting lane. laneCount and height must
// match the values the rung set was generated with; they are not
// cross-checked.
func CalculateAllPaths(laneCount, height int, width float64, rungs RungSet, geom Geometry) []Path {
	if laneCount < 1 {
		return nil
	}

	// Sort once and share across lanes.
	sorted := rungs.Sorted()

	paths := make([]Path, laneCount)
	for lane := range laneCount {
		paths[lane] = tracePath(lane, laneCount, height, width, sorted, geom.normalized())
	}
	return paths
}

// CalculatePath traces a single lane from the top rail to the bottom rail.
// It is a pure function of its inputs.
func CalculatePath(startLane, laneCount, height int, width float64, rungs RungSet, geom Geometry) Path {
	return tracePath(startLane, laneCount, height, width, rungs.Sorted(), geom.normalized())
}

// tracePath walks rungs that are already sorted by level.
func tracePath(startLane, laneCount, height int, width float64, sorted RungSet, geom Geometry) Path {
	pitch := 0.0
	if laneCount > 1 {
		pitch = width / float64(laneCount-1)
	}
	x := func(col int) float64 { return float64(col) * pitch }
	pad := float64(geom.Padding)

	col := startLane
	currentY := geom.Padding
	points := []Point{
		{X: x(col), Y: 0},
		{X: x(col), Y: pad},
	}

	for _, r := range sorted {
		if r.Level <= currentY {
			continue
		}

		y := float64(r.Level)
		switch r.LeftCol {
		case col:
			points = append(points, Point{X: x(col), Y: y})
			col++
		case col - 1:
			points = append(points, Point{X: x(col), Y: y})
			col--
		default:
			continue
		}
		points = append(points, Point{X: x(col), Y: y})
		currentY = r.Level
	}

	points = append(points,
		Point{X: x(col), Y: float64(height) + pad},
		Point{X: x(col), Y: float64(height) + 2*pad},
	)

	return Path{Points: points, EndIndex: col}
}

// Outcomes maps each starting lane to the lane its path ends in.
func Outcomes(paths []Path) []int {
	ends := make([]int, len(paths))
	for i, p := range paths {
		ends[i] = p.EndIndex
	}
	return ends
}

// Crossings counts the rungs a path crossed.
func Crossings(p Path) int {
	n := 0
	for i := 1; i < len(p.Points); i++ {
		if p.Points[i].Y == p.Points[i-1].Y && p.Points[i].X != p.Points[i-1].X {
			n++
		}
	}
	return n
}

// IsPermutation reports whether ends holds every value in [0, len(ends))
// exactly once.
func IsPermutation(ends []int) bool {
	seen := make([]bool, len(ends))
	for _, e := range ends {
		if e < 0 || e >= len(ends) || seen[e] {
			return false
		}
		seen[e] = true
	}
	return true
}
