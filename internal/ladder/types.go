// Package ladder implements the ladder lottery game: random rung layout
// generation and the deterministic descent traced from every starting lane.
// It has no dependencies on the CLI, storage or terminal layers so the
// game logic stays pure and testable.
package ladder

import (
	"fmt"
	"sort"
)

// Geometry holds the vertical layout constants shared by sizing, generation
// and tracing. Passing it explicitly keeps the generator and the code that
// sizes the ladder agreeing on the rung spacing.
type Geometry struct {
	Spacing int // Vertical distance between rung levels
	Padding int // Distance from the top/bottom rails to the first/last drawable point
}

// DefaultGeometry returns the standard 40-unit spacing with 20-unit rails.
func DefaultGeometry() Geometry {
	return Geometry{
		Spacing: 40,
		Padding: 20,
	}
}

// normalized replaces non-positive spacing with the default so level
// enumeration always terminates.
func (g Geometry) normalized() Geometry {
	if g.Spacing <= 0 {
		g.Spacing = DefaultGeometry().Spacing
	}
	if g.Padding < 0 {
		g.Padding = 0
	}
	return g
}

// Rung is a horizontal connector between lane LeftCol and lane LeftCol+1
// at vertical position Level.
type Rung struct {
	Level   int `yaml:"level"`
	LeftCol int `yaml:"left_col"`
}

// RungSet is a ladder layout. No two rungs on the same level may share or
// neighbour a LeftCol, so every lane meets at most one rung per level.
type RungSet []Rung

// Sorted returns a copy ordered by level, then by column.
func (rs RungSet) Sorted() RungSet {
	out := make(RungSet, len(rs))
	copy(out, rs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		return out[i].LeftCol < out[j].LeftCol
	})
	return out
}

// Validate reports the first rung that breaks the layout rules for a
// ladder with laneCount lanes. Generated sets always pass; this exists for
// rung sets read back from storage.
func (rs RungSet) Validate(laneCount int) error {
	occupied := make(map[slot]bool, len(rs))
	for _, r := range rs.Sorted() {
		if r.LeftCol < 0 || r.LeftCol > laneCount-2 {
			return fmt.Errorf("ladder: rung at level %d has column %d outside [0, %d]", r.Level, r.LeftCol, laneCount-2)
		}
		if occupied[slot{r.Level, r.LeftCol}] {
			return fmt.Errorf("ladder: duplicate rung at level %d column %d", r.Level, r.LeftCol)
		}
		if occupied[slot{r.Level, r.LeftCol - 1}] || occupied[slot{r.Level, r.LeftCol + 1}] {
			return fmt.Errorf("ladder: adjacent rungs at level %d around column %d", r.Level, r.LeftCol)
		}
		occupied[slot{r.Level, r.LeftCol}] = true
	}
	return nil
}

// slot identifies a candidate rung position.
type slot struct {
	level   int
	leftCol int
}

// Point is a 2-D coordinate on a path polyline.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Path is the descent of one starting lane: the polyline from the top rail
// to the bottom rail and the lane it ends in.
type Path struct {
	Points   []Point `yaml:"points"`
	EndIndex int     `yaml:"end_index"`
}
