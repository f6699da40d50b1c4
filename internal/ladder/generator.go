package ladder

import (
	"math/rand"
	"time"
)

// Generator produces rung layouts from its own seeded RNG.
// A Generator is not safe for concurrent use; create one per goroutine.
type Generator struct {
	rng  *rand.Rand
	geom Geometry
	seed int64
}

// NewGenerator creates a generator. A zero seed is replaced with the
// current time; Seed reports the value actually used.
func NewGenerator(seed int64, geom Geometry) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rng:  rand.New(rand.NewSource(seed)),
		geom: geom.normalized(),
		seed: seed,
	}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Geometry returns the generator's layout constants.
func (g *Generator) Geometry() Geometry {
	return g.geom
}

// Generate returns a rung layout for laneCount lanes and the given height.
// See GenerateLadder.
func (g *Generator) Generate(laneCount, height, targetRungCount int) RungSet {
	return GenerateLadder(g.rng, laneCount, height, targetRungCount, g.geom)
}

// GenerateLadder places up to targetRungCount rungs.
//
// Every (level, column) slot is enumerated, the list is shuffled with a
// Fisher-Yates shuffle and then scanned once, accepting a slot when neither
// it nor a horizontal neighbour on the same level is taken. When the
// constraint runs out of room the result simply holds fewer rungs than
// requested; this is never an error.
func GenerateLadder(rng *rand.Rand, laneCount, height, targetRungCount int, geom Geometry) RungSet {
	if laneCount < 2 || targetRungCount <= 0 {
		return RungSet{}
	}
	geom = geom.normalized()

	levels := Levels(height, geom)
	candidates := make([]slot, 0, len(levels)*(laneCount-1))
	for _, y := range levels {
		for col := 0; col < laneCount-1; col++ {
			candidates = append(candidates, slot{level: y, leftCol: col})
		}
	}

	// rand.Shuffle is an unbiased Fisher-Yates.
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	rungs := make(RungSet, 0, min(targetRungCount, len(candidates)))
	occupied := make(map[slot]bool)
	for _, c := range candidates {
		if len(rungs) >= targetRungCount {
			break
		}
		if occupied[c] ||
			occupied[slot{c.level, c.leftCol - 1}] ||
			occupied[slot{c.level, c.leftCol + 1}] {
			continue
		}
		rungs = append(rungs, Rung{Level: c.level, LeftCol: c.leftCol})
		occupied[c] = true
	}

	return rungs
}

// Levels lists the vertical positions a rung may occupy: one spacing
// below the top up to, but not including, one spacing above height.
func Levels(height int, geom Geometry) []int {
	geom = geom.normalized()

	var levels []int
	for y := geom.Spacing; y < height-geom.Spacing; y += geom.Spacing {
		levels = append(levels, y)
	}
	return levels
}

// Capacity is the largest rung count any valid layout of this size can hold:
// every level packs at most every other column.
func Capacity(laneCount, height int, geom Geometry) int {
	if laneCount < 2 {
		return 0
	}
	return len(Levels(height, geom)) * (laneCount / 2)
}
