// Package fairness measures how evenly random ladders distribute starting
// lanes over end lanes. It runs many independent draws in parallel and
// collects a start x end histogram.
package fairness

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-ladder/internal/ladder"
)

// Params configures a simulation run.
type Params struct {
	Lanes     int
	RungCount int
	Trials    int
	Workers   int   // 0 = GOMAXPROCS
	Seed      int64 // base seed; worker i uses Seed+i
	MinHeight int
	Geometry  ladder.Geometry
}

// Report is the outcome of a simulation.
type Report struct {
	Lanes     int
	RungCount int
	Height    int
	Trials    int

	// Counts[start][end] is how often start ended in end.
	Counts [][]int

	// AvgRungs is the mean number of rungs actually placed per trial.
	AvgRungs float64

	// OddCrossings is the share of paths that crossed an odd number of rungs.
	OddCrossings float64
}

// Run simulates p.Trials draws. Workers each own their RNG, so the result is
// reproducible for a fixed seed and worker count.
func Run(ctx context.Context, p Params) (*Report, error) {
	if p.Lanes < 2 {
		return nil, errors.New("fairness: at least 2 lanes are required")
	}
	if p.Trials <= 0 {
		return nil, errors.New("fairness: trials must be positive")
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, p.Trials)

	geom := p.Geometry
	height := ladder.HeightFor(p.Lanes, p.RungCount, geom, p.MinHeight)

	partials := make([]*tally, workers)
	g, gctx := errgroup.WithContext(ctx)

	for w := range workers {
		trials := p.Trials / workers
		if w < p.Trials%workers {
			trials++
		}
		rng := rand.New(rand.NewSource(p.Seed + int64(w)))
		partials[w] = newTally(p.Lanes)

		g.Go(func() error {
			return partials[w].run(gctx, rng, trials, p.Lanes, height, p.RungCount, geom)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fairness: simulation stopped: %w", err)
	}

	total := newTally(p.Lanes)
	for _, part := range partials {
		total.merge(part)
	}

	return &Report{
		Lanes:        p.Lanes,
		RungCount:    p.RungCount,
		Height:       height,
		Trials:       p.Trials,
		Counts:       total.counts,
		AvgRungs:     float64(total.rungs) / float64(p.Trials),
		OddCrossings: float64(total.odd) / float64(p.Trials*p.Lanes),
	}, nil
}

// tally accumulates one worker's results.
type tally struct {
	counts [][]int
	rungs  int
	odd    int
}

func newTally(lanes int) *tally {
	counts := make([][]int, lanes)
	for i := range counts {
		counts[i] = make([]int, lanes)
	}
	return &tally{counts: counts}
}

// checkEvery is how many trials run between context checks.
const checkEvery = 256

func (t *tally) run(ctx context.Context, rng *rand.Rand, trials, lanes, height, rungCount int, geom ladder.Geometry) error {
	for i := range trials {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		rungs := ladder.GenerateLadder(rng, lanes, height, rungCount, geom)
		paths := ladder.CalculateAllPaths(lanes, height, ladder.DefaultWidth, rungs, geom)

		t.rungs += len(rungs)
		for start, path := range paths {
			t.counts[start][path.EndIndex]++
			if ladder.Crossings(path)%2 == 1 {
				t.odd++
			}
		}
	}
	return nil
}

func (t *tally) merge(other *tally) {
	for i := range t.counts {
		for j := range t.counts[i] {
			t.counts[i][j] += other.counts[i][j]
		}
	}
	t.rungs += other.rungs
	t.odd += other.odd
}

// Probability returns the observed chance that start ends in end.
func (r *Report) Probability(start, end int) float64 {
	return float64(r.Counts[start][end]) / float64(r.Trials)
}

// MaxDeviation is the largest absolute gap between any observed probability
// and the uniform 1/lanes.
func (r *Report) MaxDeviation() float64 {
	uniform := 1 / float64(r.Lanes)
	worst := 0.0
	for i := range r.Counts {
		for j := range r.Counts[i] {
			worst = math.Max(worst, math.Abs(r.Probability(i, j)-uniform))
		}
	}
	return worst
}

// ChiSquare is Pearson's statistic of the whole histogram against the
// uniform distribution. Rows are independent, so it has lanes*(lanes-1)
// degrees of freedom.
func (r *Report) ChiSquare() float64 {
	expected := float64(r.Trials) / float64(r.Lanes)
	chi := 0.0
	for i := range r.Counts {
		for j := range r.Counts[i] {
			d := float64(r.Counts[i][j]) - expected
			chi += d * d / expected
		}
	}
	return chi
}

// StayProbability is the average chance that a lane ends where it started.
func (r *Report) StayProbability() float64 {
	stay := 0
	for i := range r.Counts {
		stay += r.Counts[i][i]
	}
	return float64(stay) / float64(r.Trials*r.Lanes)
}
