package ladder

import (
	"errors"
	"fmt"
)

// Validation errors returned by NewDraw.
var (
	ErrTooFewLanes    = errors.New("ladder: at least 2 participants are required")
	ErrTooManyLanes   = errors.New("ladder: too many participants")
	ErrLabelMismatch  = errors.New("ladder: participant and result counts differ")
	ErrNegativeRungs  = errors.New("ladder: rung count must not be negative")
	ErrInvalidDrawDim = errors.New("ladder: width must be positive")
)

// DrawParams describes one game generation.
type DrawParams struct {
	Participants []string
	Results      []string
	RungCount    int
	Seed         int64 // 0 = seed from the clock
	Width        float64
	MinHeight    int
	MaxLanes     int // 0 = unlimited
	Geometry     Geometry
}

// Draw is one generated ladder with every lane already traced.
// It is immutable once created; a new game means a new Draw.
type Draw struct {
	Participants []string
	Results      []string
	Requested    int
	Seed         int64
	Height       int
	Width        float64
	Geometry     Geometry
	Rungs        RungSet
	Paths        []Path
}

// Assignment pairs a participant with the result their lane leads to.
type Assignment struct {
	Lane        int    `yaml:"lane"`
	Participant string `yaml:"participant"`
	EndLane     int    `yaml:"end_lane"`
	Result      string `yaml:"result"`
	Crossings   int    `yaml:"crossings"`
}

// NewDraw validates the labels, sizes the ladder, generates rungs and traces
// every lane. The same params and non-zero seed always give the same draw.
func NewDraw(p DrawParams) (*Draw, error) {
	lanes := len(p.Participants)
	if lanes < 2 {
		return nil, ErrTooFewLanes
	}
	if p.MaxLanes > 0 && lanes > p.MaxLanes {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyLanes, lanes, p.MaxLanes)
	}
	if len(p.Results) != lanes {
		return nil, fmt.Errorf("%w: %d participants, %d results", ErrLabelMismatch, lanes, len(p.Results))
	}
	if p.RungCount < 0 {
		return nil, ErrNegativeRungs
	}
	if p.Width < 0 {
		return nil, ErrInvalidDrawDim
	}
	if p.Width == 0 {
		p.Width = DefaultWidth
	}

	geom := p.Geometry.normalized()
	gen := NewGenerator(p.Seed, geom)
	height := HeightFor(lanes, p.RungCount, geom, p.MinHeight)
	rungs := gen.Generate(lanes, height, p.RungCount)

	return &Draw{
		Participants: append([]string(nil), p.Participants...),
		Results:      append([]string(nil), p.Results...),
		Requested:    p.RungCount,
		Seed:         gen.Seed(),
		Height:       height,
		Width:        p.Width,
		Geometry:     geom,
		Rungs:        rungs,
		Paths:        CalculateAllPaths(lanes, height, p.Width, rungs, geom),
	}, nil
}

// Lanes returns the number of lanes in the draw.
func (d *Draw) Lanes() int {
	return len(d.Participants)
}

// Shortfall is how many requested rungs the adjacency rule could not place.
func (d *Draw) Shortfall() int {
	return max(0, d.Requested-len(d.Rungs))
}

// Assignments lists, for each lane in order, who starts there and what
// they end up with.
func (d *Draw) Assignments() []Assignment {
	out := make([]Assignment, len(d.Paths))
	for lane, path := range d.Paths {
		out[lane] = Assignment{
			Lane:        lane,
			Participant: d.Participants[lane],
			EndLane:     path.EndIndex,
			Result:      d.Results[path.EndIndex],
			Crossings:   Crossings(path),
		}
	}
	return out
}

// Params returns the parameters that reproduce this draw.
func (d *Draw) Params() DrawParams {
	return DrawParams{
		Participants: d.Participants,
		Results:      d.Results,
		RungCount:    d.Requested,
		Seed:         d.Seed,
		Width:        d.Width,
		MinHeight:    d.Height,
		Geometry:     d.Geometry,
	}
}
