package ladder

import (
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHeightFor(t *testing.T) {
	geom := DefaultGeometry()

	tests := []struct {
		name      string
		lanes     int
		rungs     int
		minHeight int
		want      int
	}{
		{name: "default game", lanes: 4, rungs: 30, minHeight: 400, want: 960},
		{name: "few rungs clamp to minimum", lanes: 4, rungs: 5, minHeight: 400, want: 400},
		{name: "single lane", lanes: 1, rungs: 30, minHeight: 400, want: 400},
		{name: "max complexity", lanes: 10, rungs: 400, minHeight: 400, want: 3720},
		{name: "zero min uses default", lanes: 2, rungs: 0, minHeight: 0, want: DefaultMinHeight},
		{name: "custom minimum", lanes: 3, rungs: 3, minHeight: 1000, want: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HeightFor(tt.lanes, tt.rungs, geom, tt.minHeight); got != tt.want {
				t.Errorf("HeightFor(%d, %d) = %d, want %d", tt.lanes, tt.rungs, got, tt.want)
			}
		})
	}
}

func sampleParams() DrawParams {
	return DrawParams{
		Participants: []string{"Ann", "Bob", "Cid", "Dee"},
		Results:      []string{"miss", "miss", "win", "miss"},
		RungCount:    30,
		Seed:         2024,
		Width:        600,
		MinHeight:    400,
		Geometry:     DefaultGeometry(),
	}
}

func TestNewDraw(t *testing.T) {
	d, err := NewDraw(sampleParams())
	if err != nil {
		t.Fatalf("NewDraw() failed: %v", err)
	}

	if d.Lanes() != 4 {
		t.Errorf("expected 4 lanes, got %d", d.Lanes())
	}
	if d.Height != 960 {
		t.Errorf("expected height 960, got %d", d.Height)
	}
	if len(d.Rungs) > 30 {
		t.Errorf("got %d rungs for a target of 30", len(d.Rungs))
	}
	if d.Shortfall() != 30-len(d.Rungs) {
		t.Errorf("Shortfall() = %d, want %d", d.Shortfall(), 30-len(d.Rungs))
	}
	if err := d.Rungs.Validate(d.Lanes()); err != nil {
		t.Errorf("draw has invalid rungs: %v", err)
	}
	if !IsPermutation(Outcomes(d.Paths)) {
		t.Errorf("outcomes %v are not a permutation", Outcomes(d.Paths))
	}
}

func TestDrawAssignments(t *testing.T) {
	p := sampleParams()
	d, err := NewDraw(p)
	if err != nil {
		t.Fatalf("NewDraw() failed: %v", err)
	}

	assignments := d.Assignments()
	if len(assignments) != 4 {
		t.Fatalf("expected 4 assignments, got %d", len(assignments))
	}

	var got []string
	for i, a := range assignments {
		if a.Lane != i || a.Participant != p.Participants[i] {
			t.Errorf("assignment %d has lane %d participant %q", i, a.Lane, a.Participant)
		}
		if a.Result != p.Results[a.EndLane] {
			t.Errorf("assignment %d: result %q does not match end lane %d", i, a.Result, a.EndLane)
		}
		got = append(got, a.Result)
	}

	// Every result is handed out exactly once.
	want := append([]string(nil), p.Results...)
	sort.Strings(want)
	sort.Strings(got)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("results not distributed one-to-one (-want +got):\n%s", diff)
	}
}

func TestDrawReplay(t *testing.T) {
	d1, err := NewDraw(sampleParams())
	if err != nil {
		t.Fatalf("NewDraw() failed: %v", err)
	}

	d2, err := NewDraw(d1.Params())
	if err != nil {
		t.Fatalf("NewDraw(replay) failed: %v", err)
	}

	if diff := cmp.Diff(d1, d2); diff != "" {
		t.Errorf("replayed draw differs (-first +replay):\n%s", diff)
	}
}

func TestDrawClockSeedRecorded(t *testing.T) {
	p := sampleParams()
	p.Seed = 0

	d, err := NewDraw(p)
	if err != nil {
		t.Fatalf("NewDraw() failed: %v", err)
	}
	if d.Seed == 0 {
		t.Fatal("expected the chosen seed to be recorded")
	}

	again, err := NewDraw(d.Params())
	if err != nil {
		t.Fatalf("NewDraw(replay) failed: %v", err)
	}
	if diff := cmp.Diff(d.Rungs, again.Rungs); diff != "" {
		t.Errorf("replay from recorded seed differs:\n%s", diff)
	}
}

func TestNewDrawValidation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*DrawParams)
		wantErr error
	}{
		{
			name:    "one participant",
			modify:  func(p *DrawParams) { p.Participants = p.Participants[:1]; p.Results = p.Results[:1] },
			wantErr: ErrTooFewLanes,
		},
		{
			name:    "label mismatch",
			modify:  func(p *DrawParams) { p.Results = p.Results[:3] },
			wantErr: ErrLabelMismatch,
		},
		{
			name:    "too many lanes",
			modify:  func(p *DrawParams) { p.MaxLanes = 3 },
			wantErr: ErrTooManyLanes,
		},
		{
			name:    "negative rungs",
			modify:  func(p *DrawParams) { p.RungCount = -1 },
			wantErr: ErrNegativeRungs,
		},
		{
			name:    "negative width",
			modify:  func(p *DrawParams) { p.Width = -5 },
			wantErr: ErrInvalidDrawDim,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sampleParams()
			tt.modify(&p)
			_, err := NewDraw(p)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewDraw() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewDrawDefaultWidth(t *testing.T) {
	p := sampleParams()
	p.Width = 0

	d, err := NewDraw(p)
	if err != nil {
		t.Fatalf("NewDraw() failed: %v", err)
	}
	if d.Width != DefaultWidth {
		t.Errorf("expected default width %v, got %v", DefaultWidth, d.Width)
	}
}
