package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-ladder/internal/ladder"
	"github.com/vovakirdan/tui-ladder/internal/registry"
)

func sampleDraw(t *testing.T) *ladder.Draw {
	t.Helper()
	d, err := ladder.NewDraw(ladder.DrawParams{
		Participants: []string{"Ann", "Bob", "Cid", "Dee"},
		Results:      []string{"miss", "miss", "win", "miss"},
		RungCount:    20,
		Seed:         8,
		Width:        600,
		Geometry:     ladder.DefaultGeometry(),
	})
	if err != nil {
		t.Fatalf("NewDraw() failed: %v", err)
	}
	return d
}

func TestBuiltinFormatsRegistered(t *testing.T) {
	for _, id := range []string{"table", "plain", "yaml"} {
		f, err := registry.Create(id)
		if err != nil {
			t.Errorf("format %q not registered: %v", id, err)
			continue
		}
		if f.ID() != id {
			t.Errorf("format %q reports ID %q", id, f.ID())
		}
	}
}

func TestPlainOutput(t *testing.T) {
	d := sampleDraw(t)

	var buf bytes.Buffer
	if err := (Plain{}).Write(&buf, d, "abc"); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header + 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "# 4 lanes") || !strings.HasSuffix(lines[0], "id abc") {
		t.Errorf("unexpected header %q", lines[0])
	}

	for i, a := range d.Assignments() {
		want := fmt.Sprintf("%d\t%s\t%d\t%s", i+1, a.Participant, a.EndLane+1, a.Result)
		if lines[i+1] != want {
			t.Errorf("line %d = %q, want %q", i+1, lines[i+1], want)
		}
	}
}

func TestTableOutput(t *testing.T) {
	d := sampleDraw(t)

	var buf bytes.Buffer
	if err := (Table{}).Write(&buf, d, ""); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Participant", "Result", "Ann", "Dee", "win", Summary(d, "")} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestYAMLOutputRoundTrip(t *testing.T) {
	d := sampleDraw(t)

	var buf bytes.Buffer
	if err := (YAML{}).Write(&buf, d, "id-1"); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	var doc yamlDraw
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, buf.String())
	}

	if doc.ID != "id-1" || doc.Seed != d.Seed || doc.Lanes != 4 {
		t.Errorf("unexpected header %+v", doc)
	}
	if doc.Placed != len(d.Rungs) || len(doc.Rungs) != len(d.Rungs) {
		t.Errorf("rung count mismatch: placed=%d rungs=%d want %d", doc.Placed, len(doc.Rungs), len(d.Rungs))
	}
	if err := doc.Rungs.Validate(doc.Lanes); err != nil {
		t.Errorf("serialized rungs invalid: %v", err)
	}

	// The serialized rungs trace to the same outcomes.
	paths := ladder.CalculateAllPaths(doc.Lanes, doc.Height, doc.Width, doc.Rungs, ladder.Geometry{Spacing: doc.Spacing, Padding: doc.Padding})
	for i, a := range doc.Assignments {
		if paths[i].EndIndex != a.EndLane {
			t.Errorf("lane %d: serialized end %d, traced %d", i, a.EndLane, paths[i].EndIndex)
		}
	}
}

func TestTableShortfallNote(t *testing.T) {
	d := sampleDraw(t)

	var buf bytes.Buffer
	if err := (Table{}).Write(&buf, d, ""); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if d.Shortfall() == 0 && strings.Contains(buf.String(), "did not fit") {
		t.Errorf("unexpected shortfall note:\n%s", buf.String())
	}

	short := *d
	short.Requested = len(d.Rungs) + 7
	buf.Reset()
	if err := (Table{}).Write(&buf, &short, ""); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "7 requested rungs did not fit") {
		t.Errorf("expected shortfall note:\n%s", buf.String())
	}
}
