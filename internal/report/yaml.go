package report

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-ladder/internal/ladder"
	"github.com/vovakirdan/tui-ladder/internal/registry"
)

// YAML writes the complete draw, rungs included, for other programs.
type YAML struct{}

// yamlDraw is the serialized form of a draw.
type yamlDraw struct {
	ID          string              `yaml:"id,omitempty"`
	Seed        int64               `yaml:"seed"`
	Lanes       int                 `yaml:"lanes"`
	Height      int                 `yaml:"height"`
	Width       float64             `yaml:"width"`
	Spacing     int                 `yaml:"spacing"`
	Padding     int                 `yaml:"padding"`
	Requested   int                 `yaml:"requested_rungs"`
	Placed      int                 `yaml:"placed_rungs"`
	Assignments []ladder.Assignment `yaml:"assignments"`
	Rungs       ladder.RungSet      `yaml:"rungs"`
}

func init() {
	registry.Register("yaml", func() registry.Formatter {
		return YAML{}
	})
}

// ID returns the format identifier.
func (YAML) ID() string { return "yaml" }

// Title returns the display name.
func (YAML) Title() string { return "YAML document with assignments and rungs" }

// Write renders the draw.
func (YAML) Write(w io.Writer, d *ladder.Draw, id string) error {
	doc := yamlDraw{
		ID:          id,
		Seed:        d.Seed,
		Lanes:       d.Lanes(),
		Height:      d.Height,
		Width:       d.Width,
		Spacing:     d.Geometry.Spacing,
		Padding:     d.Geometry.Padding,
		Requested:   d.Requested,
		Placed:      len(d.Rungs),
		Assignments: d.Assignments(),
		Rungs:       d.Rungs.Sorted(),
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
