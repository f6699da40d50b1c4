package report

import (
	"fmt"
	"io"

	"github.com/vovakirdan/tui-ladder/internal/ladder"
	"github.com/vovakirdan/tui-ladder/internal/registry"
)

// Plain writes one tab-separated line per lane with no styling.
type Plain struct{}

func init() {
	registry.Register("plain", func() registry.Formatter {
		return Plain{}
	})
}

// ID returns the format identifier.
func (Plain) ID() string { return "plain" }

// Title returns the display name.
func (Plain) Title() string { return "Tab-separated lines, one per lane" }

// Write renders the draw.
func (Plain) Write(w io.Writer, d *ladder.Draw, id string) error {
	if _, err := fmt.Fprintf(w, "# %s\n", Summary(d, id)); err != nil {
		return err
	}
	for _, a := range d.Assignments() {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", a.Lane+1, a.Participant, a.EndLane+1, a.Result); err != nil {
			return err
		}
	}
	return nil
}
