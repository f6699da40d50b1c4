// Package report provides the built-in output formats for a draw.
// Each format registers itself with the registry in init().
package report

import (
	"fmt"

	"github.com/vovakirdan/tui-ladder/internal/ladder"
)

// Summary is a one-line description of how the ladder was built.
func Summary(d *ladder.Draw, id string) string {
	s := fmt.Sprintf("%d lanes, %d of %d rungs placed, height %d, seed %d",
		d.Lanes(), len(d.Rungs), d.Requested, d.Height, d.Seed)
	if id != "" {
		s += ", id " + id
	}
	return s
}
