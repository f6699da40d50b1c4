package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-ladder/internal/ladder"
	"github.com/vovakirdan/tui-ladder/internal/registry"
)

// Table writes an aligned, colored table of lane assignments.
type Table struct{}

// laneColors cycles through the same palette the lanes are known by.
var laneColors = []lipgloss.Color{"14", "13", "5", "10", "11", "208", "12", "4", "201", "9"}

func init() {
	registry.Register("table", func() registry.Formatter {
		return Table{}
	})
}

// ID returns the format identifier.
func (Table) ID() string { return "table" }

// Title returns the display name.
func (Table) Title() string { return "Colored table of who gets what" }

// Write renders the draw. Styles are bound to w so color support is
// detected per destination (a terminal, a file or an SSH session).
func (Table) Write(w io.Writer, d *ladder.Draw, id string) error {
	r := lipgloss.NewRenderer(w)

	header := r.NewStyle().Bold(true).Underline(true)
	dim := r.NewStyle().Foreground(lipgloss.Color("245"))
	result := r.NewStyle().Bold(true)

	assignments := d.Assignments()
	nameW, resultW := len("Participant"), len("Result")
	for _, a := range assignments {
		nameW = max(nameW, lipgloss.Width(a.Participant))
		resultW = max(resultW, lipgloss.Width(a.Result))
	}

	var b strings.Builder
	b.WriteString(header.Render(fmt.Sprintf("%-4s  %-*s     %-*s  %s", "Lane", nameW, "Participant", resultW, "Result", "Crossings")))
	b.WriteString("\n")

	for _, a := range assignments {
		lane := r.NewStyle().Foreground(laneColors[a.Lane%len(laneColors)])
		b.WriteString(lane.Render(fmt.Sprintf("%-4d  %-*s", a.Lane+1, nameW, a.Participant)))
		b.WriteString(dim.Render("  ->  "))
		b.WriteString(result.Render(fmt.Sprintf("%-*s", resultW, a.Result)))
		b.WriteString(dim.Render(fmt.Sprintf("  %d", a.Crossings)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(Summary(d, id)))
	b.WriteString("\n")
	if short := d.Shortfall(); short > 0 {
		b.WriteString(dim.Render(fmt.Sprintf("%d requested rungs did not fit", short)))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
