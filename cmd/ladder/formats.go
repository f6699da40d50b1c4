package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ladder/internal/registry"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List output formats",
	Long:  `Shows the output formats draw and replay can print.`,
	Args:  cobra.NoArgs,
	Run:   runFormats,
}

func runFormats(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	formats := registry.List()

	if len(formats) == 0 {
		fmt.Fprintln(out, "No formats available.")
		return
	}

	fmt.Fprintln(out, "Available formats:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, f := range formats {
		maxIDLen = max(maxIDLen, len(f.ID))
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, f := range formats {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, f.ID, f.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'ladder draw --format <id>' to use one.")
}
