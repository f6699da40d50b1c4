package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ladder/internal/storage"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved draws",
	Long: `Display the most recent draws in the journal, newest first.

Draws are saved with 'ladder draw --save' and by the SSH server.

Examples:
  ladder history
  ladder history --limit 50`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of draws to show")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	draws, err := store.RecentDraws(flagHistoryLimit)
	if err != nil {
		return err
	}

	if len(draws) == 0 {
		fmt.Fprintln(out, "No draws saved yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'ladder draw --save' to record one.")
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-36s  %-5s  %-9s  %-20s  %s\n", "ID", "Lanes", "Rungs", "Seed", "Date")
	fmt.Fprintf(out, "  %-36s  %-5s  %-9s  %-20s  %s\n", "--", "-----", "-----", "----", "----")

	for _, d := range draws {
		rungs := fmt.Sprintf("%d/%d", d.Placed, d.Requested)
		fmt.Fprintf(out, "  %-36s  %-5d  %-9s  %-20d  %s\n",
			d.ID, d.Lanes, rungs, d.Seed, d.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d draws, %.1f lanes and %.1f rungs on average", stats.Draws, stats.AvgLanes, stats.AvgRungs)
	if stats.AvgShortfall > 0 {
		fmt.Fprintf(out, ", %.1f rungs short", stats.AvgShortfall)
	}
	fmt.Fprintln(out)
	return nil
}
