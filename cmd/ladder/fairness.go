package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ladder/internal/fairness"
)

var (
	flagFairLanes   int
	flagFairRungs   int
	flagFairTrials  int
	flagFairWorkers int
)

var fairnessCmd = &cobra.Command{
	Use:   "fairness",
	Short: "Simulate many draws and show the outcome spread",
	Long: `Generate many ladders with the same dimensions and count where each
starting lane ends. A fair ladder sends every lane to every result equally
often; few rungs keep lanes close to where they started.

The table shows, for each start lane, the percentage of draws ending in
each end lane.

Examples:
  ladder fairness
  ladder fairness --lanes 6 --rungs 5
  ladder fairness --lanes 4 --rungs 100 --trials 100000 --workers 8
  ladder fairness --seed 7`,
	Args: cobra.NoArgs,
	RunE: runFairness,
}

func init() {
	fairnessCmd.Flags().IntVar(&flagFairLanes, "lanes", 0, "Number of lanes (default: configured participants)")
	fairnessCmd.Flags().IntVar(&flagFairRungs, "rungs", 0, "Rungs per draw (default from config)")
	fairnessCmd.Flags().IntVar(&flagFairTrials, "trials", 0, "Number of draws (default from config)")
	fairnessCmd.Flags().IntVar(&flagFairWorkers, "workers", 0, "Parallel workers (default from config)")
}

func runFairness(cmd *cobra.Command, _ []string) error {
	logger := loggerFromContext(cmd.Context())

	p := fairness.Params{
		Lanes:     flagFairLanes,
		RungCount: flagFairRungs,
		Trials:    flagFairTrials,
		Workers:   flagFairWorkers,
		Seed:      flagSeed,
		MinHeight: cfg.Geometry.MinHeight,
		Geometry:  cfg.Geometry.Ladder(),
	}
	if p.Lanes == 0 {
		p.Lanes = len(cfg.Game.Participants)
	}
	if !cmd.Flags().Changed("rungs") {
		p.RungCount = cfg.Game.DefaultRungs
	}
	if p.Trials == 0 {
		p.Trials = cfg.Fairness.Trials
	}
	if p.Workers == 0 {
		p.Workers = cfg.Fairness.Workers
	}
	if p.Seed == 0 {
		p.Seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Info("simulating", "lanes", p.Lanes, "rungs", p.RungCount, "trials", p.Trials, "workers", p.Workers, "seed", p.Seed)
	start := time.Now()

	r, err := fairness.Run(ctx, p)
	if err != nil {
		return err
	}
	logger.Infof("simulated %d draws (%s)", r.Trials, time.Since(start).Round(time.Millisecond))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderHistogram(r))
	fmt.Fprintf(out, "height %d, %.1f of %d rungs placed on average\n", r.Height, r.AvgRungs, r.RungCount)
	fmt.Fprintf(out, "max deviation from uniform: %.2f%%\n", 100*r.MaxDeviation())
	fmt.Fprintf(out, "chi-square: %.1f (%d degrees of freedom)\n", r.ChiSquare(), r.Lanes*(r.Lanes-1))
	fmt.Fprintf(out, "stay in own lane: %.2f%% (uniform %.2f%%)\n", 100*r.StayProbability(), 100/float64(r.Lanes))
	fmt.Fprintf(out, "paths crossing an odd number of rungs: %.2f%%\n", 100*r.OddCrossings)
	return nil
}

// renderHistogram draws the start x end percentage table.
func renderHistogram(r *fairness.Report) string {
	headers := make([]string, 0, r.Lanes+1)
	headers = append(headers, "start \\ end")
	for j := range r.Lanes {
		headers = append(headers, strconv.Itoa(j+1))
	}

	rows := make([][]string, r.Lanes)
	for i := range r.Lanes {
		row := make([]string, 0, r.Lanes+1)
		row = append(row, strconv.Itoa(i+1))
		for j := range r.Lanes {
			row = append(row, fmt.Sprintf("%.1f%%", 100*r.Probability(i, j)))
		}
		rows[i] = row
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	diagonal := cell.Foreground(lipgloss.Color("11"))

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 0:
				return header
			case row == col-1:
				return diagonal
			default:
				return cell
			}
		}).
		String()
}
