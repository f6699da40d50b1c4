package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-ladder/internal/config"
	"github.com/vovakirdan/tui-ladder/internal/ladder"
	"github.com/vovakirdan/tui-ladder/internal/registry"
	"github.com/vovakirdan/tui-ladder/internal/storage"
)

// drawOptions are the flags of one draw invocation.
type drawOptions struct {
	participants []string
	results      []string
	lanes        int
	rungs        int
	complexity   string
	format       string
	save         bool
}

// newDrawCmd builds the draw command. When journal is non-nil every draw is
// recorded in it; otherwise --save opens the journal at --db.
func newDrawCmd(journal *storage.Store, seed *int64) *cobra.Command {
	opts := &drawOptions{}

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Generate a ladder and print who gets what",
		Long: `Generate a random ladder and trace every lane to its result.

Participants and results are matched by position: the first -p starts in
lane 1, the first -r sits under lane 1. Without names the configured
defaults are used, or numbered players when --lanes is given.

Complexity presets:
  low    - Fewest rungs allowed
  normal - Configured default
  high   - A quarter of the way to the maximum
  max    - As many rungs as allowed

Examples:
  ladder draw
  ladder draw -p Ann -p Bob -p Cid -r coffee -r tea -r water
  ladder draw --lanes 8 --complexity high
  ladder draw --rungs 12 --seed 42 --format yaml
  ladder draw -p Ann -p Bob -r win -r lose --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDraw(cmd, opts, journal, *seed)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&opts.participants, "participant", "p", nil, "Participant name, once per lane")
	f.StringArrayVarP(&opts.results, "result", "r", nil, "Result label, once per lane")
	f.IntVar(&opts.lanes, "lanes", 0, "Number of lanes when names are not given")
	f.IntVar(&opts.rungs, "rungs", 0, "Number of rungs (default from config)")
	f.StringVar(&opts.complexity, "complexity", "", "Rung density preset: low, normal, high, max")
	f.StringVarP(&opts.format, "format", "f", "", "Output format (default: table on a terminal, plain otherwise)")
	if journal == nil {
		f.BoolVar(&opts.save, "save", false, "Record the draw in the journal")
	}

	return cmd
}

func runDraw(cmd *cobra.Command, opts *drawOptions, journal *storage.Store, seed int64) error {
	logger := loggerFromContext(cmd.Context())

	participants, results, err := resolveLabels(opts)
	if err != nil {
		return err
	}
	rungs, err := resolveRungs(cmd, opts, logger)
	if err != nil {
		return err
	}

	formatter, err := resolveFormat(opts.format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	d, err := ladder.NewDraw(ladder.DrawParams{
		Participants: participants,
		Results:      results,
		RungCount:    rungs,
		Seed:         seed,
		Width:        cfg.Geometry.Width,
		MinHeight:    cfg.Geometry.MinHeight,
		MaxLanes:     cfg.Game.MaxLanes,
		Geometry:     cfg.Geometry.Ladder(),
	})
	if err != nil {
		return err
	}

	logger.Debug("draw generated",
		"seed", d.Seed,
		"lanes", d.Lanes(),
		"height", d.Height,
		"requested", d.Requested,
		"placed", len(d.Rungs),
	)
	if d.Shortfall() > 0 {
		logger.Warn("not every rung fit", "requested", d.Requested, "placed", len(d.Rungs))
	}

	var id string
	switch {
	case journal != nil:
		id = saveDraw(logger, journal, d)
	case opts.save:
		store, err := storage.Open(flagDBPath)
		if err != nil {
			// Best-effort: the draw is still printed
			logger.Warn("could not open draw journal", "error", err)
			break
		}
		defer store.Close()
		id = saveDraw(logger, store, d)
	}

	return formatter.Write(cmd.OutOrStdout(), d, id)
}

// saveDraw records d and returns its ID, or "" if saving failed.
func saveDraw(logger *log.Logger, store *storage.Store, d *ladder.Draw) string {
	id, err := store.SaveDraw(d)
	if err != nil {
		logger.Warn("could not save draw", "error", err)
		return ""
	}
	logger.Debug("draw saved", "id", id)
	return id
}

// resolveLabels picks participant and result labels from the flags, falling
// back to numbered or configured defaults.
func resolveLabels(opts *drawOptions) ([]string, []string, error) {
	participants := opts.participants
	switch {
	case len(participants) > 0:
		if opts.lanes > 0 && opts.lanes != len(participants) {
			return nil, nil, fmt.Errorf("--lanes %d does not match %d participants", opts.lanes, len(participants))
		}
	case len(opts.results) > 0 && opts.lanes == 0:
		participants = numbered("Player", len(opts.results))
	case opts.lanes > 0:
		participants = numbered("Player", opts.lanes)
	default:
		participants = cfg.Game.Participants
	}

	results := opts.results
	if len(results) == 0 {
		if len(cfg.Game.Results) == len(participants) {
			results = cfg.Game.Results
		} else {
			results = numbered("Result", len(participants))
		}
	}

	return participants, results, nil
}

// resolveRungs returns the rung count from --rungs or the complexity preset.
func resolveRungs(cmd *cobra.Command, opts *drawOptions, logger *log.Logger) (int, error) {
	preset, err := config.ParseComplexity(opts.complexity)
	if err != nil {
		return 0, err
	}

	if !cmd.Flags().Changed("rungs") {
		return cfg.RungsForPreset(preset), nil
	}
	if preset != "" {
		return 0, errors.New("use either --rungs or --complexity, not both")
	}

	n := cfg.ClampRungs(opts.rungs)
	if n != opts.rungs {
		logger.Warn("rung count out of range", "requested", opts.rungs, "using", n)
	}
	return n, nil
}

// resolveFormat returns the requested formatter, or the default for w.
func resolveFormat(name string, w io.Writer) (registry.Formatter, error) {
	if name == "" {
		name = "plain"
		if isTerminal(w) {
			name = "table"
		}
	}
	if !registry.Exists(name) {
		return nil, fmt.Errorf("unknown format %q (run 'ladder formats' to list them)", name)
	}
	return registry.Create(name)
}

// isTerminal reports whether w is an interactive terminal, local or remote.
func isTerminal(w io.Writer) bool {
	switch t := w.(type) {
	case *os.File:
		return term.IsTerminal(int(t.Fd()))
	case ssh.Session:
		_, _, ok := t.Pty()
		return ok
	}
	return false
}

func numbered(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %d", prefix, i+1)
	}
	return out
}
