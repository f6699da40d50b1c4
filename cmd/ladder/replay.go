package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ladder/internal/ladder"
	"github.com/vovakirdan/tui-ladder/internal/storage"
)

// errReplayMismatch means regenerating a saved draw gave a different ladder.
var errReplayMismatch = errors.New("replay does not match the journal")

var flagReplayFormat string

var replayCmd = &cobra.Command{
	Use:   "replay <draw-id>",
	Short: "Regenerate a saved draw from its seed",
	Long: `Load a draw from the journal, regenerate it from its seed and
dimensions, check that the rungs and outcomes are identical to what was
recorded, and print it again.

Examples:
  ladder history
  ladder replay 0b9f6c1e-2f0a-4c55-9a57-4e3c3f7f2d11
  ladder replay 0b9f6c1e-2f0a-4c55-9a57-4e3c3f7f2d11 --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVarP(&flagReplayFormat, "format", "f", "", "Output format (default: table on a terminal, plain otherwise)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	id := args[0]

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.LoadDraw(id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no saved draw %q (run 'ladder history' to list them)", id)
	}
	if err != nil {
		return err
	}

	formatter, err := resolveFormat(flagReplayFormat, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	d, err := ladder.NewDraw(rec.Params())
	if err != nil {
		return fmt.Errorf("cannot regenerate draw %s: %w", id, err)
	}
	if err := verifyReplay(rec, d); err != nil {
		return err
	}
	logger.Debug("replay matches journal", "id", id, "seed", d.Seed, "rungs", len(d.Rungs))

	return formatter.Write(cmd.OutOrStdout(), d, id)
}

// verifyReplay checks a regenerated draw against the recorded one.
func verifyReplay(rec *storage.DrawRecord, d *ladder.Draw) error {
	if err := rec.Rungs.Validate(len(rec.Participants)); err != nil {
		return fmt.Errorf("%w: recorded rungs are invalid: %v", errReplayMismatch, err)
	}
	if !slices.Equal(rec.Rungs.Sorted(), d.Rungs.Sorted()) {
		return fmt.Errorf("%w: %d recorded rungs, %d regenerated", errReplayMismatch, len(rec.Rungs), len(d.Rungs))
	}
	if ends := ladder.Outcomes(d.Paths); !slices.Equal(rec.Ends, ends) {
		return fmt.Errorf("%w: recorded outcomes %v, regenerated %v", errReplayMismatch, rec.Ends, ends)
	}
	return nil
}
