package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ladder/internal/storage"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <draw-id>",
	Short: "Remove a saved draw",
	Long: `Remove a draw, its lanes and its rungs from the journal.

Examples:
  ladder delete 0b9f6c1e-2f0a-4c55-9a57-4e3c3f7f2d11`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteDraw(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no saved draw %q", id)
		}
		return err
	}

	loggerFromContext(cmd.Context()).Info("draw deleted", "id", id)
	return nil
}
