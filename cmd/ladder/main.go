// ladder draws ghost-leg ladders: each participant starts at the top of a
// lane, follows every rung they meet, and ends at one result.
//
// Usage:
//
//	ladder draw               - Generate a ladder and print who gets what
//	ladder replay <id>        - Regenerate a saved draw from its seed
//	ladder history            - List saved draws
//	ladder delete <id>        - Remove a saved draw
//	ladder fairness           - Simulate many draws and show the outcome spread
//	ladder formats            - List output formats
//	ladder serve              - Answer draws over SSH
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible draws
//	--db <path>     - Set journal path (default: ~/.ladder/draws.db)
//	--config <path> - Use a custom config YAML
//	-v, --verbose   - Debug logging
package main

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ladder/internal/config"

	// Import formats to register them
	_ "github.com/vovakirdan/tui-ladder/internal/report"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagVerbose bool

	// cfg is loaded once before any command runs.
	cfg = config.DefaultConfig()
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ladder",
	Short: "Ladder - draw lots with a ghost-leg ladder",
	Long: `Ladder assigns results to participants with a randomly generated
ghost-leg ladder. Every participant walks down their lane and crosses
every rung they meet; the lane they end on decides their result.

Available commands:
  draw      - Generate a ladder and print the assignments
  replay    - Regenerate a saved draw from its seed
  history   - List saved draws
  delete    - Remove a saved draw
  fairness  - Simulate many draws and show the outcome spread
  formats   - List output formats
  serve     - Answer draws over SSH

Examples:
  ladder draw -p Ann -p Bob -p Cid -r coffee -r tea -r water
  ladder draw --lanes 6 --complexity high --save
  ladder replay 1f0c...
  ladder fairness --lanes 5 --rungs 10
  ladder serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ladder/draws.db", "Path to draw journal database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")

	// Add subcommands
	rootCmd.AddCommand(newDrawCmd(nil, &flagSeed))
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(fairnessCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup attaches the logger and loads the configuration.
func setup(cmd *cobra.Command, _ []string) error {
	level := charmlog.InfoLevel
	if flagVerbose {
		level = charmlog.DebugLevel
	}
	logger := newLogger(os.Stderr, level)
	cmd.SetContext(withLogger(cmd.Context(), logger))

	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg = loaded
	logger.Debug("config loaded",
		"path", flagConfig,
		"spacing", cfg.Geometry.Spacing,
		"rungs", cfg.Game.DefaultRungs,
	)
	return nil
}
