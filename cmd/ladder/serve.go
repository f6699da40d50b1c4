package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ladder/internal/server"
	"github.com/vovakirdan/tui-ladder/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer draws over SSH",
	Long: `Start an SSH server that runs a draw for every connection.

The SSH command line takes the same flags as 'ladder draw'. Every draw is
saved to the journal given by --db, so it can be replayed later.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.ladder/host_key

Examples:
  ladder serve                           # Listen on the configured address
  ladder serve --ssh :2222               # Listen on port 2222
  ladder serve --host-key ./my_host_key  # Use specific host key

Users can draw with:
  ssh localhost -p 23235 -- -p Ann -p Bob -r win -r lose`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	srvCfg := server.Config{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}
	if srvCfg.Address == "" {
		srvCfg.Address = cfg.Server.Address
	}
	if flagIdleTimeout == 0 {
		srvCfg.IdleTimeout = time.Duration(cfg.Server.IdleTimeoutMinutes) * time.Minute
	}

	srv, err := server.New(srvCfg, newSessionCmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting ladder SSH server on %s\n", srv.Addr())
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	return srv.ListenAndServe()
}

// newSessionCmd builds the command an SSH session runs: draw, with its own
// --seed because sessions do not go through the root command.
func newSessionCmd(store *storage.Store) *cobra.Command {
	seed := new(int64)
	cmd := newDrawCmd(store, seed)
	cmd.Use = "ladder"
	cmd.Flags().Int64Var(seed, "seed", 0, "RNG seed (0 = random based on time)")
	return cmd
}
