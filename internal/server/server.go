// Package server provides a non-interactive SSH endpoint via Wish.
// Each session runs one command built by the caller with the session's
// arguments and writes the command's output back to the session.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ladder/internal/storage"
)

// Config holds configuration for the SSH server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.ladder/host_key.
	HostKeyPath string

	// DBPath is the path to the draw journal. Empty disables journaling.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:     ":23235",
		DBPath:      "~/.ladder/draws.db",
		IdleTimeout: 10 * time.Minute,
	}
}

// CommandFactory builds a fresh command for one session. store is nil when
// the journal could not be opened.
type CommandFactory func(store *storage.Store) *cobra.Command

// Server wraps a Wish SSH server that answers every session with a draw.
type Server struct {
	config     Config
	server     *ssh.Server
	store      *storage.Store
	logger     *log.Logger
	newCommand CommandFactory
}

// New creates a new SSH server with the given configuration.
func New(cfg Config, newCommand CommandFactory) (*Server, error) {
	if newCommand == nil {
		return nil, errors.New("server: command factory is required")
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ladder-ssh",
	})

	var store *storage.Store
	if cfg.DBPath != "" {
		s, err := storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open draw journal", "error", err)
			// Continue without storage
		} else {
			store = s
		}
	}

	srv := &Server{
		config:     cfg,
		store:      store,
		logger:     logger,
		newCommand: newCommand,
	}

	hostKeyPath, err := resolveHostKeyPath(cfg.HostKeyPath)
	if err != nil {
		srv.closeStore()
		return nil, err
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			srv.commandMiddleware,
			srv.loggingMiddleware,
		),
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("server: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// resolveHostKeyPath defaults the key to ~/.ladder/host_key and makes sure
// its directory exists.
func resolveHostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("server: cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".ladder", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("server: cannot create host key directory: %w", err)
	}
	return path, nil
}

// commandMiddleware runs the session command and reports its exit status.
// It never calls next: the session ends with the command.
func (s *Server) commandMiddleware(_ ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		code := s.runCommand(sess.Context(), sess.Command(), sess, sess.Stderr())
		if err := sess.Exit(code); err != nil {
			s.logger.Debug("could not send exit status", "user", sess.User(), "error", err)
		}
	}
}

// runCommand executes one fresh command and returns the exit code to
// report. Errors go to errOut so the client sees them.
func (s *Server) runCommand(ctx context.Context, args []string, out, errOut io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}

	cmd := s.newCommand(s.store)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		s.logger.Warn("command failed", "args", args, "error", err)
		return 1
	}
	return 0
}

// loggingMiddleware logs SSH session events.
func (s *Server) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"args", sess.Command(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "journal", s.store != nil)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errc:
		s.closeStore()
		return fmt.Errorf("server: %w", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *Server) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
