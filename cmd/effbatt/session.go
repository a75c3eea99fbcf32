package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nao1215/effbatt/internal/config"
	"github.com/nao1215/effbatt/internal/database"
	"github.com/nao1215/effbatt/internal/lock"
	effbattlog "github.com/nao1215/effbatt/internal/log"
	"github.com/nao1215/effbatt/internal/model"
	"github.com/nao1215/effbatt/internal/report"
	"github.com/spf13/cobra"
)

// isoLayout is the layout of dates given on the command line.
const isoLayout = "2006-01-02"

// session bundles what a command needs: configuration, logger and store.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *database.Store
	lock   *lock.Lock
	cmd    *cobra.Command
}

// buildConfig loads the configuration and applies the persistent flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if dbDir, err := cmd.Flags().GetString("db-dir"); err != nil {
		return nil, err
	} else if dbDir != "" {
		cfg.DBDir = dbDir
	}
	if cfg.Verbose, err = cmd.Flags().GetBool("verbose"); err != nil {
		return nil, err
	}
	if cfg.JSONOutput, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownOutput, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// openSession opens the database named by the configuration.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := effbattlog.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	store, err := database.Open(cmd.Context(), cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Debug("database opened", "path", store.Path())

	return &session{
		cfg:    cfg,
		logger: logger,
		store:  store,
		lock:   lock.ForDir(cfg.DBDir),
		cmd:    cmd,
	}, nil
}

// runWithSession opens a session, runs fn and closes the session.
// The context is cancelled on SIGINT and SIGTERM.
func runWithSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.store.Close(); err != nil {
			s.logger.Error("failed to close database", "error", err)
		}
	}()
	return fn(ctx, s)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadState returns the saved state.
func (s *session) loadState(ctx context.Context) (*model.State, error) {
	return s.store.LoadState(ctx)
}

// mutate loads the state, applies fn and saves the result while holding the
// database lock. Nothing is saved when fn fails.
func (s *session) mutate(ctx context.Context, fn func(state *model.State) error) error {
	return s.lock.WithLock(ctx, func() error {
		state, err := s.store.LoadState(ctx)
		if err != nil {
			return err
		}
		if err := fn(state); err != nil {
			return err
		}
		return s.store.SaveState(ctx, state)
	})
}

// writer returns the report writer selected by --json and --markdown.
func (s *session) writer() report.Writer {
	out := s.cmd.OutOrStdout()
	switch {
	case s.cfg.JSONOutput:
		return report.NewJSONWriter(out, report.WithPrettyPrint())
	case s.cfg.MarkdownOutput:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewSimpleWriter(out, report.WithVerbose(s.cfg.Verbose))
	}
}

// printf writes to the command output.
func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// warn prints warning lines to the error output.
func (s *session) warn(lines ...string) {
	for _, line := range lines {
		fmt.Fprintf(s.cmd.ErrOrStderr(), "warning: %s\n", line)
	}
}

// errIndex is returned for site and vehicle positions that are not positive integers.
var errIndex = errors.New("positions are numbered from 1")

// parseIndex converts a one-based position into an index.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", errIndex, s)
	}
	return n - 1, nil
}

// indexFlag reads a one-based position flag and returns the index.
func indexFlag(cmd *cobra.Command, name string) (int, error) {
	n, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: --%s %d", errIndex, name, n)
	}
	return n - 1, nil
}

// changedString returns a string flag and whether it was given on the command line.
func changedString(cmd *cobra.Command, name string) (string, bool, error) {
	if !cmd.Flags().Changed(name) {
		return "", false, nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// parseDate accepts an ISO date or "today".
func parseDate(s string, now time.Time) (string, error) {
	if s == "today" {
		return now.Format(isoLayout), nil
	}
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return t.Format(isoLayout), nil
}
