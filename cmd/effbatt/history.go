package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nao1215/effbatt/internal/database"
	"github.com/nao1215/effbatt/internal/export"
	"github.com/nao1215/effbatt/internal/report"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, share and delete generated reports",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the generated reports, newest first",
		Args:  cobra.NoArgs,
		RunE:  runHistoryListCmd,
	}
	list.Flags().Bool("shared", false, "Only list shared reports")
	list.Flags().Bool("unshared", false, "Only list reports not shared yet")
	list.MarkFlagsMutuallyExclusive("shared", "unshared")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the document of a report",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShowCmd,
	}

	del := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a report, or every report with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHistoryDeleteCmd,
	}
	del.Flags().Bool("all", false, "Delete the whole history")

	share := &cobra.Command{
		Use:   "share [id...]",
		Short: "Write reports to a directory and mark them shared",
		Long: `Share writes the documents of the given reports, or of every report not
shared yet with --pending, into --dir. Existing files are kept: a name already
taken gets a " (n)" suffix unless --overwrite is set. Reports rendered without
a form template are written as .md files.`,
		Example: `  effbatt history share --pending --dir ~/reports
  effbatt history share 12345678901_6M_2025-03-10 --dir .`,
		RunE: runHistoryShareCmd,
	}
	share.Flags().String("dir", "", "Destination directory")
	share.Flags().Bool("pending", false, "Share every report not shared yet")
	share.Flags().Bool("overwrite", false, "Replace files with the same name")
	_ = share.MarkFlagRequired("dir")

	pending := &cobra.Command{
		Use:   "pending",
		Short: "Print how many reports are not shared yet",
		Args:  cobra.NoArgs,
		RunE:  runHistoryPendingCmd,
	}

	cmd.AddCommand(list, show, del, share, pending)
	return cmd
}

func runHistoryListCmd(cmd *cobra.Command, _ []string) error {
	shared, err := cmd.Flags().GetBool("shared")
	if err != nil {
		return err
	}
	unshared, err := cmd.Flags().GetBool("unshared")
	if err != nil {
		return err
	}
	filter := database.AllReports
	switch {
	case shared:
		filter = database.SharedOnly
	case unshared:
		filter = database.UnsharedOnly
	}

	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		reports, err := s.store.ListReports(ctx, filter)
		if err != nil {
			return err
		}
		entries := make([]report.HistoryEntry, 0, len(reports))
		for _, r := range reports {
			size, err := s.store.DocumentSize(ctx, r.ID)
			if err != nil {
				return err
			}
			entries = append(entries, report.HistoryEntry{Report: r, Size: size})
		}
		_, err = s.writer().WriteHistory(entries)
		return err
	})
}

func runHistoryShowCmd(cmd *cobra.Command, args []string) error {
	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		r, err := s.store.GetReport(ctx, args[0])
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(r.Document)
		return err
	})
}

func runHistoryDeleteCmd(cmd *cobra.Command, args []string) error {
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	if all == (len(args) == 1) {
		return errors.New("give either a report ID or --all")
	}

	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		return s.lock.WithLock(ctx, func() error {
			if !all {
				if err := s.store.DeleteReport(ctx, args[0]); err != nil {
					return err
				}
				s.printf("Report %s deleted.\n", args[0])
				return nil
			}
			n, err := s.store.DeleteAllReports(ctx)
			if err != nil {
				return err
			}
			s.printf("%d report(s) deleted.\n", n)
			return nil
		})
	})
}

func runHistoryShareCmd(cmd *cobra.Command, args []string) error {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}
	pending, err := cmd.Flags().GetBool("pending")
	if err != nil {
		return err
	}
	overwrite, err := cmd.Flags().GetBool("overwrite")
	if err != nil {
		return err
	}
	if pending == (len(args) > 0) {
		return errors.New("give either report IDs or --pending")
	}

	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		return s.lock.WithLock(ctx, func() error {
			ids := args
			if pending {
				reports, err := s.store.ListReports(ctx, database.UnsharedOnly)
				if err != nil {
					return err
				}
				ids = make([]string, 0, len(reports))
				for _, r := range reports {
					ids = append(ids, r.ID)
				}
			}
			if len(ids) == 0 {
				s.printf("Nothing to share.\n")
				return nil
			}

			exporter := export.New(s.store,
				export.WithLogger(s.logger),
				export.WithConcurrency(s.cfg.ExportConcurrency),
				export.WithOverwrite(overwrite),
			)

			var mu sync.Mutex
			failed := 0
			err := exporter.ExportWithCallback(ctx, dir, ids, func(r export.Result, _ int) {
				mu.Lock()
				defer mu.Unlock()
				if r.Err != nil {
					failed++
					s.warn(fmt.Sprintf("%s: %v", r.ID, r.Err))
					return
				}
				s.printf("Shared %s -> %s\n", r.ID, r.Path)
			})
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d report(s) not shared", failed, len(ids))
			}
			return nil
		})
	})
}

func runHistoryPendingCmd(cmd *cobra.Command, _ []string) error {
	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		n, err := s.store.UnsharedCount(ctx)
		if err != nil {
			return err
		}
		if s.cfg.JSONOutput {
			s.printf("{\"unshared\":%d}\n", n)
			return nil
		}
		s.printf("%d report(s) not shared yet.\n", n)
		return nil
	})
}
