package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// NewFormCmd creates the form command.
func NewFormCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Manage the verification form template",
		Long: `Form stores the blank verification form used by generate. Without a stored
template, reports are rendered as a plain Markdown sheet.`,
	}

	set := &cobra.Command{
		Use:   "set <file>",
		Short: "Store a form template, replacing the current one",
		Args:  cobra.ExactArgs(1),
		RunE:  runFormSetCmd,
	}
	info := &cobra.Command{
		Use:   "info",
		Short: "Show the stored form template",
		Args:  cobra.NoArgs,
		RunE:  runFormInfoCmd,
	}
	del := &cobra.Command{
		Use:   "delete",
		Short: "Remove the stored form template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.store.DeletePDFTemplate(ctx); err != nil {
					return err
				}
				s.printf("Form template removed.\n")
				return nil
			})
		},
	}

	cmd.AddCommand(set, info, del)
	return cmd
}

func runFormSetCmd(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read form template: %w", err)
	}
	if len(content) == 0 {
		return fmt.Errorf("form template %s is empty", args[0])
	}

	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		if !bytes.HasPrefix(content, []byte("%PDF-")) {
			s.warn(args[0] + " does not look like a PDF file")
		}
		name := filepath.Base(args[0])
		if err := s.store.SavePDFTemplate(ctx, name, content); err != nil {
			return err
		}
		s.printf("Form template %s stored (%s).\n", name, humanize.Bytes(uint64(len(content))))
		return nil
	})
}

func runFormInfoCmd(cmd *cobra.Command, _ []string) error {
	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		t, err := s.store.GetPDFTemplate(ctx)
		if err != nil {
			return err
		}
		if s.cfg.JSONOutput {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
				"name":        t.Name,
				"size":        len(t.Content),
				"hash":        t.ContentHash,
				"uploaded_at": t.UploadedAt,
			})
		}
		s.printf("Name:     %s\n", t.Name)
		s.printf("Size:     %s\n", humanize.Bytes(uint64(len(t.Content))))
		s.printf("Hash:     %s\n", t.ContentHash)
		s.printf("Uploaded: %s (%s)\n", t.UploadedAt.Local().Format("02/01/2006 15:04"), humanize.Time(t.UploadedAt))
		return nil
	})
}
