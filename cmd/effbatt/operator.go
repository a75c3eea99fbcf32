package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nao1215/effbatt/internal/model"
	"github.com/nao1215/effbatt/internal/validation"
	"github.com/spf13/cobra"
)

// NewOperatorCmd creates the operator command.
func NewOperatorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operator",
		Short: "Show or edit the operator who signs the verifications",
	}
	cmd.AddCommand(newOperatorShowCmd())
	cmd.AddCommand(newOperatorSetCmd())
	return cmd
}

func newOperatorShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the operator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithSession(cmd, func(ctx context.Context, s *session) error {
				state, err := s.loadState(ctx)
				if err != nil {
					return err
				}
				op := state.Operator
				if s.cfg.JSONOutput {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(op)
				}
				s.printf("Name: %s\nCID:  %s\nDate: %s\n", op.Name, op.CID, validation.FormatDate(op.Date))
				return nil
			})
		},
	}
}

func newOperatorSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Edit the operator",
		Long: `Set changes the operator's name, CID or reference date. Only the given
flags change. The date is checked against the instrument expiries and any
instrument already expired on that date is reported.

Examples:
  effbatt operator set --name "Mario Rossi" --cid 123456 --date today
  effbatt operator set --date 2025-06-10`,
		Args: cobra.NoArgs,
		RunE: runOperatorSetCmd,
	}
	cmd.Flags().String("name", "", "Operator full name")
	cmd.Flags().String("cid", "", "Operator company identifier")
	cmd.Flags().String("date", "", `Reference date (YYYY-MM-DD or "today")`)
	return cmd
}

func runOperatorSetCmd(cmd *cobra.Command, _ []string) error {
	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		var op model.Operator
		err := s.mutate(ctx, func(state *model.State) error {
			name, ok, err := changedString(cmd, "name")
			if err != nil {
				return err
			}
			if ok {
				state.Operator.Name = model.NormalizeText(name)
			}
			cid, ok, err := changedString(cmd, "cid")
			if err != nil {
				return err
			}
			if ok {
				state.Operator.CID = model.NormalizeText(cid)
			}
			raw, ok, err := changedString(cmd, "date")
			if err != nil {
				return err
			}
			if ok {
				date, err := parseDate(raw, time.Now())
				if err != nil {
					return err
				}
				state.Operator.Date = date
			}
			op = state.Operator
			s.warn(validation.PreventiveExpiryWarnings(state.Instruments, op.Date)...)
			return nil
		})
		if err != nil {
			return err
		}
		s.logger.Info("operator updated", "operator", op.Name, "date", op.Date)
		s.printf("Operator saved: %s (%s), %s\n", op.Name, op.CID, validation.FormatDate(op.Date))
		return nil
	})
}
