package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nao1215/effbatt/internal/model"
	"github.com/nao1215/effbatt/internal/validation"
	"github.com/spf13/cobra"
)

// NewInstrumentsCmd creates the instruments command.
func NewInstrumentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instruments",
		Aliases: []string{"instr"},
		Short:   "Manage the multimeter and densitometer in use",
	}
	cmd.AddCommand(newInstrumentsShowCmd())
	cmd.AddCommand(newInstrumentsSetCmd())
	cmd.AddCommand(newInstrumentsCheckCmd())
	cmd.AddCommand(newInstrumentsTemplateCmd())
	return cmd
}

func newInstrumentsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the instruments in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithSession(cmd, func(ctx context.Context, s *session) error {
				state, err := s.loadState(ctx)
				if err != nil {
					return err
				}
				inst := state.Instruments
				if s.cfg.JSONOutput {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(inst)
				}
				s.printf("Multimeter:   %s (expiry %s)\n", inst.MultimeterID, validation.FormatDate(inst.MultimeterExpiry))
				s.printf("Densitometer: %s (expiry %s)\n", inst.DensitometerID, validation.FormatDate(inst.DensitometerExpiry))
				return nil
			})
		},
	}
}

func newInstrumentsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the instruments in use",
		Long: `Set changes the identifier or calibration expiry of the instruments in use.
Only the given flags change. Instruments expired on the operator date are reported.

Examples:
  effbatt instruments set --multimeter-id MM-01 --multimeter-expiry 2026-01-31
  effbatt instruments set --densitometer-id DN-07 --densitometer-expiry 2026-03-31`,
		Args: cobra.NoArgs,
		RunE: runInstrumentsSetCmd,
	}
	cmd.Flags().String("multimeter-id", "", "Multimeter identifier")
	cmd.Flags().String("multimeter-expiry", "", "Multimeter calibration expiry (YYYY-MM-DD)")
	cmd.Flags().String("densitometer-id", "", "Densitometer identifier")
	cmd.Flags().String("densitometer-expiry", "", "Densitometer calibration expiry (YYYY-MM-DD)")
	return cmd
}

func runInstrumentsSetCmd(cmd *cobra.Command, _ []string) error {
	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		return s.mutate(ctx, func(state *model.State) error {
			inst := &state.Instruments
			ids := map[string]*string{
				"multimeter-id":   &inst.MultimeterID,
				"densitometer-id": &inst.DensitometerID,
			}
			expiries := map[string]*string{
				"multimeter-expiry":   &inst.MultimeterExpiry,
				"densitometer-expiry": &inst.DensitometerExpiry,
			}

			for name, field := range ids {
				v, ok, err := changedString(cmd, name)
				if err != nil {
					return err
				}
				if ok {
					*field = strings.TrimSpace(v)
				}
			}
			for name, field := range expiries {
				v, ok, err := changedString(cmd, name)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				if strings.TrimSpace(v) == "" {
					*field = ""
					continue
				}
				date, err := parseDate(v, time.Now())
				if err != nil {
					return fmt.Errorf("--%s: %w", name, err)
				}
				*field = date
			}

			s.warn(validation.PreventiveExpiryWarnings(*inst, state.Operator.Date)...)
			s.printf("Instruments saved.\n")
			return nil
		})
	})
}

func newInstrumentsCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "List instruments expired or expiring soon",
		Long: `Check lists the instruments that are expired or expire within the horizon
(expiry.horizonDays in the configuration, 20 days by default), most urgent first.`,
		Args: cobra.NoArgs,
		RunE: runInstrumentsCheckCmd,
	}
	cmd.Flags().String("today", "", "Reference day (YYYY-MM-DD, default today)")
	cmd.Flags().Int("horizon", -1, "Horizon in days (default from configuration)")
	return cmd
}

func runInstrumentsCheckCmd(cmd *cobra.Command, _ []string) error {
	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		state, err := s.loadState(ctx)
		if err != nil {
			return err
		}
		notices, horizon, err := expiryNotices(cmd, s, state.Instruments)
		if err != nil {
			return err
		}
		return printNotices(s, notices, horizon)
	})
}

// expiryNotices evaluates the --today and --horizon flags of cmd.
func expiryNotices(cmd *cobra.Command, s *session, inst model.Instruments) ([]validation.ExpiryNotice, int, error) {
	today := time.Now()
	raw, err := cmd.Flags().GetString("today")
	if err != nil {
		return nil, 0, err
	}
	if raw != "" {
		t, err := time.ParseInLocation(isoLayout, raw, time.Local)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid date %q: use YYYY-MM-DD", raw)
		}
		today = t
	}
	horizon := s.cfg.ExpiryHorizonDays
	h, err := cmd.Flags().GetInt("horizon")
	if err != nil {
		return nil, 0, err
	}
	if h >= 0 {
		horizon = h
	}
	return validation.UpcomingExpiry(inst, today, horizon), horizon, nil
}

func printNotices(s *session, notices []validation.ExpiryNotice, horizon int) error {
	if s.cfg.JSONOutput {
		type notice struct {
			validation.ExpiryNotice
			Urgency validation.Urgency `json:"urgency"`
		}
		out := make([]notice, 0, len(notices))
		for _, n := range notices {
			out = append(out, notice{ExpiryNotice: n, Urgency: n.Urgency()})
		}
		return json.NewEncoder(s.cmd.OutOrStdout()).Encode(out)
	}

	if len(notices) == 0 {
		s.printf("No instrument expires within %d days.\n", horizon)
		return nil
	}
	for _, n := range notices {
		s.printf("[%s] %s\n", strings.ToUpper(string(n.Urgency())), n.Message)
	}
	return nil
}

func newInstrumentsTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage saved instrument configurations",
	}

	save := &cobra.Command{
		Use:   "save",
		Short: "Save an instrument configuration",
		Long: `Save stores an instrument identifier and expiry as a template that can be
applied later. Without --id and --expiry the instrument in use is saved.

Examples:
  effbatt instruments template save --kind multimeter --label "Fluke spare" --id MM-02 --expiry 2026-05-31
  effbatt instruments template save --kind densitometer --label "current"`,
		Args: cobra.NoArgs,
		RunE: runTemplateSaveCmd,
	}
	save.Flags().String("kind", "", "multimeter or densitometer")
	save.Flags().String("label", "", "Free-text description")
	save.Flags().String("id", "", "Instrument identifier")
	save.Flags().String("expiry", "", "Calibration expiry (YYYY-MM-DD)")
	_ = save.MarkFlagRequired("kind")

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved instrument configurations",
		Args:  cobra.NoArgs,
		RunE:  runTemplateListCmd,
	}
	list.Flags().String("kind", "", "Only list this kind")

	apply := &cobra.Command{
		Use:   "apply <template-id>",
		Short: "Use a saved configuration as the instrument in use",
		Args:  cobra.ExactArgs(1),
		RunE:  runTemplateApplyCmd,
	}

	del := &cobra.Command{
		Use:   "delete <template-id>",
		Short: "Delete a saved configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.store.DeleteInstrumentTemplate(ctx, args[0]); err != nil {
					return err
				}
				s.printf("Template %s deleted.\n", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(save, list, apply, del)
	return cmd
}

func runTemplateSaveCmd(cmd *cobra.Command, _ []string) error {
	rawKind, err := cmd.Flags().GetString("kind")
	if err != nil {
		return err
	}
	kind, err := model.ParseInstrumentKind(rawKind)
	if err != nil {
		return err
	}
	label, err := cmd.Flags().GetString("label")
	if err != nil {
		return err
	}
	id, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	expiry, err := cmd.Flags().GetString("expiry")
	if err != nil {
		return err
	}

	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		if id == "" && expiry == "" {
			state, err := s.loadState(ctx)
			if err != nil {
				return err
			}
			id, expiry = liveInstrument(state.Instruments, kind)
		} else if expiry != "" {
			if expiry, err = parseDate(expiry, time.Now()); err != nil {
				return err
			}
		}

		t, err := model.NewInstrumentTemplate(kind, label, id, expiry)
		if err != nil {
			return err
		}
		if err := s.store.SaveInstrumentTemplate(ctx, t); err != nil {
			return err
		}
		s.printf("Template saved: %s\n", t.ID)
		return nil
	})
}

func liveInstrument(inst model.Instruments, kind model.InstrumentKind) (id, expiry string) {
	if kind == model.InstrumentDensitometer {
		return inst.DensitometerID, inst.DensitometerExpiry
	}
	return inst.MultimeterID, inst.MultimeterExpiry
}

func runTemplateListCmd(cmd *cobra.Command, _ []string) error {
	var kind model.InstrumentKind
	raw, err := cmd.Flags().GetString("kind")
	if err != nil {
		return err
	}
	if raw != "" {
		k, err := model.ParseInstrumentKind(raw)
		if err != nil {
			return err
		}
		kind = k
	}

	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		templates, err := s.store.ListInstrumentTemplates(ctx, kind)
		if err != nil {
			return err
		}
		if s.cfg.JSONOutput {
			if templates == nil {
				templates = []model.InstrumentTemplate{}
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(templates)
		}
		if len(templates) == 0 {
			s.printf("No saved instrument templates.\n")
			return nil
		}
		for _, t := range templates {
			s.printf("%s  %-12s %-10s expiry %s  %s\n", t.ID, t.Kind, t.InstrumentID, validation.FormatDate(t.Expiry), t.Label)
		}
		return nil
	})
}

func runTemplateApplyCmd(cmd *cobra.Command, args []string) error {
	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		t, err := s.store.GetInstrumentTemplate(ctx, args[0])
		if err != nil {
			return err
		}
		return s.mutate(ctx, func(state *model.State) error {
			state.Instruments = state.Instruments.Apply(*t)
			s.warn(validation.PreventiveExpiryWarnings(state.Instruments, state.Operator.Date)...)
			s.printf("%s set to %s (expiry %s).\n", t.Kind.Label(), t.InstrumentID, validation.FormatDate(t.Expiry))
			return nil
		})
	})
}
