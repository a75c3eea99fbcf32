package main

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/nao1215/effbatt/internal/model"
	"github.com/nao1215/effbatt/internal/validation"
	"github.com/spf13/cobra"
)

// NewSiteCmd creates the site command.
func NewSiteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Manage sites (sede) and their work orders",
		Long: `A site groups up to 8 vehicles under one work order (ODL).
Sites are addressed by their position in "site list", starting from 1.`,
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a site",
		Example: `  effbatt site add C3010R --odl 100012345678
  effbatt site add "Deposito Nord"`,
		Args: cobra.ExactArgs(1),
		RunE: runSiteAddCmd,
	}
	add.Flags().String("odl", "", "Work order code (12 digits starting with 1000)")

	edit := &cobra.Command{
		Use:   "edit <position>",
		Short: "Rename a site or change its work order",
		Args:  cobra.ExactArgs(1),
		RunE:  runSiteEditCmd,
	}
	edit.Flags().String("name", "", "New site name")
	edit.Flags().String("odl", "", "New work order code")

	del := &cobra.Command{
		Use:   "delete <position>",
		Short: "Delete a site and all its vehicles",
		Args:  cobra.ExactArgs(1),
		RunE:  runSiteDeleteCmd,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List sites",
		Args:  cobra.NoArgs,
		RunE:  runSiteListCmd,
	}

	cmd.AddCommand(add, edit, del, list)
	return cmd
}

// checkWorkOrder validates a work order; the empty code is accepted.
func checkWorkOrder(raw string) (string, error) {
	code := strings.Join(strings.Fields(raw), "")
	if code == "" {
		return "", nil
	}
	if r := validation.ValidateWorkOrder(code); !r.Valid {
		return "", r.Err
	}
	return code, nil
}

func runSiteAddCmd(cmd *cobra.Command, args []string) error {
	rawODL, err := cmd.Flags().GetString("odl")
	if err != nil {
		return err
	}
	odl, err := checkWorkOrder(rawODL)
	if err != nil {
		return err
	}

	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		var index int
		err := s.mutate(ctx, func(state *model.State) error {
			var err error
			index, err = state.AddSite(args[0], odl)
			return err
		})
		if err != nil {
			return err
		}
		s.printf("Site %d added: %s\n", index+1, model.NormalizeText(args[0]))
		return nil
	})
}

func runSiteEditCmd(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		return s.mutate(ctx, func(state *model.State) error {
			site, err := state.Site(index)
			if err != nil {
				return err
			}
			name, odl := site.Name, site.WorkOrder
			newName, ok, err := changedString(cmd, "name")
			if err != nil {
				return err
			}
			if ok {
				name = newName
			}
			raw, ok, err := changedString(cmd, "odl")
			if err != nil {
				return err
			}
			if ok {
				if odl, err = checkWorkOrder(raw); err != nil {
					return err
				}
			}
			if err := state.UpdateSite(index, name, odl); err != nil {
				return err
			}
			s.printf("Site %d saved.\n", index+1)
			return nil
		})
	})
}

func runSiteDeleteCmd(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		return s.mutate(ctx, func(state *model.State) error {
			site, err := state.Site(index)
			if err != nil {
				return err
			}
			if err := state.DeleteSite(index); err != nil {
				return err
			}
			s.logger.Info("site deleted", "site", site.Name, "vehicles", len(site.Vehicles))
			s.printf("Site %s deleted with %d vehicle(s).\n", site.Name, len(site.Vehicles))
			return nil
		})
	})
}

// siteSummary is the JSON shape of a site listing entry.
type siteSummary struct {
	Position  int    `json:"position"`
	Name      string `json:"name"`
	WorkOrder string `json:"work_order,omitempty"`
	Vehicles  int    `json:"vehicles"`
	Generated int    `json:"generated"`
}

func runSiteListCmd(cmd *cobra.Command, _ []string) error {
	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		state, err := s.loadState(ctx)
		if err != nil {
			return err
		}

		summaries := make([]siteSummary, 0, len(state.Sites))
		for i, site := range state.Sites {
			sum := siteSummary{Position: i + 1, Name: site.Name, WorkOrder: site.WorkOrder, Vehicles: len(site.Vehicles)}
			for _, v := range site.Vehicles {
				if v.PDFGenerated {
					sum.Generated++
				}
			}
			summaries = append(summaries, sum)
		}

		if s.cfg.JSONOutput {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(summaries)
		}
		if len(summaries) == 0 {
			s.printf("No sites.\n")
			return nil
		}
		for _, sum := range summaries {
			s.printf("%d. %s  ODL %s  vehicles %d/%d  generated %d\n",
				sum.Position, sum.Name, orDash(sum.WorkOrder), sum.Vehicles, model.MaxVehiclesPerSite, sum.Generated)
		}
		return nil
	})
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
