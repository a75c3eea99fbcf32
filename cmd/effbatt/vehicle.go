package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/nao1215/effbatt/internal/model"
	"github.com/nao1215/effbatt/internal/validation"
	"github.com/spf13/cobra"
)

// NewVehicleCmd creates the vehicle command.
func NewVehicleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicle",
		Short: "Manage the vehicles of a site",
		Long: `Vehicles are addressed by site position and vehicle position, both starting
from 1. A vehicle number is 11 digits plus a check digit ("50832187605-6");
numbers that fail the check are refused unless --force is given.`,
	}

	add := &cobra.Command{
		Use:     "add <number>",
		Short:   "Add a vehicle to a site",
		Example: `  effbatt vehicle add --site 1 --type 3M6M 50832187605-6`,
		Args:    cobra.ExactArgs(1),
		RunE:    runVehicleAddCmd,
	}
	add.Flags().Int("site", 0, "Site position")
	add.Flags().StringP("type", "t", string(model.VerificationThreeMonth), "Verification type: 3M, 6M or 3M6M")
	add.Flags().Bool("force", false, "Accept a number that fails validation")
	_ = add.MarkFlagRequired("site")

	edit := &cobra.Command{
		Use:   "edit <position>",
		Short: "Change a vehicle's number or verification type",
		Args:  cobra.ExactArgs(1),
		RunE:  runVehicleEditCmd,
	}
	edit.Flags().Int("site", 0, "Site position")
	edit.Flags().String("number", "", "New vehicle number")
	edit.Flags().StringP("type", "t", "", "New verification type")
	edit.Flags().Bool("force", false, "Accept a number that fails validation")
	_ = edit.MarkFlagRequired("site")

	del := &cobra.Command{
		Use:   "delete <position>",
		Short: "Delete a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE:  runVehicleDeleteCmd,
	}
	del.Flags().Int("site", 0, "Site position")
	_ = del.MarkFlagRequired("site")

	list := &cobra.Command{
		Use:   "list",
		Short: "List the vehicles of a site",
		Args:  cobra.NoArgs,
		RunE:  runVehicleListCmd,
	}
	list.Flags().Int("site", 0, "Site position")
	_ = list.MarkFlagRequired("site")

	check := &cobra.Command{
		Use:   "check-number <number>",
		Short: "Validate a vehicle number and compute its check digit",
		Args:  cobra.ExactArgs(1),
		RunE:  runVehicleCheckNumberCmd,
	}

	cmd.AddCommand(add, edit, del, list, check)
	return cmd
}

// vehicleNumber validates a number and returns its canonical form. With force
// an invalid number is kept as typed and the problem reported as a warning.
func vehicleNumber(s *session, raw string, force bool) (string, error) {
	r := validation.ValidateVehicleNumber(raw)
	if r.Valid {
		return r.Formatted, nil
	}
	if !force {
		return "", r.Err
	}
	s.warn("vehicle number: " + r.Message())
	return raw, nil
}

func runVehicleAddCmd(cmd *cobra.Command, args []string) error {
	siteIndex, err := indexFlag(cmd, "site")
	if err != nil {
		return err
	}
	rawType, err := cmd.Flags().GetString("type")
	if err != nil {
		return err
	}
	t, err := model.ParseVerificationType(rawType)
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		number, err := vehicleNumber(s, args[0], force)
		if err != nil {
			return err
		}
		return s.mutate(ctx, func(state *model.State) error {
			index, err := state.AddVehicle(siteIndex, number, t)
			if err != nil {
				return err
			}
			s.printf("Vehicle %d added to site %d: %s (%s)\n", index+1, siteIndex+1, number, t.Label())
			return nil
		})
	})
}

func runVehicleEditCmd(cmd *cobra.Command, args []string) error {
	siteIndex, err := indexFlag(cmd, "site")
	if err != nil {
		return err
	}
	vehicleIndex, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		return s.mutate(ctx, func(state *model.State) error {
			_, v, err := state.Vehicle(siteIndex, vehicleIndex)
			if err != nil {
				return err
			}
			number, t := v.Number, v.Type
			rawNumber, ok, err := changedString(cmd, "number")
			if err != nil {
				return err
			}
			if ok {
				if number, err = vehicleNumber(s, rawNumber, force); err != nil {
					return err
				}
			}
			rawType, ok, err := changedString(cmd, "type")
			if err != nil {
				return err
			}
			if ok {
				if t, err = model.ParseVerificationType(rawType); err != nil {
					return err
				}
			}
			if err := state.UpdateVehicle(siteIndex, vehicleIndex, number, t); err != nil {
				return err
			}
			s.printf("Vehicle %d saved: %s (%s)\n", vehicleIndex+1, number, t.Label())
			return nil
		})
	})
}

func runVehicleDeleteCmd(cmd *cobra.Command, args []string) error {
	siteIndex, err := indexFlag(cmd, "site")
	if err != nil {
		return err
	}
	vehicleIndex, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		return s.mutate(ctx, func(state *model.State) error {
			_, v, err := state.Vehicle(siteIndex, vehicleIndex)
			if err != nil {
				return err
			}
			if err := state.DeleteVehicle(siteIndex, vehicleIndex); err != nil {
				return err
			}
			s.printf("Vehicle %s deleted.\n", v.Number)
			return nil
		})
	})
}

// vehicleSummary is the JSON shape of a vehicle listing entry.
type vehicleSummary struct {
	Position  int    `json:"position"`
	Number    string `json:"number"`
	Type      string `json:"type"`
	Complete  bool   `json:"complete"`
	Missing   int    `json:"missing"`
	Generated bool   `json:"generated"`
}

func runVehicleListCmd(cmd *cobra.Command, _ []string) error {
	siteIndex, err := indexFlag(cmd, "site")
	if err != nil {
		return err
	}

	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		state, err := s.loadState(ctx)
		if err != nil {
			return err
		}
		site, err := state.Site(siteIndex)
		if err != nil {
			return err
		}

		summaries := make([]vehicleSummary, 0, len(site.Vehicles))
		for i, v := range site.Vehicles {
			missing := validation.MissingFields(state.Operator, state.Instruments, site, v)
			summaries = append(summaries, vehicleSummary{
				Position:  i + 1,
				Number:    v.Number,
				Type:      v.Type.String(),
				Complete:  len(missing) == 0,
				Missing:   len(missing),
				Generated: v.PDFGenerated,
			})
		}

		if s.cfg.JSONOutput {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(summaries)
		}
		if len(summaries) == 0 {
			s.printf("No vehicles in site %s.\n", site.Name)
			return nil
		}
		for _, sum := range summaries {
			status := "complete"
			if !sum.Complete {
				status = "missing " + strconv.Itoa(sum.Missing)
			}
			if sum.Generated {
				status += ", generated"
			}
			s.printf("%d. %s  %-4s %s\n", sum.Position, sum.Number, sum.Type, status)
		}
		return nil
	})
}

func runVehicleCheckNumberCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	r := validation.ValidateVehicleNumber(args[0])
	out := cmd.OutOrStdout()

	if cfg.JSONOutput {
		return json.NewEncoder(out).Encode(struct {
			Number    string `json:"number"`
			Valid     bool   `json:"valid"`
			Formatted string `json:"formatted"`
			Error     string `json:"error,omitempty"`
		}{args[0], r.Valid, r.Formatted, r.Message()})
	}

	if r.Valid {
		fmt.Fprintf(out, "%s is valid\n", r.Formatted)
		return nil
	}
	fmt.Fprintf(out, "%s is not valid: %s\n", args[0], r.Message())
	if digit, err := validation.ComputeCheckDigit(firstDigits(args[0], 11)); err == nil {
		fmt.Fprintf(out, "expected check digit: %d\n", digit)
	}
	return r.Err
}

// firstDigits returns the first n digits of s.
func firstDigits(s string, n int) string {
	digits := make([]rune, 0, n)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
			if len(digits) == n {
				break
			}
		}
	}
	return string(digits)
}
