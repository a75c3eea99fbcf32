package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nao1215/effbatt/internal/model"
	"github.com/nao1215/effbatt/internal/report"
	"github.com/nao1215/effbatt/internal/validation"
	"github.com/spf13/cobra"
)

// NewRecordCmd creates the record command.
func NewRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Enter and check the measurements of a vehicle",
		Long: `Record edits the measurement record of a vehicle. Fields are named by key:

  b1Data b1Costr b1Sn1 b1Sn2    pack 1 production date (MM/YYYY), manufacturer, serials
  b2Data b2Costr b2Sn3 b2Sn4    pack 2
  id2Vm id2Vv id2Iv             ID.2 multimeter voltage, vehicle voltage, vehicle current
  id4.. id5.. id6..             the other checkpoints
  p1e1 .. p2e12                 density of pack 1 and 2, elements 1 to 12
  esito note                    outcome (POSITIVO or NEGATIVO) and notes`,
	}

	set := &cobra.Command{
		Use:   "set key=value...",
		Short: "Set measurement fields",
		Example: `  effbatt record set --site 1 --vehicle 1 b1Data=032022 b1Costr=Hoppecke
  effbatt record set --site 1 --vehicle 1 p1e1=128 esito=POSITIVO`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRecordSetCmd,
	}
	addVehicleFlags(set)

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the measurement record",
		Args:  cobra.NoArgs,
		RunE:  runRecordShowCmd,
	}
	addVehicleFlags(show)

	fill := &cobra.Command{
		Use:   "fill-density",
		Short: "Copy element 1 density to the other elements of a pack",
		Args:  cobra.NoArgs,
		RunE:  runRecordFillDensityCmd,
	}
	addVehicleFlags(fill)
	fill.Flags().Int("pack", 1, "Pack number (1 or 2)")

	check := &cobra.Command{
		Use:   "check",
		Short: "Validate the record, or the gate of one data entry step",
		Long: `Check runs every validator over the record and prints missing fields, errors
and warnings. With --step it runs the gate of that step instead and fails
when the step cannot be left (steps: batteries, measurements, density, outcome).`,
		Args: cobra.NoArgs,
		RunE: runRecordCheckCmd,
	}
	addVehicleFlags(check)
	check.Flags().String("step", "", "Only check the gate of this step")

	cmd.AddCommand(set, show, fill, check)
	return cmd
}

func addVehicleFlags(cmd *cobra.Command) {
	cmd.Flags().Int("site", 0, "Site position")
	cmd.Flags().Int("vehicle", 0, "Vehicle position within the site")
	_ = cmd.MarkFlagRequired("site")
	_ = cmd.MarkFlagRequired("vehicle")
}

func vehicleFlags(cmd *cobra.Command) (int, int, error) {
	siteIndex, err := indexFlag(cmd, "site")
	if err != nil {
		return 0, 0, err
	}
	vehicleIndex, err := indexFlag(cmd, "vehicle")
	if err != nil {
		return 0, 0, err
	}
	return siteIndex, vehicleIndex, nil
}

// parseAssignments splits key=value arguments.
func parseAssignments(args []string) (map[string]string, []string, error) {
	fields := make(map[string]string, len(args))
	order := make([]string, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, nil, fmt.Errorf("invalid assignment %q: use key=value", arg)
		}
		key = strings.TrimSpace(key)
		if _, seen := fields[key]; !seen {
			order = append(order, key)
		}
		fields[key] = normalizeField(key, value)
	}
	return fields, order, nil
}

// normalizeField applies the input formatting of a field: production dates
// become MM/YYYY and bare integer densities become g/ml.
func normalizeField(key, value string) string {
	switch k := strings.ToLower(key); {
	case k == "b1data" || k == "b2data":
		return validation.FormatProductionDate(value)
	case strings.HasPrefix(k, "p") && strings.Contains(k, "e"):
		return validation.NormalizeDensity(value)
	case k == "note" || k == "notes":
		return value
	default:
		return strings.TrimSpace(value)
	}
}

func runRecordSetCmd(cmd *cobra.Command, args []string) error {
	siteIndex, vehicleIndex, err := vehicleFlags(cmd)
	if err != nil {
		return err
	}
	fields, order, err := parseAssignments(args)
	if err != nil {
		return err
	}

	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		return s.mutate(ctx, func(state *model.State) error {
			if err := state.UpdateVehicleData(siteIndex, vehicleIndex, fields); err != nil {
				return err
			}
			_, v, err := state.Vehicle(siteIndex, vehicleIndex)
			if err != nil {
				return err
			}
			s.printf("%d field(s) saved.\n", len(fields))
			s.warn(fieldFeedback(v, state.Operator.Date, order)...)
			return nil
		})
	})
}

// fieldFeedback returns the immediate checks of the fields just entered.
func fieldFeedback(v model.Vehicle, operatorDate string, keys []string) []string {
	var messages []string
	readings := false
	for _, key := range keys {
		k := strings.ToLower(key)
		value, err := v.Data.Field(key)
		if err != nil {
			continue
		}
		switch {
		case k == "b1data" || k == "b2data":
			pack := 1
			if k == "b2data" {
				pack = 2
			}
			if r := validation.CheckBatteryAge(value, operatorDate); r.Checked && r.Age != validation.BatteryOK {
				messages = append(messages, r.Message(pack))
			}
		case strings.HasPrefix(k, "id"):
			readings = true
		case strings.HasPrefix(k, "p"):
			if strings.TrimSpace(value) == "" {
				continue
			}
			if r := validation.ValidateDensity(value); !r.Valid {
				messages = append(messages, key+": "+r.Message())
			}
		}
	}
	if readings {
		messages = append(messages, validation.MeasurementWarnings(v.Data)...)
	}
	return messages
}

func runRecordShowCmd(cmd *cobra.Command, _ []string) error {
	siteIndex, vehicleIndex, err := vehicleFlags(cmd)
	if err != nil {
		return err
	}

	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		state, err := s.loadState(ctx)
		if err != nil {
			return err
		}
		_, v, err := state.Vehicle(siteIndex, vehicleIndex)
		if err != nil {
			return err
		}

		values := make(map[string]string)
		keys := make([]string, 0)
		for _, key := range model.FieldKeys() {
			if strings.HasPrefix(key, "p") && !v.Type.IncludesSixMonth() {
				continue
			}
			value, _ := v.Data.Field(key)
			values[key] = value
			keys = append(keys, key)
		}

		if s.cfg.JSONOutput {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(values)
		}
		s.printf("Vehicle %s (%s)\n", v.Number, v.Type.Label())
		for _, key := range keys {
			s.printf("  %-8s %s\n", key, orDash(values[key]))
		}
		return nil
	})
}

func runRecordFillDensityCmd(cmd *cobra.Command, _ []string) error {
	siteIndex, vehicleIndex, err := vehicleFlags(cmd)
	if err != nil {
		return err
	}
	pack, err := cmd.Flags().GetInt("pack")
	if err != nil {
		return err
	}
	if pack < 1 || pack > model.PackCount {
		return fmt.Errorf("--pack must be 1 or %d", model.PackCount)
	}

	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		return s.mutate(ctx, func(state *model.State) error {
			_, v, err := state.Vehicle(siteIndex, vehicleIndex)
			if err != nil {
				return err
			}
			data, ok := validation.FillDensity(v.Data, pack)
			if !ok {
				return fmt.Errorf("pack %d element 1 has no density reading", pack)
			}
			if err := state.ReplaceVehicleData(siteIndex, vehicleIndex, data); err != nil {
				return err
			}
			s.printf("Pack %d elements 2-%d set to %s.\n", pack, model.ElementsPerPack, data.DensityValue(pack, 2))
			return nil
		})
	})
}

func runRecordCheckCmd(cmd *cobra.Command, _ []string) error {
	siteIndex, vehicleIndex, err := vehicleFlags(cmd)
	if err != nil {
		return err
	}
	rawStep, err := cmd.Flags().GetString("step")
	if err != nil {
		return err
	}

	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		state, err := s.loadState(ctx)
		if err != nil {
			return err
		}
		site, v, err := state.Vehicle(siteIndex, vehicleIndex)
		if err != nil {
			return err
		}

		if rawStep == "" {
			_, err := s.writer().WriteCheck(report.NewCheck(state.Operator, state.Instruments, site, v))
			return err
		}

		step, err := validation.ParseStep(rawStep)
		if err != nil {
			return err
		}
		if err := validation.CheckStep(step, v.Data); err != nil {
			return err
		}
		s.printf("Step %s: ok\n", step)
		return nil
	})
}
