package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/effbatt/internal/database"
	"github.com/nao1215/effbatt/internal/generator"
	"github.com/nao1215/effbatt/internal/report"
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the verification report of a vehicle",
		Long: `Generate fills the verification form of a vehicle and stores the report in
the history. Generation is refused while required fields are empty or an
instrument is past its calibration expiry on the operator date.

Generating again on the same operator date replaces the previous report.
Use "effbatt history share" to write reports to a directory.`,
		Example: `  effbatt generate --site 1 --vehicle 2
  effbatt generate --site 1 --all`,
		Args: cobra.NoArgs,
		RunE: runGenerateCmd,
	}
	cmd.Flags().Int("site", 0, "Site position")
	cmd.Flags().Int("vehicle", 0, "Vehicle position within the site")
	cmd.Flags().Bool("all", false, "Generate every vehicle of the site")
	_ = cmd.MarkFlagRequired("site")
	cmd.MarkFlagsMutuallyExclusive("vehicle", "all")
	cmd.MarkFlagsOneRequired("vehicle", "all")
	return cmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	siteIndex, err := indexFlag(cmd, "site")
	if err != nil {
		return err
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	vehicleIndex := -1
	if !all {
		if vehicleIndex, err = indexFlag(cmd, "vehicle"); err != nil {
			return err
		}
	}

	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		template, err := s.formTemplate(ctx)
		if err != nil {
			return err
		}
		gen, err := generator.New(report.SheetRenderer{}, s.store, generator.WithLogger(s.logger))
		if err != nil {
			return err
		}

		return s.lock.WithLock(ctx, func() error {
			state, err := s.loadState(ctx)
			if err != nil {
				return err
			}
			site, err := state.Site(siteIndex)
			if err != nil {
				return err
			}

			if !all {
				r, err := gen.Generate(ctx, state, siteIndex, vehicleIndex, template)
				if err != nil {
					return err
				}
				s.printGenerated(r.ID, r.Filename, len(r.Document))
				return nil
			}

			if len(site.Vehicles) == 0 {
				return fmt.Errorf("site %q has no vehicles", site.Name)
			}
			failed := 0
			for i, v := range site.Vehicles {
				r, err := gen.Generate(ctx, state, siteIndex, i, template)
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					failed++
					s.warn(fmt.Sprintf("vehicle %s: %v", orDash(v.Number), err))
					continue
				}
				s.printGenerated(r.ID, r.Filename, len(r.Document))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d report(s) not generated", failed, len(site.Vehicles))
			}
			return nil
		})
	})
}

// formTemplate returns the stored form template, or nil when none was uploaded.
func (s *session) formTemplate(ctx context.Context) ([]byte, error) {
	t, err := s.store.GetPDFTemplate(ctx)
	if errors.Is(err, database.ErrNotFound) {
		s.logger.Debug("no form template stored, rendering the plain sheet")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t.Content, nil
}

func (s *session) printGenerated(id, filename string, size int) {
	s.printf("Generated %s (%s) as %s\n", filename, humanize.Bytes(uint64(size)), id)
}
