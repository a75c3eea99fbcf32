package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for effbatt.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "effbatt",
		Short: "Battery efficiency verification records and reports",
		Long: `effbatt keeps the records of battery efficiency verifications (3 and 6 month
checks) and generates the verification reports.

Data entry follows the verification steps: battery packs, voltage and current
measurements (3 month), electrolyte density (6 month) and outcome. Every value
is checked as it is entered; a report is generated only when the record is
complete and the instruments are within calibration.

State and report history are kept in a SQLite database in the XDG data
directory unless --db-dir or the configuration file says otherwise.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .effbatt in current or home directory)")
	cmd.PersistentFlags().String("db-dir", "", "Database directory (overrides the configuration)")
	cmd.PersistentFlags().BoolP("json", "j", false, "Print results as JSON (mutually exclusive with --markdown)")
	cmd.PersistentFlags().BoolP("markdown", "m", false, "Print results as Markdown (mutually exclusive with --json)")

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(NewOperatorCmd())
	cmd.AddCommand(NewInstrumentsCmd())
	cmd.AddCommand(NewSiteCmd())
	cmd.AddCommand(NewVehicleCmd())
	cmd.AddCommand(NewRecordCmd())
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewFormCmd())
	cmd.AddCommand(NewCalendarCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
