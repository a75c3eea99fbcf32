package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/nao1215/effbatt/internal/calendar"
	"github.com/nao1215/effbatt/internal/validation"
	"github.com/spf13/cobra"
)

// NewCalendarCmd creates the calendar command.
func NewCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Public holidays and the expiry reminder schedule",
	}
	cmd.AddCommand(newCalendarHolidayCmd())
	cmd.AddCommand(newCalendarHolidaysCmd())
	cmd.AddCommand(newCalendarNotifyCmd())
	return cmd
}

func newCalendarHolidayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "holiday [date]",
		Short: "Tell whether a day is a workday, a weekend or a holiday",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if len(args) == 1 && args[0] != "today" {
				t, err := time.ParseInLocation(isoLayout, args[0], time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q: use YYYY-MM-DD", args[0])
				}
				day = t
			}

			out := cmd.OutOrStdout()
			date := day.Format("02/01/2006")
			switch name, holiday := calendar.HolidayName(day); {
			case holiday:
				fmt.Fprintf(out, "%s: holiday (%s)\n", date, name)
			case calendar.IsWeekend(day):
				fmt.Fprintf(out, "%s: weekend\n", date)
			default:
				fmt.Fprintf(out, "%s: workday\n", date)
			}
			return nil
		},
	}
}

func newCalendarHolidaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "holidays [year]",
		Short: "List the public holidays of a year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := time.Now().Year()
			if len(args) == 1 {
				y, err := strconv.Atoi(args[0])
				if err != nil || y < 1583 {
					return fmt.Errorf("invalid year %q", args[0])
				}
				year = y
			}

			out := cmd.OutOrStdout()
			for _, h := range calendar.Holidays(year, time.Local) {
				fmt.Fprintf(out, "%s  %-10s %s\n", h.Date.Format("02/01/2006"), h.Date.Weekday(), h.Name)
			}
			if !calendar.IsTabulated(year) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: Easter %d is computed, not tabulated\n", year)
			}
			return nil
		},
	}
}

func newCalendarNotifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Show the next expiry reminder and what it would announce",
		Long: `Notify prints when the next daily reminder fires (notifications.workday on
workdays, notifications.holiday on weekends and public holidays) and the
instruments it would announce today.`,
		Args: cobra.NoArgs,
		RunE: runCalendarNotifyCmd,
	}
	cmd.Flags().String("today", "", "Reference day (YYYY-MM-DD, default today)")
	cmd.Flags().Int("horizon", -1, "Horizon in days (default from configuration)")
	return cmd
}

func runCalendarNotifyCmd(cmd *cobra.Command, _ []string) error {
	return runWithSession(cmd, func(ctx context.Context, s *session) error {
		if !s.cfg.NotificationsEnabled {
			s.printf("Notifications are disabled.\n")
			return nil
		}
		schedule, err := s.cfg.Schedule()
		if err != nil {
			return err
		}
		state, err := s.loadState(ctx)
		if err != nil {
			return err
		}
		notices, horizon, err := expiryNotices(cmd, s, state.Instruments)
		if err != nil {
			return err
		}

		next := schedule.NextNotification(time.Now())
		if s.cfg.JSONOutput {
			if notices == nil {
				notices = []validation.ExpiryNotice{}
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(struct {
				Next    time.Time                 `json:"next"`
				Horizon int                       `json:"horizon_days"`
				Notices []validation.ExpiryNotice `json:"notices"`
			}{next, horizon, notices})
		}

		s.printf("Next reminder: %s\n", next.Format("Mon 02/01/2006 15:04"))
		return printNotices(s, notices, horizon)
	})
}
