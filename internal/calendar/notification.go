package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeOfDay is returned when a time of day is not in HH:MM form.
var ErrInvalidTimeOfDay = errors.New("invalid time of day: use HH:MM")

// TimeOfDay is a wall clock time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (24-hour clock).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 || len(mm) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// String returns the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the time of day on date's calendar day, in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, date.Location())
}

// Schedule holds the reminder times for working and non-working days.
type Schedule struct {
	// Workday applies Monday to Friday outside holidays.
	Workday TimeOfDay
	// Holiday applies on weekends and public holidays.
	Holiday TimeOfDay
}

// DefaultSchedule fires at 15:15 on workdays and 12:50 otherwise.
func DefaultSchedule() Schedule {
	return Schedule{
		Workday: TimeOfDay{Hour: 15, Minute: 15},
		Holiday: TimeOfDay{Hour: 12, Minute: 50},
	}
}

// NotificationTime returns the reminder time for date.
func (s Schedule) NotificationTime(date time.Time) TimeOfDay {
	if IsWorkday(date) {
		return s.Workday
	}
	return s.Holiday
}

// NextNotification returns the next reminder strictly after now: today's
// slot when it is still ahead, otherwise tomorrow's.
func (s Schedule) NextNotification(now time.Time) time.Time {
	if today := s.NotificationTime(now).On(now); today.After(now) {
		return today
	}
	y, m, d := now.Date()
	tomorrow := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	return s.NotificationTime(tomorrow).On(tomorrow)
}

// NotificationTime returns the reminder time for date under DefaultSchedule.
func NotificationTime(date time.Time) TimeOfDay {
	return DefaultSchedule().NotificationTime(date)
}
