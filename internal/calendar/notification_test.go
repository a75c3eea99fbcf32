package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "15:15", want: TimeOfDay{Hour: 15, Minute: 15}},
		{in: " 7:05 ", want: TimeOfDay{Hour: 7, Minute: 5}},
		{in: "00:00", want: TimeOfDay{}},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "12:5", wantErr: true},
		{in: "1215", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTimeOfDay) {
				t.Errorf("ParseTimeOfDay(%q): expected ErrInvalidTimeOfDay, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeOfDay(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestTimeOfDay_String(t *testing.T) {
	t.Parallel()

	if got := (TimeOfDay{Hour: 9, Minute: 5}).String(); got != "09:05" {
		t.Errorf("expected 09:05, got %s", got)
	}
}

func TestNotificationTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		date time.Time
		want TimeOfDay
	}{
		{name: "workday", date: date(2025, time.June, 10), want: TimeOfDay{Hour: 15, Minute: 15}},
		{name: "saturday", date: date(2025, time.June, 14), want: TimeOfDay{Hour: 12, Minute: 50}},
		{name: "holiday on a weekday", date: date(2025, time.December, 25), want: TimeOfDay{Hour: 12, Minute: 50}},
	}
	for _, tt := range tests {
		if got := NotificationTime(tt.date); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

func TestSchedule_NextNotification(t *testing.T) {
	t.Parallel()

	s := DefaultSchedule()

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "later today",
			now:  time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.October, 14, 15, 15, 0, 0, time.UTC),
		},
		{
			name: "exactly at the slot moves to tomorrow",
			now:  time.Date(2026, time.October, 14, 15, 15, 0, 0, time.UTC),
			want: time.Date(2026, time.October, 15, 15, 15, 0, 0, time.UTC),
		},
		{
			name: "friday evening rolls to saturday slot",
			now:  time.Date(2026, time.October, 16, 18, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.October, 17, 12, 50, 0, 0, time.UTC),
		},
		{
			name: "year end",
			now:  time.Date(2026, time.December, 31, 20, 0, 0, 0, time.UTC),
			want: time.Date(2027, time.January, 1, 12, 50, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := s.NextNotification(tt.now); !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
