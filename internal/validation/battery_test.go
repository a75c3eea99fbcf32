package validation

import (
	"slices"
	"testing"

	"github.com/nao1215/effbatt/internal/model"
)

func TestCheckBatteryAge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		production string
		operator   string
		wantAge    BatteryAge
		wantMonths int
		wantMsg    string
	}{
		{name: "fresh pack", production: "06/2024", operator: "2025-12-15", wantAge: BatteryOK, wantMonths: 55},
		{name: "expiring next month", production: "01/2020", operator: "2025-12-15", wantAge: BatteryExpiring, wantMonths: 1, wantMsg: "pack 1: expires in 1 month (01/2026)"},
		{name: "expiring in three months", production: "03/2020", operator: "2025-12-15", wantAge: BatteryExpiring, wantMonths: 3, wantMsg: "pack 1: expires in 3 months (03/2026)"},
		{name: "expired", production: "01/2019", operator: "2025-12-15", wantAge: BatteryExpired, wantMsg: "pack 1: EXPIRED (01/2025)"},
		{name: "end of life on the operator date", production: "12/2019", operator: "2025-12-01", wantAge: BatteryExpired, wantMonths: 0, wantMsg: "pack 1: EXPIRED (12/2025)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CheckBatteryAge(tt.production, tt.operator)
			if !got.Checked {
				t.Fatal("expected the pack to be checked")
			}
			if got.Age != tt.wantAge {
				t.Errorf("expected %s, got %s", tt.wantAge, got.Age)
			}
			if tt.wantAge != BatteryExpired && got.MonthsLeft != tt.wantMonths {
				t.Errorf("expected %d months, got %d", tt.wantMonths, got.MonthsLeft)
			}
			if msg := got.Message(1); msg != tt.wantMsg {
				t.Errorf("expected %q, got %q", tt.wantMsg, msg)
			}
		})
	}
}

func TestCheckBatteryAge_Unchecked(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct{ production, operator string }{
		{production: "1/2020", operator: "2025-12-15"},
		{production: "13/2020", operator: "2025-12-15"},
		{production: "01-20201", operator: "2025-12-15"},
		{production: "01/2020", operator: ""},
	} {
		got := CheckBatteryAge(tt.production, tt.operator)
		if got.Checked || got.Message(1) != "" {
			t.Errorf("expected %q / %q to be skipped, got %+v", tt.production, tt.operator, got)
		}
	}
}

func TestBatteryAgeWarnings(t *testing.T) {
	t.Parallel()

	var d model.MeasurementData
	d.Packs[0].ProductionDate = "06/2024"
	d.Packs[1].ProductionDate = "01/2019"

	got := BatteryAgeWarnings(d, "2025-12-15")
	want := []string{"pack 2: EXPIRED (01/2025)"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
