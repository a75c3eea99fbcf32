package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/effbatt/internal/model"
)

const (
	// BatteryLifeYears is the service life of a battery pack from its production date.
	BatteryLifeYears = 6
	// BatteryExpiringMonths is how many months before end of life a pack is flagged.
	BatteryExpiringMonths = 3
)

// BatteryAge is the end-of-life state of a battery pack.
type BatteryAge string

const (
	// BatteryOK means the pack is not near end of life.
	BatteryOK BatteryAge = "ok"
	// BatteryExpiring means the pack reaches end of life within BatteryExpiringMonths.
	BatteryExpiring BatteryAge = "expiring"
	// BatteryExpired means the pack is past end of life.
	BatteryExpired BatteryAge = "expired"
)

// BatteryAgeResult is the outcome of CheckBatteryAge.
type BatteryAgeResult struct {
	// Checked is false when the production or operator date could not be read.
	Checked bool

	Age BatteryAge

	// MonthsLeft counts 30-day months until end of life, rounded up.
	MonthsLeft int

	// Expiry is the end-of-life month in MM/YYYY form.
	Expiry string
}

// CheckBatteryAge compares a pack production date (MM/YYYY) against the
// operator date (YYYY-MM-DD). End of life is the first day of the production
// month, BatteryLifeYears later.
func CheckBatteryAge(productionDate, operatorDate string) BatteryAgeResult {
	productionDate = strings.TrimSpace(productionDate)
	if len(productionDate) < 7 {
		return BatteryAgeResult{}
	}
	parts := strings.Split(productionDate, "/")
	if len(parts) != 2 {
		return BatteryAgeResult{}
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return BatteryAgeResult{}
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return BatteryAgeResult{}
	}
	opDate, err := time.ParseInLocation(isoLayout, strings.TrimSpace(operatorDate), time.UTC)
	if err != nil {
		return BatteryAgeResult{}
	}

	endYear := year + BatteryLifeYears
	end := time.Date(endYear, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	months := int(math.Ceil(end.Sub(opDate).Hours() / (24 * 30)))

	r := BatteryAgeResult{
		Checked:    true,
		Age:        BatteryOK,
		MonthsLeft: months,
		Expiry:     fmt.Sprintf("%02d/%d", month, endYear),
	}
	switch {
	case months <= 0:
		r.Age = BatteryExpired
	case months <= BatteryExpiringMonths:
		r.Age = BatteryExpiring
	}
	return r
}

// Message returns the warning for pack n, or "" when there is nothing to report.
func (r BatteryAgeResult) Message(pack int) string {
	switch r.Age {
	case BatteryExpired:
		return fmt.Sprintf("pack %d: EXPIRED (%s)", pack, r.Expiry)
	case BatteryExpiring:
		unit := "months"
		if r.MonthsLeft == 1 {
			unit = "month"
		}
		return fmt.Sprintf("pack %d: expires in %d %s (%s)", pack, r.MonthsLeft, unit, r.Expiry)
	default:
		return ""
	}
}

// BatteryAgeWarnings checks both packs of a record against the operator date.
func BatteryAgeWarnings(d model.MeasurementData, operatorDate string) []string {
	var warnings []string
	for i, pack := range d.Packs {
		if msg := CheckBatteryAge(pack.ProductionDate, operatorDate).Message(i + 1); msg != "" {
			warnings = append(warnings, msg)
		}
	}
	return warnings
}
