package validation

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/nao1215/effbatt/internal/model"
)

// DefaultExpiryHorizonDays is how many days ahead UpcomingExpiry looks by default.
const DefaultExpiryHorizonDays = 20

// ExpiryKind classifies an ExpiryNotice.
type ExpiryKind string

const (
	// ExpiryExpired means the instrument expires today or expired already.
	ExpiryExpired ExpiryKind = "expired"
	// ExpiryUpcoming means the instrument expires within the horizon.
	ExpiryUpcoming ExpiryKind = "upcoming"
)

// Urgency is the display category of a days-remaining count.
type Urgency string

const (
	// UrgencyCritical is used for expired instruments.
	UrgencyCritical Urgency = "critical"
	// UrgencyHigh is used for instruments expiring within 10 days.
	UrgencyHigh Urgency = "high"
	// UrgencyModerate is used for the rest.
	UrgencyModerate Urgency = "moderate"
)

// UrgencyFor classifies days remaining until expiry.
func UrgencyFor(daysRemaining int) Urgency {
	switch {
	case daysRemaining <= 0:
		return UrgencyCritical
	case daysRemaining <= 10:
		return UrgencyHigh
	default:
		return UrgencyModerate
	}
}

// ExpiryNotice is an advance warning about an instrument calibration expiry.
type ExpiryNotice struct {
	Kind            ExpiryKind           `json:"kind"`
	Instrument      model.InstrumentKind `json:"instrument"`
	InstrumentLabel string               `json:"instrument_label"`
	ID              string               `json:"id"`
	FormattedExpiry string               `json:"formatted_expiry"`
	DaysRemaining   int                  `json:"days_remaining"`
	Message         string               `json:"message"`
}

// Urgency returns the display category of the notice.
func (n ExpiryNotice) Urgency() Urgency {
	return UrgencyFor(n.DaysRemaining)
}

// InstrumentExpiryWarnings reports the instruments that expired before the
// operator date. The densitometer is checked only when the verification type
// includes the six-month check. Dates are ISO strings and compare lexically;
// an empty expiry or operator date skips the check.
func InstrumentExpiryWarnings(inst model.Instruments, operatorDate string, t model.VerificationType) []string {
	var warnings []string
	if w, ok := expiredWarning(model.InstrumentMultimeter, inst.MultimeterExpiry, operatorDate); ok {
		warnings = append(warnings, w)
	}
	if t.IncludesSixMonth() {
		if w, ok := expiredWarning(model.InstrumentDensitometer, inst.DensitometerExpiry, operatorDate); ok {
			warnings = append(warnings, w)
		}
	}
	return warnings
}

// PreventiveExpiryWarnings is InstrumentExpiryWarnings for both instruments
// regardless of verification type. It runs whenever an instrument or the
// operator date changes.
func PreventiveExpiryWarnings(inst model.Instruments, operatorDate string) []string {
	var warnings []string
	if w, ok := expiredWarning(model.InstrumentMultimeter, inst.MultimeterExpiry, operatorDate); ok {
		warnings = append(warnings, w)
	}
	if w, ok := expiredWarning(model.InstrumentDensitometer, inst.DensitometerExpiry, operatorDate); ok {
		warnings = append(warnings, w)
	}
	return warnings
}

func expiredWarning(kind model.InstrumentKind, expiry, operatorDate string) (string, bool) {
	expiry = strings.TrimSpace(expiry)
	operatorDate = strings.TrimSpace(operatorDate)
	if expiry == "" || operatorDate == "" || expiry >= operatorDate {
		return "", false
	}
	return fmt.Sprintf("%s expired (expiry: %s)", strings.ToLower(kind.Label()), FormatDate(expiry)), true
}

// UpcomingExpiry lists the instruments, among those with both an identifier and
// an expiry, that are expired or expire within horizonDays of today. Days are
// counted between midnights and rounded up. The result is ordered by
// days remaining, most urgent first. Unparsable expiry dates are skipped.
// today is read as a calendar date in its own location.
func UpcomingExpiry(inst model.Instruments, today time.Time, horizonDays int) []ExpiryNotice {
	var notices []ExpiryNotice
	check := func(kind model.InstrumentKind, id, expiry string) {
		id = strings.TrimSpace(id)
		expiry = strings.TrimSpace(expiry)
		if id == "" || expiry == "" {
			return
		}
		days, ok := daysUntil(expiry, today)
		if !ok {
			return
		}
		n := ExpiryNotice{
			Instrument:      kind,
			InstrumentLabel: kind.Label(),
			ID:              id,
			FormattedExpiry: FormatDate(expiry),
			DaysRemaining:   days,
		}
		switch {
		case days <= 0:
			n.Kind = ExpiryExpired
			n.Message = fmt.Sprintf("%s %s EXPIRED (%s)", n.InstrumentLabel, id, n.FormattedExpiry)
		case days <= horizonDays:
			n.Kind = ExpiryUpcoming
			n.Message = fmt.Sprintf("%s %s expires in %d days (%s)", n.InstrumentLabel, id, days, n.FormattedExpiry)
		default:
			return
		}
		notices = append(notices, n)
	}

	check(model.InstrumentMultimeter, inst.MultimeterID, inst.MultimeterExpiry)
	check(model.InstrumentDensitometer, inst.DensitometerID, inst.DensitometerExpiry)

	slices.SortStableFunc(notices, func(a, b ExpiryNotice) int {
		return a.DaysRemaining - b.DaysRemaining
	})
	return notices
}

// daysUntil returns ceil((expiry - today) / 24h) with both dates taken at
// midnight. Calendar dates are compared in UTC so DST shifts do not add a day.
func daysUntil(expiry string, today time.Time) (int, bool) {
	exp, err := time.Parse(isoLayout, expiry)
	if err != nil {
		return 0, false
	}
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Ceil(exp.Sub(start).Hours() / 24)), true
}
