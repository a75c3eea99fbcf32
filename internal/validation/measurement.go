package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nao1215/effbatt/internal/model"
)

const (
	// MinFinalVoltage is the lowest acceptable multimeter voltage at the end of discharge.
	MinFinalVoltage = 20.0
	// MinFinalCurrentRatio is the lowest acceptable end/start vehicle current ratio.
	MinFinalCurrentRatio = 0.5
)

// MeasurementWarnings runs the discharge sanity checks. Both checks are
// independent and both warnings are returned when both trigger:
//   - the ID.6 multimeter voltage is below MinFinalVoltage
//   - the ID.6 vehicle current is below half of a positive ID.4 vehicle current
//
// A check whose inputs are missing or not numeric is skipped.
func MeasurementWarnings(d model.MeasurementData) []string {
	var warnings []string

	final := d.Reading(model.CheckpointID6)
	if v, ok := parseNumber(final.MultimeterVoltage); ok && v < MinFinalVoltage {
		warnings = append(warnings, "final voltage below 20 V, out of range")
	}

	start, okStart := parseNumber(d.Reading(model.CheckpointID4).VehicleCurrent)
	end, okEnd := parseNumber(final.VehicleCurrent)
	if okStart && okEnd && start > 0 && end < start*MinFinalCurrentRatio {
		warnings = append(warnings, "final vehicle current below 50% of initial vehicle current")
	}

	return warnings
}

// decimalPattern matches plain decimal input: digits with an optional '.' or ',' fraction.
var decimalPattern = regexp.MustCompile(`^[+-]?\d+([.,]\d+)?$`)

// parseNumber parses a plain decimal number entered with either '.' or ',' as separator.
// Exponents, hex literals, digit separators and NaN/Inf spellings are rejected.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !decimalPattern.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
