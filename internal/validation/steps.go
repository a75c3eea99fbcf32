package validation

import (
	"fmt"
	"strings"

	"github.com/nao1215/effbatt/internal/model"
)

// Step is a data entry stage of a vehicle record.
type Step string

const (
	// StepBatteries covers production dates, manufacturers and serials.
	StepBatteries Step = "batteries"
	// StepMeasurements covers the voltage/current checkpoints.
	StepMeasurements Step = "measurements"
	// StepDensity covers the 24 density readings.
	StepDensity Step = "density"
	// StepOutcome covers the outcome and notes.
	StepOutcome Step = "outcome"
)

// ParseStep converts a step name into a Step.
func ParseStep(s string) (Step, error) {
	switch Step(strings.ToLower(strings.TrimSpace(s))) {
	case StepBatteries:
		return StepBatteries, nil
	case StepMeasurements:
		return StepMeasurements, nil
	case StepDensity:
		return StepDensity, nil
	case StepOutcome:
		return StepOutcome, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStep, s)
	}
}

// Steps returns the data entry steps for a verification type, in order.
func Steps(t model.VerificationType) []Step {
	steps := []Step{StepBatteries}
	if t.IncludesThreeMonth() {
		steps = append(steps, StepMeasurements)
	}
	if t.IncludesSixMonth() {
		steps = append(steps, StepDensity)
	}
	return append(steps, StepOutcome)
}

// CheckStep runs the gate of a step before it is left and returns a *StepError
// when it is blocked. Measurement warnings block the measurements step. On the
// density step range errors block first; the spread check runs only once every
// reading is in range.
func CheckStep(step Step, d model.MeasurementData) error {
	var messages []string
	switch step {
	case StepMeasurements:
		messages = MeasurementWarnings(d)
	case StepDensity:
		messages = DensityErrors(d)
		if len(messages) == 0 {
			messages = DensityWarnings(d)
		}
	case StepBatteries, StepOutcome:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStep, step)
	}
	if len(messages) > 0 {
		return &StepError{Step: step, Messages: messages}
	}
	return nil
}

// CheckGeneration is the gate run before a report is generated. It returns a
// *MissingFieldsError when any required field is empty and otherwise an
// *ExpiredInstrumentsError when an instrument expired before the operator date.
func CheckGeneration(op model.Operator, inst model.Instruments, site model.Site, v model.Vehicle) error {
	if missing := MissingFields(op, inst, site, v); len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	if warnings := InstrumentExpiryWarnings(inst, op.Date, v.Type); len(warnings) > 0 {
		return &ExpiredInstrumentsError{Warnings: warnings}
	}
	return nil
}
