package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
// Results wrap one of these sentinels so callers can branch with errors.Is
// while showing the wrapped, human-readable message to the user.
var (
	// ErrLength is returned when an identifier has the wrong number of digits.
	ErrLength = errors.New("invalid length")

	// ErrFormat is returned when an identifier contains characters other than digits.
	ErrFormat = errors.New("invalid format")

	// ErrPrefix is returned when a work order does not start with WorkOrderPrefix.
	ErrPrefix = errors.New("invalid prefix")

	// ErrChecksum is returned when a vehicle number's check digit does not match.
	ErrChecksum = errors.New("check digit mismatch")

	// ErrDensityMissing is returned when a density reading is empty.
	ErrDensityMissing = errors.New("density value missing")

	// ErrDensityParse is returned when a density reading is not a number.
	ErrDensityParse = errors.New("density value not a number")

	// ErrDensityRange is returned when a density reading is outside [DensityMin, DensityMax].
	ErrDensityRange = errors.New("density out of range")

	// ErrIncomplete is wrapped by MissingFieldsError.
	ErrIncomplete = errors.New("record incomplete")

	// ErrInstrumentExpired is wrapped by ExpiredInstrumentsError.
	ErrInstrumentExpired = errors.New("instrument expired")

	// ErrStepBlocked is wrapped by StepError.
	ErrStepBlocked = errors.New("step blocked")

	// ErrUnknownStep is returned when a step name is not recognized.
	ErrUnknownStep = errors.New("unknown step")
)

// MissingFieldsError lists every required field that is still empty, in form order.
type MissingFieldsError struct {
	Fields []string
}

// Error implements the error interface.
func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("cannot generate the report, missing: %s", strings.Join(e.Fields, ", "))
}

// Unwrap returns ErrIncomplete.
func (e *MissingFieldsError) Unwrap() error {
	return ErrIncomplete
}

// ExpiredInstrumentsError carries the expiry warnings that blocked generation.
type ExpiredInstrumentsError struct {
	Warnings []string
}

// Error implements the error interface.
func (e *ExpiredInstrumentsError) Error() string {
	return "cannot generate the report: " + strings.Join(e.Warnings, "; ")
}

// Unwrap returns ErrInstrumentExpired.
func (e *ExpiredInstrumentsError) Unwrap() error {
	return ErrInstrumentExpired
}

// StepError carries the messages that keep a data entry step from being left.
type StepError struct {
	Step     Step
	Messages []string
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("cannot leave step %s: %s", e.Step, strings.Join(e.Messages, "; "))
}

// Unwrap returns ErrStepBlocked.
func (e *StepError) Unwrap() error {
	return ErrStepBlocked
}
