package model

import (
	"errors"
	"strings"
)

// ErrUnknownVerificationType is returned when a verification type tag is not recognized.
var ErrUnknownVerificationType = errors.New("unknown verification type: use 3M, 6M or 3M6M")

// VerificationType selects which checks a vehicle undergoes.
type VerificationType string

const (
	// VerificationThreeMonth is the quarterly check: voltage/current measurements only.
	VerificationThreeMonth VerificationType = "3M"
	// VerificationSixMonth is the half-yearly check: electrolyte density readings.
	VerificationSixMonth VerificationType = "6M"
	// VerificationBoth runs the quarterly and half-yearly checks together.
	VerificationBoth VerificationType = "3M6M"
)

// ParseVerificationType converts a user supplied tag into a VerificationType.
// Matching is case-insensitive and accepts "3M+6M" for the combined check.
func ParseVerificationType(s string) (VerificationType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "+", "")
	switch VerificationType(normalized) {
	case VerificationThreeMonth:
		return VerificationThreeMonth, nil
	case VerificationSixMonth:
		return VerificationSixMonth, nil
	case VerificationBoth:
		return VerificationBoth, nil
	default:
		return "", ErrUnknownVerificationType
	}
}

// IncludesThreeMonth reports whether the voltage/current measurement step applies.
func (v VerificationType) IncludesThreeMonth() bool {
	return v == VerificationThreeMonth || v == VerificationBoth
}

// IncludesSixMonth reports whether densitometer and density readings are required.
func (v VerificationType) IncludesSixMonth() bool {
	return v == VerificationSixMonth || v == VerificationBoth
}

// String returns the storage tag.
func (v VerificationType) String() string {
	return string(v)
}

// Label returns the text printed on the form header.
func (v VerificationType) Label() string {
	switch v {
	case VerificationThreeMonth:
		return "3 MESI"
	case VerificationSixMonth:
		return "6 MESI"
	case VerificationBoth:
		return "3+6 MESI"
	default:
		return unknownStr
	}
}

// HistoryLabel returns the compact label stored on history records.
func (v VerificationType) HistoryLabel() string {
	switch v {
	case VerificationThreeMonth:
		return "3Mesi"
	case VerificationSixMonth:
		return "6Mesi"
	default:
		return "3+6Mesi"
	}
}

// unknownStr is the string representation for unknown values.
const unknownStr = "unknown"
