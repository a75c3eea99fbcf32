package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Instrument template errors.
var (
	// ErrUnknownInstrumentKind is returned when an instrument kind is not recognized.
	ErrUnknownInstrumentKind = errors.New("unknown instrument kind: use multimeter or densitometer")
	// ErrEmptyInstrumentID is returned when a template has no instrument identifier.
	ErrEmptyInstrumentID = errors.New("instrument identifier cannot be empty")
	// ErrEmptyInstrumentExpiry is returned when a template has no expiry date.
	ErrEmptyInstrumentExpiry = errors.New("instrument expiry date cannot be empty")
)

// InstrumentKind distinguishes the two tracked measuring instruments.
type InstrumentKind string

const (
	// InstrumentMultimeter measures pack voltages.
	InstrumentMultimeter InstrumentKind = "multimeter"
	// InstrumentDensitometer measures electrolyte density.
	InstrumentDensitometer InstrumentKind = "densitometer"
)

// ParseInstrumentKind converts a user supplied kind into an InstrumentKind.
func ParseInstrumentKind(s string) (InstrumentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "multimeter", "multimetro", "mult":
		return InstrumentMultimeter, nil
	case "densitometer", "densimetro", "dens":
		return InstrumentDensitometer, nil
	default:
		return "", ErrUnknownInstrumentKind
	}
}

// Label returns the human-readable instrument name.
func (k InstrumentKind) Label() string {
	switch k {
	case InstrumentMultimeter:
		return "Multimeter"
	case InstrumentDensitometer:
		return "Densitometer"
	default:
		return unknownStr
	}
}

// Instruments is the live instrument pair used for every vehicle.
// Expiry dates are ISO strings (YYYY-MM-DD) so they compare lexically.
type Instruments struct {
	MultimeterID       string `json:"multimeter_id"`
	MultimeterExpiry   string `json:"multimeter_expiry"`
	DensitometerID     string `json:"densitometer_id"`
	DensitometerExpiry string `json:"densitometer_expiry"`
}

// Apply copies a template's identifier and expiry into the matching slot of the live pair.
func (in Instruments) Apply(t InstrumentTemplate) Instruments {
	switch t.Kind {
	case InstrumentMultimeter:
		in.MultimeterID = t.InstrumentID
		in.MultimeterExpiry = t.Expiry
	case InstrumentDensitometer:
		in.DensitometerID = t.InstrumentID
		in.DensitometerExpiry = t.Expiry
	}
	return in
}

// InstrumentTemplate is a saved instrument configuration, independent of the live pair.
type InstrumentTemplate struct {
	// ID is the template's own identifier (UUID).
	ID string `json:"id"`

	// Kind tells which slot of the live pair the template fills.
	Kind InstrumentKind `json:"kind"`

	// Label is a free-text description (e.g. "Fluke spare").
	Label string `json:"label,omitempty"`

	// InstrumentID is the instrument's serial or asset identifier.
	InstrumentID string `json:"instrument_id"`

	// Expiry is the calibration expiry in ISO form.
	Expiry string `json:"expiry"`

	// CreatedAt is when the template was saved.
	CreatedAt time.Time `json:"created_at"`
}

// NewInstrumentTemplate creates a template with a fresh identifier.
func NewInstrumentTemplate(kind InstrumentKind, label, instrumentID, expiry string) (InstrumentTemplate, error) {
	if kind != InstrumentMultimeter && kind != InstrumentDensitometer {
		return InstrumentTemplate{}, ErrUnknownInstrumentKind
	}
	instrumentID = strings.TrimSpace(instrumentID)
	if instrumentID == "" {
		return InstrumentTemplate{}, ErrEmptyInstrumentID
	}
	expiry = strings.TrimSpace(expiry)
	if expiry == "" {
		return InstrumentTemplate{}, ErrEmptyInstrumentExpiry
	}
	return InstrumentTemplate{
		ID:           uuid.New().String(),
		Kind:         kind,
		Label:        NormalizeText(label),
		InstrumentID: instrumentID,
		Expiry:       expiry,
		CreatedAt:    time.Now(),
	}, nil
}
