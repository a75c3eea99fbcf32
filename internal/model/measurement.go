package model

import (
	"errors"
	"strings"
)

// Measurement record sizes.
const (
	// PackCount is the number of battery packs per vehicle.
	PackCount = 2
	// ElementsPerPack is the number of cells whose density is read per pack.
	ElementsPerPack = 12
	// CheckpointCount is the number of voltage/current checkpoints.
	CheckpointCount = 4
)

// ErrInvalidOutcome is returned when an outcome string is not POSITIVO or NEGATIVO.
var ErrInvalidOutcome = errors.New("invalid outcome: use POSITIVO or NEGATIVO")

// Checkpoint names a measurement point during the discharge test cycle.
type Checkpoint int

const (
	// CheckpointID2 is taken with the pack fully charged.
	CheckpointID2 Checkpoint = iota
	// CheckpointID4 is taken at the start of discharge.
	CheckpointID4
	// CheckpointID5 is taken during discharge.
	CheckpointID5
	// CheckpointID6 is taken at the end of discharge.
	CheckpointID6
)

// Checkpoints lists every checkpoint in test order.
var Checkpoints = [CheckpointCount]Checkpoint{CheckpointID2, CheckpointID4, CheckpointID5, CheckpointID6}

// String returns the checkpoint label as printed on the form ("ID.2").
func (c Checkpoint) String() string {
	switch c {
	case CheckpointID2:
		return "ID.2"
	case CheckpointID4:
		return "ID.4"
	case CheckpointID5:
		return "ID.5"
	case CheckpointID6:
		return "ID.6"
	default:
		return unknownStr
	}
}

// key returns the storage key prefix ("id2").
func (c Checkpoint) key() string {
	return "id" + strings.TrimPrefix(c.String(), "ID.")
}

// Outcome is the pass/fail result of the verification.
type Outcome string

const (
	// OutcomeNone means no outcome has been chosen yet.
	OutcomeNone Outcome = ""
	// OutcomePositive means the batteries passed.
	OutcomePositive Outcome = "POSITIVO"
	// OutcomeNegative means the batteries failed.
	OutcomeNegative Outcome = "NEGATIVO"
)

// ParseOutcome converts user input into an Outcome. The empty string clears the outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return OutcomeNone, nil
	case "POSITIVO", "POSITIVE", "PASS", "OK":
		return OutcomePositive, nil
	case "NEGATIVO", "NEGATIVE", "FAIL", "KO":
		return OutcomeNegative, nil
	default:
		return OutcomeNone, ErrInvalidOutcome
	}
}

// BatteryPack describes one physical battery pack.
type BatteryPack struct {
	// ProductionDate is the manufacture date in MM/YYYY form.
	ProductionDate string `json:"production_date"`

	// Manufacturer is the pack maker as printed on the label.
	Manufacturer string `json:"manufacturer"`

	// Serials holds the two serial numbers of the pack.
	// Pack 1 carries S/N 1 and 2, pack 2 carries S/N 3 and 4.
	Serials [2]string `json:"serials"`
}

// Reading is one voltage/current triple taken at a checkpoint.
// Values are kept as entered so that an empty field stays distinguishable from zero.
type Reading struct {
	MultimeterVoltage string `json:"multimeter_voltage"`
	VehicleVoltage    string `json:"vehicle_voltage"`
	VehicleCurrent    string `json:"vehicle_current"`
}

// DensitySet holds the electrolyte density readings of both packs,
// indexed [pack][element] with zero-based indexes.
type DensitySet struct {
	Packs [PackCount][ElementsPerPack]string `json:"packs"`
}

// MeasurementData is the mutable record filled in for a vehicle.
type MeasurementData struct {
	// Packs are the two battery packs.
	Packs [PackCount]BatteryPack `json:"packs"`

	// Readings are indexed by Checkpoint.
	Readings [CheckpointCount]Reading `json:"readings"`

	// Density is present only for verification types that include the six-month check.
	Density *DensitySet `json:"density,omitempty"`

	// Outcome is the pass/fail result.
	Outcome Outcome `json:"outcome,omitempty"`

	// Notes is free text printed in the notes box.
	Notes string `json:"notes,omitempty"`
}

// NewMeasurementData creates an empty record shaped for the verification type.
func NewMeasurementData(t VerificationType) MeasurementData {
	var d MeasurementData
	if t.IncludesSixMonth() {
		d.Density = &DensitySet{}
	}
	return d
}

// Reading returns the reading taken at the checkpoint.
func (d MeasurementData) Reading(c Checkpoint) Reading {
	if c < 0 || int(c) >= CheckpointCount {
		return Reading{}
	}
	return d.Readings[c]
}

// DensityValue returns the reading of an element. pack and element are one-based.
// It returns "" when the record carries no density set or the position is out of range.
func (d MeasurementData) DensityValue(pack, element int) string {
	if d.Density == nil || pack < 1 || pack > PackCount || element < 1 || element > ElementsPerPack {
		return ""
	}
	return d.Density.Packs[pack-1][element-1]
}

// SetDensityValue stores the reading of an element, allocating the density set if needed.
// pack and element are one-based; out of range positions are ignored.
func (d *MeasurementData) SetDensityValue(pack, element int, value string) {
	if pack < 1 || pack > PackCount || element < 1 || element > ElementsPerPack {
		return
	}
	if d.Density == nil {
		d.Density = &DensitySet{}
	}
	d.Density.Packs[pack-1][element-1] = value
}

// Clone returns a deep copy of the record.
func (d MeasurementData) Clone() MeasurementData {
	if d.Density != nil {
		density := *d.Density
		d.Density = &density
	}
	return d
}
