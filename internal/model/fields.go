package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownField is returned when a field key does not name a measurement field.
var ErrUnknownField = errors.New("unknown measurement field")

// Field keys are the storage names of the paper data entry form:
//
//	b1Data b1Costr b1Sn1 b1Sn2   pack 1 production date, manufacturer, serials
//	b2Data b2Costr b2Sn3 b2Sn4   pack 2
//	id2Vm id2Vv id2Iv ...         checkpoint multimeter voltage, vehicle voltage, vehicle current
//	p1e1 ... p2e12                density readings per pack and element
//	esito note                    outcome and notes
//
// Keys are matched case-insensitively.

// FieldKeys returns every measurement field key in form order.
func FieldKeys() []string {
	keys := []string{
		"b1Data", "b1Costr", "b1Sn1", "b1Sn2",
		"b2Data", "b2Costr", "b2Sn3", "b2Sn4",
	}
	for _, c := range Checkpoints {
		keys = append(keys, c.key()+"Vm", c.key()+"Vv", c.key()+"Iv")
	}
	keys = append(keys, DensityKeys(1)...)
	keys = append(keys, DensityKeys(2)...)
	return append(keys, "esito", "note")
}

// DensityKeys returns the field keys of a pack's density readings ("p1e1".."p1e12").
func DensityKeys(pack int) []string {
	keys := make([]string, 0, ElementsPerPack)
	for i := 1; i <= ElementsPerPack; i++ {
		keys = append(keys, DensityKey(pack, i))
	}
	return keys
}

// DensityKey returns the field key of one density reading. pack and element are one-based.
func DensityKey(pack, element int) string {
	return fmt.Sprintf("p%de%d", pack, element)
}

// SetField stores value under the given key.
func (d *MeasurementData) SetField(key, value string) error {
	p, err := d.locate(key)
	if err != nil {
		return err
	}
	if p.density {
		d.SetDensityValue(p.pack, p.element, value)
		return nil
	}
	if p.outcome {
		o, err := ParseOutcome(value)
		if err != nil {
			return err
		}
		d.Outcome = o
		return nil
	}
	*p.str = value
	return nil
}

// Field returns the value stored under the given key.
func (d *MeasurementData) Field(key string) (string, error) {
	p, err := d.locate(key)
	if err != nil {
		return "", err
	}
	switch {
	case p.density:
		return d.DensityValue(p.pack, p.element), nil
	case p.outcome:
		return string(d.Outcome), nil
	default:
		return *p.str, nil
	}
}

// fieldRef points at the storage behind a field key.
type fieldRef struct {
	str     *string
	density bool
	pack    int
	element int
	outcome bool
}

// locate resolves a key into a reference to its storage.
func (d *MeasurementData) locate(key string) (fieldRef, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	switch k {
	case "esito", "outcome":
		return fieldRef{outcome: true}, nil
	case "note", "notes":
		return fieldRef{str: &d.Notes}, nil
	case "b1data":
		return fieldRef{str: &d.Packs[0].ProductionDate}, nil
	case "b1costr":
		return fieldRef{str: &d.Packs[0].Manufacturer}, nil
	case "b1sn1":
		return fieldRef{str: &d.Packs[0].Serials[0]}, nil
	case "b1sn2":
		return fieldRef{str: &d.Packs[0].Serials[1]}, nil
	case "b2data":
		return fieldRef{str: &d.Packs[1].ProductionDate}, nil
	case "b2costr":
		return fieldRef{str: &d.Packs[1].Manufacturer}, nil
	case "b2sn3":
		return fieldRef{str: &d.Packs[1].Serials[0]}, nil
	case "b2sn4":
		return fieldRef{str: &d.Packs[1].Serials[1]}, nil
	}

	for _, c := range Checkpoints {
		prefix := strings.ToLower(c.key())
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		r := &d.Readings[c]
		switch strings.TrimPrefix(k, prefix) {
		case "vm":
			return fieldRef{str: &r.MultimeterVoltage}, nil
		case "vv":
			return fieldRef{str: &r.VehicleVoltage}, nil
		case "iv":
			return fieldRef{str: &r.VehicleCurrent}, nil
		}
	}

	if pack, element, ok := parseDensityKey(k); ok {
		return fieldRef{density: true, pack: pack, element: element}, nil
	}

	return fieldRef{}, fmt.Errorf("%w: %s", ErrUnknownField, key)
}

// parseDensityKey parses "p<pack>e<element>" keys.
func parseDensityKey(k string) (int, int, bool) {
	if !strings.HasPrefix(k, "p") {
		return 0, 0, false
	}
	packStr, elemStr, found := strings.Cut(k[1:], "e")
	if !found {
		return 0, 0, false
	}
	pack, err := strconv.Atoi(packStr)
	if err != nil || pack < 1 || pack > PackCount {
		return 0, 0, false
	}
	element, err := strconv.Atoi(elemStr)
	if err != nil || element < 1 || element > ElementsPerPack {
		return 0, 0, false
	}
	return pack, element, true
}
