package validation

import (
	"fmt"
	"strings"

	"github.com/nao1215/effbatt/internal/model"
)

// MissingFields returns the labels of every required field that is still
// empty, in form order. A field is present when it holds anything other than
// whitespace; "0" is present.
//
// Always required: operator name, CID and date, site name and work order,
// vehicle number, multimeter ID and expiry, both battery packs (production
// date, manufacturer, two serials each), the twelve voltage/current readings
// and the outcome. When the verification type includes the six-month check
// the densitometer ID and expiry and all 24 density readings are required too.
func MissingFields(op model.Operator, inst model.Instruments, site model.Site, v model.Vehicle) []string {
	c := &checklist{}
	d := v.Data

	c.require(op.Name, "Operator name")
	c.require(op.CID, "CID")
	c.require(op.Date, "Date")
	c.require(site.Name, "Site")
	c.require(site.WorkOrder, "ODL")
	c.require(v.Number, "Vehicle number")
	c.require(inst.MultimeterID, "Multimeter ID")
	c.require(inst.MultimeterExpiry, "Multimeter expiry")

	serial := 1
	for i, pack := range d.Packs {
		n := i + 1
		c.require(pack.ProductionDate, fmt.Sprintf("Pack %d production date", n))
		c.require(pack.Manufacturer, fmt.Sprintf("Pack %d manufacturer", n))
		for _, sn := range pack.Serials {
			c.require(sn, fmt.Sprintf("S/N %d", serial))
			serial++
		}
	}

	for _, cp := range model.Checkpoints {
		r := d.Reading(cp)
		c.require(r.MultimeterVoltage, cp.String()+" V multimeter")
		c.require(r.VehicleVoltage, cp.String()+" V vehicle")
		c.require(r.VehicleCurrent, cp.String()+" I vehicle")
	}

	c.require(string(d.Outcome), "Outcome")

	if v.Type.IncludesSixMonth() {
		c.require(inst.DensitometerID, "Densitometer ID")
		c.require(inst.DensitometerExpiry, "Densitometer expiry")
		for pack := 1; pack <= model.PackCount; pack++ {
			for element := 1; element <= model.ElementsPerPack; element++ {
				c.require(d.DensityValue(pack, element), fmt.Sprintf("Density pack %d element %d", pack, element))
			}
		}
	}

	return c.missing
}

// IsComplete reports whether MissingFields is empty.
func IsComplete(op model.Operator, inst model.Instruments, site model.Site, v model.Vehicle) bool {
	return len(MissingFields(op, inst, site, v)) == 0
}

// checklist accumulates the labels of empty fields.
type checklist struct {
	missing []string
}

// require records label when value is empty or only whitespace.
func (c *checklist) require(value, label string) {
	if strings.TrimSpace(value) == "" {
		c.missing = append(c.missing, label)
	}
}
