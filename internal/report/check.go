package report

import (
	"github.com/nao1215/effbatt/internal/model"
	"github.com/nao1215/effbatt/internal/validation"
)

// Check gathers every validation result of one vehicle.
type Check struct {
	// VehicleNumber is the number as entered.
	VehicleNumber string `json:"vehicle_number"`

	// TypeLabel is the verification type header label.
	TypeLabel string `json:"type_label"`

	// SiteName is the site the vehicle belongs to.
	SiteName string `json:"site_name"`

	// NumberError is the vehicle number validation error, "" when valid.
	NumberError string `json:"number_error,omitempty"`

	// Missing lists the labels of the required fields still empty.
	Missing []string `json:"missing,omitempty"`

	// Errors block the steps they belong to.
	Errors []string `json:"errors,omitempty"`

	// Warnings are shown but do not block anything on their own.
	Warnings []string `json:"warnings,omitempty"`

	// Generated reports whether a report was already generated.
	Generated bool `json:"generated"`
}

// NewCheck runs the validators over a vehicle.
func NewCheck(op model.Operator, inst model.Instruments, site model.Site, v model.Vehicle) *Check {
	c := &Check{
		VehicleNumber: v.Number,
		TypeLabel:     v.Type.Label(),
		SiteName:      site.Name,
		Missing:       validation.MissingFields(op, inst, site, v),
		Generated:     v.PDFGenerated,
	}
	c.NumberError = validation.ValidateVehicleNumber(v.Number).Message()

	if wo := validation.ValidateWorkOrder(site.WorkOrder); site.WorkOrder != "" && !wo.Valid {
		c.Errors = append(c.Errors, "work order: "+wo.Message())
	}
	if v.Type.IncludesSixMonth() {
		c.Errors = append(c.Errors, validation.DensityErrors(v.Data)...)
		c.Warnings = append(c.Warnings, validation.DensityWarnings(v.Data)...)
	}
	if v.Type.IncludesThreeMonth() {
		c.Warnings = append(c.Warnings, validation.MeasurementWarnings(v.Data)...)
	}
	c.Warnings = append(c.Warnings, validation.BatteryAgeWarnings(v.Data, op.Date)...)
	c.Errors = append(c.Errors, validation.InstrumentExpiryWarnings(inst, op.Date, v.Type)...)
	return c
}

// Ready reports whether a report can be generated.
func (c *Check) Ready() bool {
	return len(c.Missing) == 0 && len(c.Errors) == 0
}
