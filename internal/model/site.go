package model

import "errors"

// MaxVehiclesPerSite is the capacity of a site.
const MaxVehiclesPerSite = 8

// Site and vehicle errors.
var (
	// ErrSiteFull is returned when adding a vehicle to a site that already holds MaxVehiclesPerSite.
	ErrSiteFull = errors.New("a site holds at most 8 vehicles")
	// ErrEmptySiteName is returned when a site is saved without a name.
	ErrEmptySiteName = errors.New("site name cannot be empty")
	// ErrEmptyVehicleNumber is returned when a vehicle is saved without a number.
	ErrEmptyVehicleNumber = errors.New("vehicle number cannot be empty")
	// ErrSiteNotFound is returned when a site index is out of range.
	ErrSiteNotFound = errors.New("site not found")
	// ErrVehicleNotFound is returned when a vehicle index is out of range.
	ErrVehicleNotFound = errors.New("vehicle not found")
)

// Site is a technical site (sede) grouping vehicles under one work order.
type Site struct {
	// Name is the site designation (e.g. "C3010R").
	Name string `json:"name"`

	// WorkOrder is the 12-digit work-order code (ODL); it may be empty.
	WorkOrder string `json:"work_order,omitempty"`

	// Vehicles are ordered; a vehicle's index is its identity within the site.
	Vehicles []Vehicle `json:"vehicles"`
}

// Vehicle is one vehicle under verification.
type Vehicle struct {
	// Number is the 12-digit vehicle number, usually formatted "11digits-check".
	Number string `json:"number"`

	// Type selects the checks to perform.
	Type VerificationType `json:"type"`

	// Data is the measurement record.
	Data MeasurementData `json:"data"`

	// PDFGenerated is set once a report has been generated for the vehicle.
	PDFGenerated bool `json:"pdf_generated"`
}

// NewVehicle creates a vehicle with an empty measurement record shaped for its type.
func NewVehicle(number string, t VerificationType) Vehicle {
	return Vehicle{
		Number: number,
		Type:   t,
		Data:   NewMeasurementData(t),
	}
}

// WithType returns a copy of the vehicle switched to another verification type.
// Existing measurements are kept; a density set is allocated when the new type needs one.
func (v Vehicle) WithType(t VerificationType) Vehicle {
	v.Type = t
	v.Data = v.Data.Clone()
	if t.IncludesSixMonth() && v.Data.Density == nil {
		v.Data.Density = &DensitySet{}
	}
	return v
}

// IsFull reports whether the site has reached its vehicle capacity.
func (s Site) IsFull() bool {
	return len(s.Vehicles) >= MaxVehiclesPerSite
}

// clone returns a deep copy of the site.
func (s Site) clone() Site {
	vehicles := make([]Vehicle, len(s.Vehicles))
	for i, v := range s.Vehicles {
		v.Data = v.Data.Clone()
		vehicles[i] = v
	}
	s.Vehicles = vehicles
	return s
}
