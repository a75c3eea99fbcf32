package model

import (
	"fmt"
	"strings"
)

// State is the single application snapshot: one operator, one live
// instrument pair and the ordered list of sites.
//
// Mutating methods work on the receiver in place; callers that need an
// unchanged snapshot take a Clone first.
type State struct {
	Operator    Operator    `json:"operator"`
	Instruments Instruments `json:"instruments"`
	Sites       []Site      `json:"sites"`
}

// NewState returns the empty default state.
func NewState() *State {
	return &State{Sites: make([]Site, 0)}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := &State{
		Operator:    s.Operator,
		Instruments: s.Instruments,
		Sites:       make([]Site, len(s.Sites)),
	}
	for i, site := range s.Sites {
		c.Sites[i] = site.clone()
	}
	return c
}

// Site returns a copy of the site at index.
func (s *State) Site(index int) (Site, error) {
	if index < 0 || index >= len(s.Sites) {
		return Site{}, fmt.Errorf("%w: index %d", ErrSiteNotFound, index)
	}
	return s.Sites[index], nil
}

// Vehicle returns the site and a copy of the vehicle at the given indexes.
func (s *State) Vehicle(siteIndex, vehicleIndex int) (Site, Vehicle, error) {
	site, err := s.Site(siteIndex)
	if err != nil {
		return Site{}, Vehicle{}, err
	}
	if vehicleIndex < 0 || vehicleIndex >= len(site.Vehicles) {
		return Site{}, Vehicle{}, fmt.Errorf("%w: site %d, index %d", ErrVehicleNotFound, siteIndex, vehicleIndex)
	}
	return site, site.Vehicles[vehicleIndex], nil
}

// AddSite appends a new empty site and returns its index.
// The work order is stored as given; format checks belong to the caller.
func (s *State) AddSite(name, workOrder string) (int, error) {
	name = NormalizeText(name)
	if name == "" {
		return 0, ErrEmptySiteName
	}
	s.Sites = append(s.Sites, Site{
		Name:      name,
		WorkOrder: strings.TrimSpace(workOrder),
		Vehicles:  make([]Vehicle, 0),
	})
	return len(s.Sites) - 1, nil
}

// UpdateSite renames a site and replaces its work order, keeping its vehicles.
func (s *State) UpdateSite(index int, name, workOrder string) error {
	if _, err := s.Site(index); err != nil {
		return err
	}
	name = NormalizeText(name)
	if name == "" {
		return ErrEmptySiteName
	}
	s.Sites[index].Name = name
	s.Sites[index].WorkOrder = strings.TrimSpace(workOrder)
	return nil
}

// DeleteSite removes a site together with all of its vehicles.
func (s *State) DeleteSite(index int) error {
	if _, err := s.Site(index); err != nil {
		return err
	}
	s.Sites = append(s.Sites[:index], s.Sites[index+1:]...)
	return nil
}

// AddVehicle appends a vehicle with an empty measurement record to a site
// and returns its index. It fails with ErrSiteFull once the site holds
// MaxVehiclesPerSite vehicles.
func (s *State) AddVehicle(siteIndex int, number string, t VerificationType) (int, error) {
	site, err := s.Site(siteIndex)
	if err != nil {
		return 0, err
	}
	number = strings.TrimSpace(number)
	if number == "" {
		return 0, ErrEmptyVehicleNumber
	}
	if site.IsFull() {
		return 0, ErrSiteFull
	}
	s.Sites[siteIndex].Vehicles = append(s.Sites[siteIndex].Vehicles, NewVehicle(number, t))
	return len(s.Sites[siteIndex].Vehicles) - 1, nil
}

// UpdateVehicle changes a vehicle's number and verification type, keeping its measurements.
func (s *State) UpdateVehicle(siteIndex, vehicleIndex int, number string, t VerificationType) error {
	_, v, err := s.Vehicle(siteIndex, vehicleIndex)
	if err != nil {
		return err
	}
	number = strings.TrimSpace(number)
	if number == "" {
		return ErrEmptyVehicleNumber
	}
	v = v.WithType(t)
	v.Number = number
	s.Sites[siteIndex].Vehicles[vehicleIndex] = v
	return nil
}

// DeleteVehicle removes a vehicle; later vehicles shift down one index.
func (s *State) DeleteVehicle(siteIndex, vehicleIndex int) error {
	if _, _, err := s.Vehicle(siteIndex, vehicleIndex); err != nil {
		return err
	}
	vehicles := s.Sites[siteIndex].Vehicles
	s.Sites[siteIndex].Vehicles = append(vehicles[:vehicleIndex], vehicles[vehicleIndex+1:]...)
	return nil
}

// UpdateVehicleData merges field values (keyed as in FieldKeys) into a vehicle's record.
// Either every field is applied or none is.
func (s *State) UpdateVehicleData(siteIndex, vehicleIndex int, fields map[string]string) error {
	_, v, err := s.Vehicle(siteIndex, vehicleIndex)
	if err != nil {
		return err
	}
	data := v.Data.Clone()
	for key, value := range fields {
		if err := data.SetField(key, value); err != nil {
			return err
		}
	}
	s.Sites[siteIndex].Vehicles[vehicleIndex].Data = data
	return nil
}

// ReplaceVehicleData overwrites a vehicle's whole measurement record.
func (s *State) ReplaceVehicleData(siteIndex, vehicleIndex int, data MeasurementData) error {
	if _, _, err := s.Vehicle(siteIndex, vehicleIndex); err != nil {
		return err
	}
	s.Sites[siteIndex].Vehicles[vehicleIndex].Data = data.Clone()
	return nil
}

// MarkVehiclePDFGenerated sets the vehicle's PDF generated flag.
func (s *State) MarkVehiclePDFGenerated(siteIndex, vehicleIndex int) error {
	if _, _, err := s.Vehicle(siteIndex, vehicleIndex); err != nil {
		return err
	}
	s.Sites[siteIndex].Vehicles[vehicleIndex].PDFGenerated = true
	return nil
}
