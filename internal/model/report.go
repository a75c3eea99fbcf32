package model

import "time"

// Report is the history record written after every successful generation.
// It is an immutable snapshot; the only transition allowed is Shared
// going from false to true.
type Report struct {
	// ID is deterministic per vehicle number, verification type and operator date,
	// so regenerating the same verification replaces the previous record.
	ID string `json:"id"`

	// VehicleNumber is the vehicle's number as entered.
	VehicleNumber string `json:"vehicle_number"`

	// TypeLabel is the verification type history label ("3Mesi", "6Mesi", "3+6Mesi").
	TypeLabel string `json:"type_label"`

	// OperatorDate is the operator reference date formatted dd/mm/yyyy.
	OperatorDate string `json:"operator_date"`

	// SiteName and WorkOrder identify the site the vehicle belonged to.
	SiteName  string `json:"site_name"`
	WorkOrder string `json:"work_order,omitempty"`

	// Filename is the name the rendered document is shared under.
	Filename string `json:"filename"`

	// Document holds the rendered form bytes.
	Document []byte `json:"-"`

	// DocumentHash is the xxh3 hash of Document, hex encoded.
	DocumentHash string `json:"document_hash,omitempty"`

	// CreatedAt is the generation time.
	CreatedAt time.Time `json:"created_at"`

	// Shared is true once the report has been shared.
	Shared bool `json:"shared"`
}

// MarkShared flags the report as shared. Sharing is one-way: there is no
// way to clear the flag.
func (r *Report) MarkShared() {
	r.Shared = true
}
