package model

// Operator identifies the technician who signs the verification.
// There is exactly one operator per state; it is edited, never deleted.
type Operator struct {
	// Name is the operator's full name.
	Name string `json:"name"`

	// CID is the operator's company identifier code.
	CID string `json:"cid"`

	// Date is the reference date of the verification in ISO form (YYYY-MM-DD).
	// Instrument expiries are compared against it.
	Date string `json:"date"`
}
