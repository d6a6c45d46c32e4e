package prescription

import (
	"fmt"

	"medcare/utils"
)

// DrugLine is one prescribed drug entry.
type DrugLine struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	RefillLimit int    `json:"refill_limit"`
}

// CreateRequest adds a prescription with its drug lines.
type CreateRequest struct {
	SSN      string     `json:"ssn"`
	DoctorID uint       `json:"doctor_id"`
	Drugs    []DrugLine `json:"drugs"`
}

func (r CreateRequest) Validate() error {
	if !utils.ValidateSSN(r.SSN) || r.SSN == "" {
		return fmt.Errorf("SSN should be in format XXX-XX-XXXX")
	}
	if r.DoctorID == 0 {
		return fmt.Errorf("doctor_id is required")
	}
	if len(r.Drugs) == 0 {
		return fmt.Errorf("at least one drug line is required")
	}
	seen := make(map[string]bool, len(r.Drugs))
	for _, d := range r.Drugs {
		if d.Name == "" {
			return fmt.Errorf("drug name is required on every line")
		}
		if d.Quantity <= 0 {
			return fmt.Errorf("quantity must be positive for %s", d.Name)
		}
		if d.RefillLimit < 0 {
			return fmt.Errorf("refill limit cannot be negative for %s", d.Name)
		}
		if seen[d.Name] {
			return fmt.Errorf("drug %s appears more than once", d.Name)
		}
		seen[d.Name] = true
	}
	return nil
}
