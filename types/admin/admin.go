package admin

import "fmt"

// CreateInsurancePlanRequest adds an insurance plan to the signup catalog.
type CreateInsurancePlanRequest struct {
	CompName string  `json:"comp_name"`
	Coverage float64 `json:"coverage"`
}

func (r CreateInsurancePlanRequest) Validate() error {
	if r.CompName == "" {
		return fmt.Errorf("company name is required")
	}
	if r.Coverage <= 0 || r.Coverage > 100 {
		return fmt.Errorf("coverage must be a percentage between 0 and 100")
	}
	return nil
}
