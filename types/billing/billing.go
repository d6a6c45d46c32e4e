package billing

import (
	"fmt"

	"medcare/utils"
)

// BillLine is one drug line of an ad-hoc bill, priced from the current table.
type BillLine struct {
	DrugName string `json:"drug_name"`
	Quantity int    `json:"quantity"`
}

// CreateBillRequest creates an invoice from a set of drug lines.
type CreateBillRequest struct {
	CustomerPhone string     `json:"customer_phone"`
	Items         []BillLine `json:"items"`
}

func (r CreateBillRequest) Validate() error {
	if !utils.ValidatePhoneNumber(r.CustomerPhone) {
		return fmt.Errorf("invalid customer phone")
	}
	if len(r.Items) == 0 {
		return fmt.Errorf("at least one bill item is required")
	}
	for _, item := range r.Items {
		if item.DrugName == "" {
			return fmt.Errorf("drug name is required on every bill item")
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("quantity must be positive for %s", item.DrugName)
		}
	}
	return nil
}
