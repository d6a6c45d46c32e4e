package catalog

import (
	"fmt"
)

// AddDrugRequest creates a drug record with an optional initial price.
type AddDrugRequest struct {
	DrugID   uint     `json:"drug_id"`
	Name     string   `json:"name"`
	ExpDate  string   `json:"exp_date"` // YYYY-MM-DD
	Usage    string   `json:"usage"`
	Quantity int      `json:"quantity"`
	Price    *float64 `json:"price,omitempty"`
}

func (r AddDrugRequest) Validate() error {
	if r.DrugID == 0 {
		return fmt.Errorf("drug_id is required")
	}
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.ExpDate == "" {
		return fmt.Errorf("exp_date is required")
	}
	if r.Usage == "" {
		return fmt.Errorf("usage is required")
	}
	if r.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	if r.Price != nil && *r.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	return nil
}

type UpdateUsageRequest struct {
	Usage string `json:"usage"`
}

func (r UpdateUsageRequest) Validate() error {
	if r.Usage == "" {
		return fmt.Errorf("usage is required")
	}
	return nil
}

type UpdatePriceRequest struct {
	Price float64 `json:"price"`
}

func (r UpdatePriceRequest) Validate() error {
	if r.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	return nil
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (r UpdateQuantityRequest) Validate() error {
	if r.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	return nil
}

// DrugView is a drug row joined with its current unit price.
type DrugView struct {
	DrugID       uint     `json:"drug_id"`
	Name         string   `json:"name"`
	ExpDate      string   `json:"exp_date"`
	Usage        string   `json:"usage"`
	Quantity     int      `json:"quantity"`
	PricePerUnit *float64 `json:"price_per_unit,omitempty"`
}
