package delivery

import (
	"fmt"

	agentModel "medcare/models/agent"
	"medcare/utils"
)

// UpdateProfileRequest updates the agent's bike number and/or address.
type UpdateProfileRequest struct {
	BikeNumber *string `json:"bike_number,omitempty"`
	Address    *string `json:"address,omitempty"`
}

func (r UpdateProfileRequest) Validate() error {
	if r.BikeNumber == nil && r.Address == nil {
		return fmt.Errorf("nothing to update")
	}
	if r.BikeNumber != nil {
		if err := utils.ValidateBikeNumber(*r.BikeNumber); err != nil {
			return err
		}
	}
	if r.Address != nil && *r.Address == "" {
		return fmt.Errorf("address cannot be empty")
	}
	return nil
}

// UpdateStatusRequest sets the agent's self-reported availability.
type UpdateStatusRequest struct {
	Status agentModel.AgentStatus `json:"status"`
}

func (r UpdateStatusRequest) Validate() error {
	if !r.Status.IsValid() {
		return fmt.Errorf("status must be one of Available, Busy, Offline")
	}
	return nil
}

// ChangePasswordRequest replaces the agent's password after verifying the
// current one.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" || r.NewPassword == "" || r.ConfirmPassword == "" {
		return fmt.Errorf("all fields are required")
	}
	if r.NewPassword != r.ConfirmPassword {
		return fmt.Errorf("new passwords do not match")
	}
	return nil
}
