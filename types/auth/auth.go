package auth

import (
	"fmt"

	"medcare/utils"
)

// CustomerRegisterRequest is the signup payload for customers.
type CustomerRegisterRequest struct {
	Name        string `json:"name"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	State       string `json:"state"`
	Phone       string `json:"phone"`
	SSN         string `json:"ssn,omitempty"`
	InsuranceID *uint  `json:"insurance_id,omitempty"`
}

func (r CustomerRegisterRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	if r.State == "" {
		return fmt.Errorf("state is required")
	}
	if !utils.ValidateEmail(r.Email) {
		return fmt.Errorf("invalid email address")
	}
	if !utils.ValidatePhoneNumber(r.Phone) {
		return fmt.Errorf("invalid phone number")
	}
	if !utils.ValidateSSN(r.SSN) {
		return fmt.Errorf("SSN should be in format XXX-XX-XXXX")
	}
	return nil
}

type CustomerLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r CustomerLoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// ResetPasswordRequest resets a customer password by registered phone.
type ResetPasswordRequest struct {
	Phone       string `json:"phone"`
	NewPassword string `json:"new_password"`
}

func (r ResetPasswordRequest) Validate() error {
	if !utils.ValidatePhoneNumber(r.Phone) {
		return fmt.Errorf("invalid phone number")
	}
	if r.NewPassword == "" {
		return fmt.Errorf("new password is required")
	}
	return nil
}

// AgentRegisterRequest is the signup payload for delivery agents.
type AgentRegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

func (r AgentRegisterRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	if r.Address == "" {
		return fmt.Errorf("address is required")
	}
	if !utils.ValidatePhoneNumber(r.Phone) {
		return fmt.Errorf("invalid phone number")
	}
	return nil
}

type AgentLoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (r AgentLoginRequest) Validate() error {
	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r AdminLoginRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// UpdateProfileRequest updates the optional customer profile fields.
type UpdateProfileRequest struct {
	SSN         *string `json:"ssn,omitempty"`
	InsuranceID *uint   `json:"insurance_id,omitempty"`
}

func (r UpdateProfileRequest) Validate() error {
	if r.SSN == nil && r.InsuranceID == nil {
		return fmt.Errorf("nothing to update")
	}
	if r.SSN != nil && !utils.ValidateSSN(*r.SSN) {
		return fmt.Errorf("SSN should be in format XXX-XX-XXXX")
	}
	return nil
}
