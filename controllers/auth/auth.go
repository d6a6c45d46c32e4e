package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"medcare/constants"
	"medcare/logger"
	"medcare/middleware"
	adminModel "medcare/models/admin"
	agentModel "medcare/models/agent"
	customerModel "medcare/models/customer"
	"medcare/types"
	authTypes "medcare/types/auth"
	"medcare/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthController struct {
	db             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewAuthController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{db: db, loggerInstance: asyncLogger}
}

// Helper function to set secure cookies based on environment
func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: false,
		Secure:   isProduction,
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

// CustomerRegister creates a customer account. Email and SSN must be unique;
// the password is stored as a bcrypt digest only.
func (h *AuthController) CustomerRegister(c *fiber.Ctx) error {
	var req authTypes.CustomerRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		logger.Error(err.Error(), nil)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	var existing customerModel.Customer
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: "An account with this email already exists",
			Status:  fiber.StatusConflict,
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing customer", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to register customer",
			Status:  fiber.StatusInternalServerError,
		})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to register customer",
			Status:  fiber.StatusInternalServerError,
		})
	}

	newCustomer := customerModel.Customer{
		Uuid:         uuid.NewString(),
		Name:         req.Name,
		PasswordHash: hash,
		Email:        req.Email,
		State:        req.State,
		Phone:        req.Phone,
		InsuranceID:  req.InsuranceID,
	}
	if req.SSN != "" {
		newCustomer.SSN = &req.SSN
	}

	if err := h.db.Create(&newCustomer).Error; err != nil {
		logger.Error("Failed to create customer", err)
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: "Failed to register customer; email or SSN may already be in use",
			Status:  fiber.StatusConflict,
		})
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)

	logger.Success("Customer registered successfully. UUID: " + newCustomer.Uuid)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Registration successful",
		Status:  fiber.StatusCreated,
		Data:    newCustomer,
	})
}

// CustomerLogin authenticates by email and password and issues a session
// token carrying the customer permission.
func (h *AuthController) CustomerLogin(c *fiber.Ctx) error {
	var req authTypes.CustomerLoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	var cust customerModel.Customer
	if err := h.db.Where("email = ?", req.Email).First(&cust).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid email or password",
			Status:  fiber.StatusUnauthorized,
		})
	}
	if !utils.CheckPassword(cust.PasswordHash, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid email or password",
			Status:  fiber.StatusUnauthorized,
		})
	}

	token, err := utils.IssueToken(cust.Uuid, cust.Email, cust.Name, "customer", []string{constants.PermCustomerFull})
	if err != nil {
		logger.Error("Failed to issue token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to login",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.setSecureCookie(c, "access", token, int((24 * time.Hour).Seconds()))

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)

	currentTime := time.Now().Format("2006-01-02 03:04:05 PM")
	logger.Success("Customer logged in successfully at " + currentTime)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Token:   token,
		Data:    cust,
	})
}

// ResetPassword sets a new password for the customer registered under the
// given phone number.
func (h *AuthController) ResetPassword(c *fiber.Ctx) error {
	var req authTypes.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	var cust customerModel.Customer
	if err := h.db.Where("phone = ?", req.Phone).First(&cust).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "No account found for this phone number",
			Status:  fiber.StatusNotFound,
		})
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to reset password",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if err := h.db.Model(&cust).Update("password_hash", hash).Error; err != nil {
		logger.Error("Failed to update password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to reset password",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Password reset for customer " + cust.Uuid)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Password reset successful",
		Status:  fiber.StatusOK,
	})
}

// Profile returns the logged-in customer with the insurance relation loaded.
func (h *AuthController) Profile(c *fiber.Ctx) error {
	email, ok := middleware.ClaimString(c, "sub")
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid session",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var cust customerModel.Customer
	if err := h.db.Preload("Insurance").Where("email = ?", email).First(&cust).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Customer not found",
			Status:  fiber.StatusNotFound,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Profile fetched successfully",
		Status:  fiber.StatusOK,
		Data:    cust,
	})
}

// UpdateProfile sets the optional SSN and insurance plan on the logged-in
// customer.
func (h *AuthController) UpdateProfile(c *fiber.Ctx) error {
	email, ok := middleware.ClaimString(c, "sub")
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid session",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req authTypes.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	var cust customerModel.Customer
	if err := h.db.Where("email = ?", email).First(&cust).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Customer not found",
			Status:  fiber.StatusNotFound,
		})
	}

	updates := map[string]interface{}{}
	if req.SSN != nil {
		if *req.SSN == "" {
			updates["ssn"] = nil
		} else {
			updates["ssn"] = *req.SSN
		}
	}
	if req.InsuranceID != nil {
		updates["insurance_id"] = *req.InsuranceID
	}

	if err := h.db.Model(&cust).Updates(updates).Error; err != nil {
		logger.Error("Failed to update profile", err)
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: "Failed to update profile; SSN may already be in use",
			Status:  fiber.StatusConflict,
		})
	}

	if err := h.db.Preload("Insurance").Where("id = ?", cust.ID).First(&cust).Error; err != nil {
		logger.Error("Failed to reload customer", err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Profile updated successfully",
		Status:  fiber.StatusOK,
		Data:    cust,
	})
}

// AgentRegister creates a delivery agent account keyed by phone.
func (h *AuthController) AgentRegister(c *fiber.Ctx) error {
	var req authTypes.AgentRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	var existing agentModel.DeliveryAgent
	if err := h.db.Where("phone = ?", req.Phone).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: "An agent with this phone number already exists",
			Status:  fiber.StatusConflict,
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing agent", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to register agent",
			Status:  fiber.StatusInternalServerError,
		})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to register agent",
			Status:  fiber.StatusInternalServerError,
		})
	}

	newAgent := agentModel.DeliveryAgent{
		Uuid:         uuid.NewString(),
		Name:         req.Name,
		Phone:        req.Phone,
		PasswordHash: hash,
		Address:      req.Address,
		Status:       agentModel.AgentStatusAvailable,
	}
	if err := h.db.Create(&newAgent).Error; err != nil {
		logger.Error("Failed to create agent", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to register agent",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)

	logger.Success("Delivery agent registered successfully. UUID: " + newAgent.Uuid)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Registration successful",
		Status:  fiber.StatusCreated,
		Data:    newAgent,
	})
}

// AgentLogin authenticates a delivery agent by phone and password.
func (h *AuthController) AgentLogin(c *fiber.Ctx) error {
	var req authTypes.AgentLoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	var agent agentModel.DeliveryAgent
	if err := h.db.Where("phone = ?", req.Phone).First(&agent).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid phone or password",
			Status:  fiber.StatusUnauthorized,
		})
	}
	if !utils.CheckPassword(agent.PasswordHash, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid phone or password",
			Status:  fiber.StatusUnauthorized,
		})
	}

	token, err := utils.IssueToken(agent.Uuid, agent.Phone, agent.Name, "delivery-agent", []string{constants.PermAgentFull})
	if err != nil {
		logger.Error("Failed to issue token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to login",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.setSecureCookie(c, "access", token, int((24 * time.Hour).Seconds()))

	logger.Success("Delivery agent logged in: " + agent.Phone)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Token:   token,
		Data:    agent,
	})
}

// AdminLogin authenticates a back-office admin by username and password.
func (h *AuthController) AdminLogin(c *fiber.Ctx) error {
	var req authTypes.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	var adm adminModel.Admin
	if err := h.db.Where("username = ?", req.Username).First(&adm).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid username or password",
			Status:  fiber.StatusUnauthorized,
		})
	}
	if !utils.CheckPassword(adm.PasswordHash, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid username or password",
			Status:  fiber.StatusUnauthorized,
		})
	}

	token, err := utils.IssueToken(uuid.NewString(), adm.Username, adm.Username, "admin", []string{constants.PermAdminFull})
	if err != nil {
		logger.Error("Failed to issue token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to login",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.setSecureCookie(c, "access", token, int((24 * time.Hour).Seconds()))

	logger.Success("Admin logged in: " + adm.Username)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Token:   token,
	})
}
