package billing

import (
	"errors"
	"fmt"
	"time"

	"medcare/logger"
	"medcare/middleware"
	customerModel "medcare/models/customer"
	billingService "medcare/services/billing"
	"medcare/types"
	billingTypes "medcare/types/billing"
	"medcare/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BillingController struct {
	db             *gorm.DB
	service        *billingService.Service
	loggerInstance *logger.AsyncLogger
}

func NewBillingController(db *gorm.DB, service *billingService.Service, asyncLogger *logger.AsyncLogger) *BillingController {
	return &BillingController{db: db, service: service, loggerInstance: asyncLogger}
}

// CreateBill builds an ad-hoc invoice from named drug lines at current
// prices. Back-office only.
func (h *BillingController) CreateBill(c *fiber.Ctx) error {
	var req billingTypes.CreateBillRequest
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

	bill, err := h.service.CreateBill(req)
	if err != nil {
		if errors.Is(err, billingService.ErrDrugNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: err.Error(),
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to create bill", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create bill",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)

	logger.Success(fmt.Sprintf("Bill %d created for %s, total %.2f", bill.ID, bill.CustomerPhone, bill.TotalAmount))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Bill created successfully",
		Status:  fiber.StatusCreated,
		Data:    bill,
	})
}

// MyBills lists the logged-in customer's bills by their registered phone.
func (h *BillingController) MyBills(c *fiber.Ctx) error {
	email, ok := middleware.ClaimString(c, "sub")
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid session",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var cust customerModel.Customer
	if err := h.db.Where("email = ?", email).First(&cust).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Customer not found",
			Status:  fiber.StatusNotFound,
		})
	}

	bills, err := h.service.List(cust.Phone, nil)
	if err != nil {
		logger.Error("Failed to list bills", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to list bills",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Bills fetched successfully",
		Status:  fiber.StatusOK,
		Data:    bills,
	})
}

// ListBills is the back-office bill listing. ?phone= narrows to one
// customer and ?date=YYYY-MM-DD to one day.
func (h *BillingController) ListBills(c *fiber.Ctx) error {
	phone := c.Query("phone")
	if phone != "" && !utils.ValidatePhoneNumber(phone) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid phone number",
			Status:  fiber.StatusBadRequest,
		})
	}

	var day *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "date must be in YYYY-MM-DD format",
				Status:  fiber.StatusBadRequest,
			})
		}
		day = &parsed
	}

	bills, err := h.service.List(phone, day)
	if err != nil {
		logger.Error("Failed to list bills", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to list bills",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Bills fetched successfully",
		Status:  fiber.StatusOK,
		Data:    bills,
	})
}

// BillsByPhone is the back-office lookup of a customer's bills, optionally
// limited to one day with ?date=YYYY-MM-DD.
func (h *BillingController) BillsByPhone(c *fiber.Ctx) error {
	phone := c.Params("phone")
	if !utils.ValidatePhoneNumber(phone) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid phone number",
			Status:  fiber.StatusBadRequest,
		})
	}

	var day *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: "date must be in YYYY-MM-DD format",
				Status:  fiber.StatusBadRequest,
			})
		}
		day = &parsed
	}

	bills, err := h.service.List(phone, day)
	if err != nil {
		logger.Error("Failed to list bills", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to list bills",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Bills fetched successfully",
		Status:  fiber.StatusOK,
		Data:    bills,
	})
}
