package prescription

import (
	"fmt"
	"time"

	"medcare/logger"
	"medcare/middleware"
	customerModel "medcare/models/customer"
	prescriptionModel "medcare/models/prescription"
	"medcare/types"
	prescriptionTypes "medcare/types/prescription"
	"medcare/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PrescriptionController struct {
	db             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewPrescriptionController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *PrescriptionController {
	return &PrescriptionController{db: db, loggerInstance: asyncLogger}
}

// Create records a prescription with its drug lines in one transaction.
// Back-office only; the customer is matched through the SSN.
func (h *PrescriptionController) Create(c *fiber.Ctx) error {
	var req prescriptionTypes.CreateRequest
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

	presc := prescriptionModel.Prescription{
		SSN:      req.SSN,
		DoctorID: req.DoctorID,
		Date:     time.Now(),
	}
	for _, line := range req.Drugs {
		presc.Drugs = append(presc.Drugs, prescriptionModel.PrescriptionDrug{
			DrugName:    line.Name,
			Quantity:    line.Quantity,
			RefillLimit: line.RefillLimit,
		})
	}

	if err := h.db.Create(&presc).Error; err != nil {
		logger.Error("Failed to create prescription", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create prescription",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)

	logger.Success(fmt.Sprintf("Prescription %d recorded for SSN ending %s", presc.ID, lastFour(presc.SSN)))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Prescription created successfully",
		Status:  fiber.StatusCreated,
		Data:    presc,
	})
}

// MyPrescriptions lists prescriptions for the logged-in customer's SSN.
// A customer without an SSN on file has no prescriptions to show.
func (h *PrescriptionController) MyPrescriptions(c *fiber.Ctx) error {
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
	if cust.SSN == nil || *cust.SSN == "" {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Message: "No SSN on file; add one to your profile to view prescriptions",
			Status:  fiber.StatusOK,
			Data:    []prescriptionModel.Prescription{},
		})
	}

	var prescriptions []prescriptionModel.Prescription
	if err := h.db.Preload("Drugs").Where("ssn = ?", *cust.SSN).Order("date DESC").Find(&prescriptions).Error; err != nil {
		logger.Error("Failed to list prescriptions", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to list prescriptions",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Prescriptions fetched successfully",
		Status:  fiber.StatusOK,
		Data:    prescriptions,
	})
}

// ListAll is the back-office listing of every prescription, newest first.
func (h *PrescriptionController) ListAll(c *fiber.Ctx) error {
	var prescriptions []prescriptionModel.Prescription
	if err := h.db.Preload("Drugs").Order("date DESC").Find(&prescriptions).Error; err != nil {
		logger.Error("Failed to list prescriptions", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to list prescriptions",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Prescriptions fetched successfully",
		Status:  fiber.StatusOK,
		Data:    prescriptions,
	})
}

// BySSN is the back-office lookup of prescriptions for an SSN.
func (h *PrescriptionController) BySSN(c *fiber.Ctx) error {
	ssn := c.Params("ssn")
	if ssn == "" || !utils.ValidateSSN(ssn) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "SSN should be in format XXX-XX-XXXX",
			Status:  fiber.StatusBadRequest,
		})
	}

	var prescriptions []prescriptionModel.Prescription
	if err := h.db.Preload("Drugs").Where("ssn = ?", ssn).Order("date DESC").Find(&prescriptions).Error; err != nil {
		logger.Error("Failed to list prescriptions", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to list prescriptions",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Prescriptions fetched successfully",
		Status:  fiber.StatusOK,
		Data:    prescriptions,
	})
}

func lastFour(ssn string) string {
	if len(ssn) < 4 {
		return ssn
	}
	return ssn[len(ssn)-4:]
}
