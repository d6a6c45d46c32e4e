package admin

import (
	"errors"
	"fmt"
	"time"

	"medcare/logger"
	agentModel "medcare/models/agent"
	customerModel "medcare/models/customer"
	drugModel "medcare/models/drug"
	insuranceModel "medcare/models/insurance"
	orderModel "medcare/models/order"
	billingService "medcare/services/billing"
	slipParserService "medcare/services/slip_parser"
	"medcare/types"
	adminTypes "medcare/types/admin"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

type AdminController struct {
	db      *gorm.DB
	billing *billingService.Service
}

func NewAdminController(db *gorm.DB, billing *billingService.Service) *AdminController {
	return &AdminController{db: db, billing: billing}
}

// Dashboard aggregates the day's operational picture: order counts per
// status, revenue for today and the month, low stock and agent availability.
func (h *AdminController) Dashboard(c *fiber.Ctx) error {
	today := time.Now()
	dayStart := now.New(today).BeginningOfDay()
	dayEnd := now.New(today).EndOfDay()

	statusCounts := map[string]int64{}
	for _, status := range orderModel.GetAllOrderStatuses() {
		var count int64
		if err := h.db.Model(&orderModel.Order{}).
			Where("status = ? AND created_at BETWEEN ? AND ?", status, dayStart, dayEnd).
			Count(&count).Error; err != nil {
			logger.Error("Failed to count orders", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Failed to build dashboard",
				Status:  fiber.StatusInternalServerError,
			})
		}
		statusCounts[status.String()] = count
	}

	dayRevenue, err := h.billing.RevenueForDay(today)
	if err != nil {
		logger.Error("Failed to compute day revenue", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to build dashboard",
			Status:  fiber.StatusInternalServerError,
		})
	}
	monthRevenue, err := h.billing.RevenueForMonth(today)
	if err != nil {
		logger.Error("Failed to compute month revenue", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to build dashboard",
			Status:  fiber.StatusInternalServerError,
		})
	}

	var lowStockCount int64
	if err := h.db.Model(&drugModel.Drug{}).
		Where("quantity < ?", drugModel.LowStockThreshold).
		Count(&lowStockCount).Error; err != nil {
		logger.Error("Failed to count low stock drugs", err)
	}

	var customerCount int64
	if err := h.db.Model(&customerModel.Customer{}).Count(&customerCount).Error; err != nil {
		logger.Error("Failed to count customers", err)
	}

	agentCounts := map[string]int64{}
	for _, status := range []agentModel.AgentStatus{
		agentModel.AgentStatusAvailable,
		agentModel.AgentStatusBusy,
		agentModel.AgentStatusOffline,
	} {
		var count int64
		if err := h.db.Model(&agentModel.DeliveryAgent{}).Where("status = ?", status).Count(&count).Error; err != nil {
			logger.Error("Failed to count agents", err)
		}
		agentCounts[status.String()] = count
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Dashboard fetched successfully",
		Status:  fiber.StatusOK,
		Data: fiber.Map{
			"orders_today":    statusCounts,
			"revenue_today":   dayRevenue,
			"revenue_month":   monthRevenue,
			"low_stock_count": lowStockCount,
			"customer_count":  customerCount,
			"agents":          agentCounts,
		},
	})
}

// ListCustomers returns all customers with their insurance plans.
func (h *AdminController) ListCustomers(c *fiber.Ctx) error {
	var customers []customerModel.Customer
	if err := h.db.Preload("Insurance").Order("name ASC").Find(&customers).Error; err != nil {
		logger.Error("Failed to list customers", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to list customers",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Customers fetched successfully",
		Status:  fiber.StatusOK,
		Data:    customers,
	})
}

// AgentBoard is the live delivery board: every agent with its current
// status and in-flight order count. Clients poll this endpoint.
func (h *AdminController) AgentBoard(c *fiber.Ctx) error {
	var agents []agentModel.DeliveryAgent
	if err := h.db.Order("name ASC").Find(&agents).Error; err != nil {
		logger.Error("Failed to list agents", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to list agents",
			Status:  fiber.StatusInternalServerError,
		})
	}

	board := make([]fiber.Map, 0, len(agents))
	for _, agent := range agents {
		var inFlight int64
		if err := h.db.Model(&orderModel.Order{}).
			Where("delivery_agent_phone = ? AND status = ?", agent.Phone, orderModel.OrderStatusShipped).
			Count(&inFlight).Error; err != nil {
			logger.Error("Failed to count in-flight orders", err)
		}
		var delivered int64
		if err := h.db.Model(&orderModel.Order{}).
			Where("delivery_agent_phone = ? AND status = ?", agent.Phone, orderModel.OrderStatusDelivered).
			Count(&delivered).Error; err != nil {
			logger.Error("Failed to count delivered orders", err)
		}
		board = append(board, fiber.Map{
			"agent":            agent,
			"in_flight_orders": inFlight,
			"delivered_orders": delivered,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Agent board fetched successfully",
		Status:  fiber.StatusOK,
		Data:    board,
	})
}

// ListInsurancePlans returns the available insurance plans. Public, used
// during customer signup.
func (h *AdminController) ListInsurancePlans(c *fiber.Ctx) error {
	var plans []insuranceModel.Insurance
	if err := h.db.Order("comp_name ASC").Find(&plans).Error; err != nil {
		logger.Error("Failed to list insurance plans", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to list insurance plans",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Insurance plans fetched successfully",
		Status:  fiber.StatusOK,
		Data:    plans,
	})
}

// CreateInsurancePlan adds an insurance plan to the signup catalog.
func (h *AdminController) CreateInsurancePlan(c *fiber.Ctx) error {
	var req adminTypes.CreateInsurancePlanRequest
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

	var existing insuranceModel.Insurance
	if err := h.db.Where("comp_name = ?", req.CompName).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: "An insurance plan with this name already exists",
			Status:  fiber.StatusConflict,
		})
	}

	plan := insuranceModel.Insurance{CompName: req.CompName, Coverage: req.Coverage}
	if err := h.db.Create(&plan).Error; err != nil {
		logger.Error("Failed to create insurance plan", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create insurance plan",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Insurance plan created: " + plan.CompName)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Insurance plan created successfully",
		Status:  fiber.StatusCreated,
		Data:    plan,
	})
}

// GetSlipRequest looks up a slip parse audit row by request id.
func (h *AdminController) GetSlipRequest(c *fiber.Ctx) error {
	requestID := c.Params("request_id")

	service := slipParserService.NewSlipParserService(h.db)
	request, err := service.GetRequestByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Slip parse request not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to fetch slip parse request", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to fetch slip parse request",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Slip parse request fetched successfully",
		Status:  fiber.StatusOK,
		Data:    request,
	})
}
