package delivery

import (
	"errors"
	"fmt"

	"medcare/logger"
	"medcare/middleware"
	agentModel "medcare/models/agent"
	orderModel "medcare/models/order"
	orderService "medcare/services/order"
	"medcare/types"
	deliveryTypes "medcare/types/delivery"
	"medcare/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DeliveryController struct {
	db             *gorm.DB
	orders         *orderService.Service
	loggerInstance *logger.AsyncLogger
}

func NewDeliveryController(db *gorm.DB, orders *orderService.Service, asyncLogger *logger.AsyncLogger) *DeliveryController {
	return &DeliveryController{db: db, orders: orders, loggerInstance: asyncLogger}
}

// currentAgent resolves the logged-in delivery agent from the session claims.
func (h *DeliveryController) currentAgent(c *fiber.Ctx) (*agentModel.DeliveryAgent, error) {
	phone, ok := middleware.ClaimString(c, "sub")
	if !ok {
		return nil, fmt.Errorf("invalid session")
	}
	var agent agentModel.DeliveryAgent
	if err := h.db.Where("phone = ?", phone).First(&agent).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}

// Profile returns the logged-in agent's record.
func (h *DeliveryController) Profile(c *fiber.Ctx) error {
	agent, err := h.currentAgent(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid session",
			Status:  fiber.StatusUnauthorized,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Profile fetched successfully",
		Status:  fiber.StatusOK,
		Data:    agent,
	})
}

// UpdateProfile sets the agent's bike number and/or address. Bike numbers
// are normalized to upper case and must carry a valid state code prefix.
func (h *DeliveryController) UpdateProfile(c *fiber.Ctx) error {
	agent, err := h.currentAgent(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid session",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req deliveryTypes.UpdateProfileRequest
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

	updates := map[string]interface{}{}
	if req.BikeNumber != nil {
		updates["bike_number"] = utils.NormalizeBikeNumber(*req.BikeNumber)
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}

	if err := h.db.Model(agent).Updates(updates).Error; err != nil {
		logger.Error("Failed to update agent profile", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update profile",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Agent profile updated: " + agent.Phone)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Profile updated successfully",
		Status:  fiber.StatusOK,
		Data:    agent,
	})
}

// UpdateStatus sets the agent's self-reported availability.
func (h *DeliveryController) UpdateStatus(c *fiber.Ctx) error {
	agent, err := h.currentAgent(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid session",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req deliveryTypes.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
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

	if err := h.db.Model(agent).Update("status", req.Status).Error; err != nil {
		logger.Error("Failed to update agent status", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update status",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success(fmt.Sprintf("Agent %s is now %s", agent.Phone, req.Status))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Status updated successfully",
		Status:  fiber.StatusOK,
	})
}

// ChangePassword replaces the agent's password after verifying the current
// one.
func (h *DeliveryController) ChangePassword(c *fiber.Ctx) error {
	agent, err := h.currentAgent(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid session",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req deliveryTypes.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
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

	if !utils.CheckPassword(agent.PasswordHash, req.CurrentPassword) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Current password is incorrect",
			Status:  fiber.StatusUnauthorized,
		})
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to change password",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if err := h.db.Model(agent).Update("password_hash", hash).Error; err != nil {
		logger.Error("Failed to update password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to change password",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Agent password changed: " + agent.Phone)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Password changed successfully",
		Status:  fiber.StatusOK,
	})
}

// AvailableOrders lists confirmed orders waiting for an agent to accept.
func (h *DeliveryController) AvailableOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListConfirmed()
	if err != nil {
		logger.Error("Failed to list available orders", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to list available orders",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Available orders fetched successfully",
		Status:  fiber.StatusOK,
		Data:    orderService.SummarizeAll(orders),
	})
}

// AcceptOrder lets the logged-in agent take a confirmed order; it moves to
// Shipped with the agent snapshotted onto it, and the agent goes Busy.
func (h *DeliveryController) AcceptOrder(c *fiber.Ctx) error {
	agent, err := h.currentAgent(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid session",
			Status:  fiber.StatusUnauthorized,
		})
	}

	orderNumber := c.Params("order_number")

	ord, err := h.orders.Transition(orderNumber, orderModel.OrderStatusShipped, agent.Phone, agent.Name)
	if err != nil {
		switch {
		case errors.Is(err, orderService.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Order not found",
				Status:  fiber.StatusNotFound,
			})
		case errors.Is(err, orderService.ErrInvalidTransition):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ErrorResponse{
				Message: err.Error(),
				Status:  fiber.StatusUnprocessableEntity,
			})
		default:
			logger.Error("Failed to accept order", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Failed to accept order",
				Status:  fiber.StatusInternalServerError,
			})
		}
	}

	if err := h.db.Model(agent).Update("status", agentModel.AgentStatusBusy).Error; err != nil {
		logger.Error("Failed to mark agent busy", err)
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)

	logger.Success(fmt.Sprintf("Agent %s accepted order %s", agent.Phone, orderNumber))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Order accepted",
		Status:  fiber.StatusOK,
		Data:    orderService.Summarize(*ord),
	})
}

// CompleteDelivery marks one of the agent's shipped orders as delivered and
// frees the agent.
func (h *DeliveryController) CompleteDelivery(c *fiber.Ctx) error {
	agent, err := h.currentAgent(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid session",
			Status:  fiber.StatusUnauthorized,
		})
	}

	orderNumber := c.Params("order_number")

	// The order must be assigned to this agent
	var ord orderModel.Order
	if err := h.db.Where("order_number = ?", orderNumber).First(&ord).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Order not found",
			Status:  fiber.StatusNotFound,
		})
	}
	if ord.DeliveryAgentPhone == nil || *ord.DeliveryAgentPhone != agent.Phone {
		return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
			Message: "Order is not assigned to you",
			Status:  fiber.StatusForbidden,
		})
	}

	updated, err := h.orders.Transition(orderNumber, orderModel.OrderStatusDelivered, "", agent.Name)
	if err != nil {
		if errors.Is(err, orderService.ErrInvalidTransition) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ErrorResponse{
				Message: err.Error(),
				Status:  fiber.StatusUnprocessableEntity,
			})
		}
		logger.Error("Failed to complete delivery", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to complete delivery",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if err := h.db.Model(agent).Update("status", agentModel.AgentStatusAvailable).Error; err != nil {
		logger.Error("Failed to mark agent available", err)
	}

	logger.Success(fmt.Sprintf("Order %s delivered by %s", orderNumber, agent.Phone))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Delivery completed",
		Status:  fiber.StatusOK,
		Data:    orderService.Summarize(*updated),
	})
}

// MyDeliveries lists the orders assigned to the logged-in agent, optionally
// filtered by ?status=.
func (h *DeliveryController) MyDeliveries(c *fiber.Ctx) error {
	agent, err := h.currentAgent(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid session",
			Status:  fiber.StatusUnauthorized,
		})
	}

	status := orderModel.OrderStatus(c.Query("status"))
	if status != "" && !status.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Invalid status filter: %s", status),
			Status:  fiber.StatusBadRequest,
		})
	}

	orders, err := h.orders.ListByAgent(agent.Phone, status)
	if err != nil {
		logger.Error("Failed to list deliveries", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to list deliveries",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Deliveries fetched successfully",
		Status:  fiber.StatusOK,
		Data:    orderService.SummarizeAll(orders),
	})
}
