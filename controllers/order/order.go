package order

import (
	"errors"
	"fmt"
	"time"

	"medcare/logger"
	"medcare/middleware"
	customerModel "medcare/models/customer"
	orderModel "medcare/models/order"
	orderService "medcare/services/order"
	"medcare/types"
	orderTypes "medcare/types/order"
	"medcare/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderController struct {
	db             *gorm.DB
	service        *orderService.Service
	loggerInstance *logger.AsyncLogger
}

func NewOrderController(db *gorm.DB, service *orderService.Service, asyncLogger *logger.AsyncLogger) *OrderController {
	return &OrderController{db: db, service: service, loggerInstance: asyncLogger}
}

// currentCustomer resolves the logged-in customer from the session claims.
func (h *OrderController) currentCustomer(c *fiber.Ctx) (*customerModel.Customer, error) {
	email, ok := middleware.ClaimString(c, "sub")
	if !ok {
		return nil, fmt.Errorf("invalid session")
	}
	var cust customerModel.Customer
	if err := h.db.Where("email = ?", email).First(&cust).Error; err != nil {
		return nil, err
	}
	return &cust, nil
}

// Checkout validates the cart and places the order. The whole cart is
// committed or nothing is: a failed stock check names the offending item
// and leaves no partial order behind.
func (h *OrderController) Checkout(c *fiber.Ctx) error {
	cust, err := h.currentCustomer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid session",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req orderTypes.CheckoutRequest
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

	ord, err := h.service.Checkout(cust.ID, cust.Name, req.Items, req.DeliveryAddress, req.PaymentMethod, req.ContactNumber)
	if err != nil {
		var stockErr *orderService.StockError
		switch {
		case errors.As(err, &stockErr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ErrorResponse{
				Message: stockErr.Error(),
				Status:  fiber.StatusUnprocessableEntity,
			})
		case errors.Is(err, orderService.ErrDrugNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: err.Error(),
				Status:  fiber.StatusNotFound,
			})
		default:
			logger.Error("Checkout failed", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Failed to place order",
				Status:  fiber.StatusInternalServerError,
			})
		}
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)

	logger.Success("Order placed: " + ord.OrderNumber)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Order placed successfully",
		Status:  fiber.StatusCreated,
		Data:    orderService.Summarize(*ord),
	})
}

// ListMyOrders returns the logged-in customer's orders, optionally filtered
// by ?status=.
func (h *OrderController) ListMyOrders(c *fiber.Ctx) error {
	cust, err := h.currentCustomer(c)
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

	orders, err := h.service.ListByCustomer(cust.ID, status)
	if err != nil {
		logger.Error("Failed to list orders", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to list orders",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Orders fetched successfully",
		Status:  fiber.StatusOK,
		Data:    orderService.SummarizeAll(orders),
	})
}

// respondOrder fetches one order, scoped to a customer when customerID is
// non-zero, and renders its summary with the status history.
func (h *OrderController) respondOrder(c *fiber.Ctx, customerID uint) error {
	orderNumber := c.Params("order_number")

	ord, err := h.service.Find(orderNumber, customerID)
	if err != nil {
		if errors.Is(err, orderService.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Order not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to fetch order", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to fetch order",
			Status:  fiber.StatusInternalServerError,
		})
	}

	var events []orderModel.OrderStatusEvent
	if err := h.db.Where("order_id = ?", ord.ID).Order("created_at ASC").Find(&events).Error; err != nil {
		logger.Error("Failed to fetch status history", err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Order fetched successfully",
		Status:  fiber.StatusOK,
		Data: fiber.Map{
			"order":   orderService.Summarize(*ord),
			"history": events,
		},
	})
}

// GetOrder is the back-office lookup of any order.
func (h *OrderController) GetOrder(c *fiber.Ctx) error {
	return h.respondOrder(c, 0)
}

// GetMyOrder returns one of the logged-in customer's own orders. Order
// numbers belonging to other customers read as not found.
func (h *OrderController) GetMyOrder(c *fiber.Ctx) error {
	cust, err := h.currentCustomer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid session",
			Status:  fiber.StatusUnauthorized,
		})
	}
	return h.respondOrder(c, cust.ID)
}

// UpdateStatus transitions an order along the lifecycle. Shipping requires
// an agent phone; the assignment is snapshotted onto the order.
func (h *OrderController) UpdateStatus(c *fiber.Ctx) error {
	orderNumber := c.Params("order_number")

	var req orderTypes.UpdateStatusRequest
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

	updatedBy, _ := middleware.ClaimString(c, "name")

	ord, err := h.service.Transition(orderNumber, req.Status, req.AgentPhone, updatedBy)
	if err != nil {
		switch {
		case errors.Is(err, orderService.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Order not found",
				Status:  fiber.StatusNotFound,
			})
		case errors.Is(err, orderService.ErrAgentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Delivery agent not found",
				Status:  fiber.StatusNotFound,
			})
		case errors.Is(err, orderService.ErrInvalidTransition):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ErrorResponse{
				Message: err.Error(),
				Status:  fiber.StatusUnprocessableEntity,
			})
		default:
			logger.Error("Failed to update order status", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Failed to update order status",
				Status:  fiber.StatusInternalServerError,
			})
		}
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)

	logger.Success(fmt.Sprintf("Order %s moved to %s", orderNumber, req.Status))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Order status updated successfully",
		Status:  fiber.StatusOK,
		Data:    orderService.Summarize(*ord),
	})
}

// removeOrder deletes an order, scoped to a customer when customerID is
// non-zero.
func (h *OrderController) removeOrder(c *fiber.Ctx, customerID uint) error {
	orderNumber := c.Params("order_number")

	err := h.service.Delete(orderNumber, customerID)
	if err != nil {
		switch {
		case errors.Is(err, orderService.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Order not found",
				Status:  fiber.StatusNotFound,
			})
		case errors.Is(err, orderService.ErrInvalidState):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ErrorResponse{
				Message: err.Error(),
				Status:  fiber.StatusUnprocessableEntity,
			})
		default:
			logger.Error("Failed to delete order", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Failed to delete order",
				Status:  fiber.StatusInternalServerError,
			})
		}
	}

	logger.Success("Order deleted: " + orderNumber)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Order deleted successfully",
		Status:  fiber.StatusOK,
	})
}

// DeleteOrder is the back-office removal of any deletable order.
func (h *OrderController) DeleteOrder(c *fiber.Ctx) error {
	return h.removeOrder(c, 0)
}

// DeleteMyOrder removes one of the logged-in customer's own orders.
func (h *OrderController) DeleteMyOrder(c *fiber.Ctx) error {
	cust, err := h.currentCustomer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid session",
			Status:  fiber.StatusUnauthorized,
		})
	}
	return h.removeOrder(c, cust.ID)
}

// ListAllOrders is the back-office view: all orders, optional ?status= and
// ?date=YYYY-MM-DD filters.
func (h *OrderController) ListAllOrders(c *fiber.Ctx) error {
	status := orderModel.OrderStatus(c.Query("status"))
	if status != "" && !status.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Invalid status filter: %s", status),
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

	orders, err := h.service.ListAll(status, day)
	if err != nil {
		logger.Error("Failed to list orders", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to list orders",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Orders fetched successfully",
		Status:  fiber.StatusOK,
		Data:    orderService.SummarizeAll(orders),
	})
}
