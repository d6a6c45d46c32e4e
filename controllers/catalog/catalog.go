package catalog

import (
	"errors"
	"fmt"
	"time"

	"medcare/logger"
	drugModel "medcare/models/drug"
	"medcare/types"
	catalogTypes "medcare/types/catalog"
	"medcare/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CatalogController struct {
	db             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewCatalogController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *CatalogController {
	return &CatalogController{db: db, loggerInstance: asyncLogger}
}

// buildDrugView joins a drug with its current price row, if any.
func (h *CatalogController) buildDrugView(d drugModel.Drug) catalogTypes.DrugView {
	view := catalogTypes.DrugView{
		DrugID:   d.DrugID,
		Name:     d.Name,
		ExpDate:  d.ExpDate.Format("2006-01-02"),
		Usage:    d.Usage,
		Quantity: d.Quantity,
	}

	var price drugModel.DrugPrice
	if err := h.db.Where("drug_id = ?", d.DrugID).First(&price).Error; err == nil {
		view.PricePerUnit = &price.PricePerUnit
	}
	return view
}

// ListDrugs returns the catalog joined with current prices. An optional
// ?search= filter matches on drug name.
func (h *CatalogController) ListDrugs(c *fiber.Ctx) error {
	query := h.db.Order("name ASC")
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var drugs []drugModel.Drug
	if err := query.Find(&drugs).Error; err != nil {
		logger.Error("Failed to list drugs", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to list drugs",
			Status:  fiber.StatusInternalServerError,
		})
	}

	views := make([]catalogTypes.DrugView, 0, len(drugs))
	for _, d := range drugs {
		views = append(views, h.buildDrugView(d))
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Drugs fetched successfully",
		Status:  fiber.StatusOK,
		Data:    views,
	})
}

// GetDrug returns one drug by its inventory id.
func (h *CatalogController) GetDrug(c *fiber.Ctx) error {
	drugID, err := c.ParamsInt("drug_id")
	if err != nil || drugID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid drug id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var d drugModel.Drug
	if err := h.db.Where("drug_id = ?", drugID).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Drug not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to fetch drug", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to fetch drug",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Drug fetched successfully",
		Status:  fiber.StatusOK,
		Data:    h.buildDrugView(d),
	})
}

// AddDrug creates a catalog entry, with an optional initial price row,
// in one transaction.
func (h *CatalogController) AddDrug(c *fiber.Ctx) error {
	var req catalogTypes.AddDrugRequest
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

	expDate, err := time.Parse("2006-01-02", req.ExpDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "exp_date must be in YYYY-MM-DD format",
			Status:  fiber.StatusBadRequest,
		})
	}

	var existing drugModel.Drug
	if err := h.db.Where("drug_id = ?", req.DrugID).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Drug with id %d already exists", req.DrugID),
			Status:  fiber.StatusConflict,
		})
	}

	newDrug := drugModel.Drug{
		DrugID:   req.DrugID,
		Name:     req.Name,
		ExpDate:  expDate,
		Usage:    req.Usage,
		Quantity: req.Quantity,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newDrug).Error; err != nil {
			return err
		}
		if req.Price != nil {
			price := drugModel.DrugPrice{DrugID: req.DrugID, PricePerUnit: *req.Price}
			return tx.Create(&price).Error
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to create drug", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create drug",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)

	logger.Success(fmt.Sprintf("Drug %d added to catalog", newDrug.DrugID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Drug added successfully",
		Status:  fiber.StatusCreated,
		Data:    h.buildDrugView(newDrug),
	})
}

// UpdateUsage replaces the usage text of a drug.
func (h *CatalogController) UpdateUsage(c *fiber.Ctx) error {
	drugID, err := c.ParamsInt("drug_id")
	if err != nil || drugID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid drug id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var req catalogTypes.UpdateUsageRequest
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

	res := h.db.Model(&drugModel.Drug{}).Where("drug_id = ?", drugID).Update("usage_text", req.Usage)
	if res.Error != nil {
		logger.Error("Failed to update usage", res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update usage",
			Status:  fiber.StatusInternalServerError,
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Drug not found",
			Status:  fiber.StatusNotFound,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Usage updated successfully",
		Status:  fiber.StatusOK,
	})
}

// UpdatePrice upserts the price row for a drug.
func (h *CatalogController) UpdatePrice(c *fiber.Ctx) error {
	drugID, err := c.ParamsInt("drug_id")
	if err != nil || drugID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid drug id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var req catalogTypes.UpdatePriceRequest
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

	var d drugModel.Drug
	if err := h.db.Where("drug_id = ?", drugID).First(&d).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Drug not found",
			Status:  fiber.StatusNotFound,
		})
	}

	price := drugModel.DrugPrice{DrugID: uint(drugID), PricePerUnit: req.Price}
	err = h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "drug_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"price_per_unit", "updated_at"}),
	}).Create(&price).Error
	if err != nil {
		logger.Error("Failed to update price", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update price",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success(fmt.Sprintf("Price for drug %d set to %.2f", drugID, req.Price))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Price updated successfully",
		Status:  fiber.StatusOK,
	})
}

// UpdateQuantity sets the on-hand quantity of a drug (restock or correction).
func (h *CatalogController) UpdateQuantity(c *fiber.Ctx) error {
	drugID, err := c.ParamsInt("drug_id")
	if err != nil || drugID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid drug id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var req catalogTypes.UpdateQuantityRequest
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

	res := h.db.Model(&drugModel.Drug{}).Where("drug_id = ?", drugID).Update("quantity", req.Quantity)
	if res.Error != nil {
		logger.Error("Failed to update quantity", res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to update quantity",
			Status:  fiber.StatusInternalServerError,
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Drug not found",
			Status:  fiber.StatusNotFound,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Quantity updated successfully",
		Status:  fiber.StatusOK,
	})
}

// DeleteDrug removes a drug and its price row.
func (h *CatalogController) DeleteDrug(c *fiber.Ctx) error {
	drugID, err := c.ParamsInt("drug_id")
	if err != nil || drugID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid drug id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var d drugModel.Drug
	if err := h.db.Where("drug_id = ?", drugID).First(&d).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Drug not found",
			Status:  fiber.StatusNotFound,
		})
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("drug_id = ?", drugID).Delete(&drugModel.DrugPrice{}).Error; err != nil {
			return err
		}
		return tx.Delete(&d).Error
	})
	if err != nil {
		logger.Error("Failed to delete drug", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to delete drug",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success(fmt.Sprintf("Drug %d deleted", drugID))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Drug deleted successfully",
		Status:  fiber.StatusOK,
	})
}

// LowStock lists drugs below the restock threshold.
func (h *CatalogController) LowStock(c *fiber.Ctx) error {
	var drugs []drugModel.Drug
	if err := h.db.Where("quantity < ?", drugModel.LowStockThreshold).Order("quantity ASC").Find(&drugs).Error; err != nil {
		logger.Error("Failed to list low stock drugs", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to list low stock drugs",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Low stock drugs fetched successfully",
		Status:  fiber.StatusOK,
		Data:    drugs,
	})
}
