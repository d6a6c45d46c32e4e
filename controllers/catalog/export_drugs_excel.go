package catalog

import (
	"bytes"

	"medcare/logger"
	drugModel "medcare/models/drug"
	"medcare/types"

	"github.com/gofiber/fiber/v2"
	"github.com/tealeg/xlsx"
)

// ExportDrugsToExcel streams the full catalog, joined with prices and the
// low-stock flag, as an xlsx download.
func (h *CatalogController) ExportDrugsToExcel(c *fiber.Ctx) error {
	var drugs []drugModel.Drug
	if err := h.db.Order("drug_id ASC").Find(&drugs).Error; err != nil {
		logger.Error("Failed to fetch drugs for export", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to fetch drugs",
			Status:  fiber.StatusInternalServerError,
		})
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Inventory")
	if err != nil {
		logger.Error("Failed to create Excel sheet", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create Excel sheet",
			Status:  fiber.StatusInternalServerError,
		})
	}

	headers := []string{"DrugID", "Name", "ExpDate", "Usage", "Quantity", "PricePerUnit", "LowStock"}
	headerRow := sheet.AddRow()
	for _, header := range headers {
		headerRow.AddCell().SetValue(header)
	}

	for _, d := range drugs {
		row := sheet.AddRow()
		row.AddCell().SetValue(d.DrugID)
		row.AddCell().SetValue(d.Name)
		row.AddCell().SetValue(d.ExpDate.Format("2006-01-02"))
		row.AddCell().SetValue(d.Usage)
		row.AddCell().SetValue(d.Quantity)

		var price drugModel.DrugPrice
		if err := h.db.Where("drug_id = ?", d.DrugID).First(&price).Error; err == nil {
			row.AddCell().SetValue(price.PricePerUnit)
		} else {
			row.AddCell().SetValue("")
		}

		if d.IsLowStock() {
			row.AddCell().SetValue("YES")
		} else {
			row.AddCell().SetValue("NO")
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		logger.Error("Failed to write Excel file", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to write Excel file",
			Status:  fiber.StatusInternalServerError,
		})
	}

	c.Set("Content-Disposition", "attachment; filename=inventory.xlsx")
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Transfer-Encoding", "binary")
	c.Set("Expires", "0")

	return c.Send(buf.Bytes())
}
