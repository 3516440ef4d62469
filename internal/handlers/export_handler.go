package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"catalog-service/internal/middleware"
	"catalog-service/internal/models"
	"catalog-service/internal/services"
)

// ExportHandler produces xlsx workbooks of the filtered product list.
type ExportHandler struct {
	service *services.ProductService
}

func NewExportHandler(service *services.ProductService) *ExportHandler {
	return &ExportHandler{service: service}
}

var configLabels = map[int]string{
	models.ProductConfigRawMaterial:  "Raw Material",
	models.ProductConfigSemiFinished: "Semi-Finished",
	models.ProductConfigFinishedGood: "Finished Good",
	models.ProductConfigFixedAsset:   "Fixed Asset",
}

// ExportProducts streams the filtered product list as an xlsx file
// @Summary Export products
// @Description Exports the filtered product list (unpaged) as an Excel workbook
// @Tags products
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param name query string false "Name substring, case-insensitive"
// @Param config query int false "Configuration category"
// @Param category_id query int false "Category filter"
// @Param isfa query bool false "Fixed-asset flag"
// @Success 200 {file} binary
// @Router /products/export [get]
func (h *ExportHandler) ExportProducts(c *gin.Context) {
	filter, ok := productFilterFromQuery(c)
	if !ok {
		return
	}
	// Export is always the full result set
	filter.Page = nil
	filter.Limit = nil

	result, err := h.service.FilterProducts(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		serviceError(c, err, "EXPORT_FAILED")
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Products"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	headers := []string{"ID", "Name", "Description", "Type", "UOM", "Fixed Asset", "Multi-Variant", "Variants", "Categories"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, item := range result.Records {
		categoryNames := make([]string, 0, len(item.Categories))
		for _, cat := range item.Categories {
			categoryNames = append(categoryNames, cat.Name)
		}
		values := []interface{}{
			item.ID,
			item.Name,
			item.Description,
			configLabels[item.Config],
			item.UomName,
			item.IsFixedAsset,
			item.HasVariant,
			item.VariantCount,
			strings.Join(categoryNames, ", "),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	filename := fmt.Sprintf("products-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.ErrorDetail{
				Code:    "EXPORT_FAILED",
				Message: err.Error(),
			},
		})
	}
}
