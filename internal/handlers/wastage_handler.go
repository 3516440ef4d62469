package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog-service/internal/events"
	"catalog-service/internal/middleware"
	"catalog-service/internal/models"
	"catalog-service/internal/services"
)

// WastageHandler exposes the wastage ledger over HTTP.
type WastageHandler struct {
	service   *services.WastageService
	publisher *events.Publisher
}

func NewWastageHandler(service *services.WastageService, publisher *events.Publisher) *WastageHandler {
	return &WastageHandler{service: service, publisher: publisher}
}

// CreateWastage records a loss event
// @Summary Record a wastage
// @Description Creates a wastage record with its attachments in one transaction
// @Tags wastages
// @Accept json
// @Produce json
// @Param wastage body models.WastageRequest true "Wastage payload"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /wastages [post]
func (h *WastageHandler) CreateWastage(c *gin.Context) {
	var req models.WastageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.ErrorDetail{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	actor := actorFromContext(c)
	wastage, err := h.service.CreateWastage(c.Request.Context(), actor, &req)
	if err != nil {
		serviceError(c, err, "CREATION_FAILED")
		return
	}

	if h.publisher != nil {
		h.publisher.PublishWastageCreated(actor.TenantID, actor.UserID, wastage)
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Message: "Wastage recorded successfully",
		Data:    wastage,
	})
}

// GetWastage returns one wastage record
// @Summary Get a wastage
// @Description Returns the record enriched with product, variant, UOM and wastage-type names
// @Tags wastages
// @Produce json
// @Param id path int true "Wastage ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /wastages/{id} [get]
func (h *WastageHandler) GetWastage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	wastage, err := h.service.GetWastage(c.Request.Context(), middleware.GetTenantID(c), id)
	if err != nil {
		serviceError(c, err, "FETCH_FAILED")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: wastage})
}

// UpdateWastage rewrites a wastage record
// @Summary Update a wastage
// @Tags wastages
// @Accept json
// @Produce json
// @Param id path int true "Wastage ID"
// @Param wastage body models.WastageRequest true "Wastage payload"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /wastages/{id} [put]
func (h *WastageHandler) UpdateWastage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req models.WastageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.ErrorDetail{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	actor := actorFromContext(c)
	wastage, err := h.service.UpdateWastage(c.Request.Context(), actor, id, &req)
	if err != nil {
		serviceError(c, err, "UPDATE_FAILED")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Wastage updated successfully",
		Data:    wastage,
	})
}

// DeleteWastage soft-deletes a wastage record
// @Summary Delete a wastage
// @Tags wastages
// @Produce json
// @Param id path int true "Wastage ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /wastages/{id} [delete]
func (h *WastageHandler) DeleteWastage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	actor := actorFromContext(c)
	if err := h.service.DeleteWastage(c.Request.Context(), actor, id); err != nil {
		serviceError(c, err, "DELETION_FAILED")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Wastage deleted successfully",
	})
}

// GetWastages lists wastage records
// @Summary List wastages
// @Description Paginated list filterable by fixed-asset flag, product, variant and wastage type
// @Tags wastages
// @Produce json
// @Param proisfa query bool false "Fixed-asset flag"
// @Param proid query int false "Product filter"
// @Param pvid query int false "Variant filter"
// @Param wastagetype query int false "Wastage type filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} models.WastageListResponse
// @Router /wastages [get]
func (h *WastageHandler) GetWastages(c *gin.Context) {
	var filter models.WastageFilter

	if raw := c.Query("proisfa"); raw != "" {
		isFA, err := strconv.ParseBool(raw)
		if err != nil {
			badQueryParam(c, "proisfa")
			return
		}
		filter.IsFixedAsset = &isFA
	}
	if raw := c.Query("proid"); raw != "" {
		productID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badQueryParam(c, "proid")
			return
		}
		filter.ProductID = &productID
	}
	if raw := c.Query("pvid"); raw != "" {
		variantID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badQueryParam(c, "pvid")
			return
		}
		filter.VariantID = &variantID
	}
	if raw := c.Query("wastagetype"); raw != "" {
		wastageType, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badQueryParam(c, "wastagetype")
			return
		}
		filter.WastageType = &wastageType
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.service.ListWastages(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		serviceError(c, err, "FETCH_FAILED")
		return
	}
	c.JSON(http.StatusOK, result)
}
