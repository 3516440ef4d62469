package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog-service/internal/events"
	"catalog-service/internal/middleware"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"catalog-service/internal/services"
)

// ProductsHandler exposes the product aggregate over HTTP.
type ProductsHandler struct {
	service   *services.ProductService
	publisher *events.Publisher
}

// NewProductsHandler creates a products handler. The publisher may be
// nil when NATS is not configured.
func NewProductsHandler(service *services.ProductService, publisher *events.Publisher) *ProductsHandler {
	return &ProductsHandler{service: service, publisher: publisher}
}

func actorFromContext(c *gin.Context) models.Actor {
	return models.Actor{
		UserID:   c.GetString("user_id"),
		TenantID: middleware.GetTenantID(c),
	}
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.ErrorDetail{
				Code:    "INVALID_ID",
				Message: "Identifier must be a positive integer",
			},
		})
		return 0, false
	}
	return id, true
}

// serviceError maps the service error taxonomy onto HTTP responses:
// validation failures are client faults, missing records are 404 and
// everything else is a generic persistence failure.
func serviceError(c *gin.Context, err error, fallbackCode string) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.ErrorDetail{
				Code:    "VALIDATION_ERROR",
				Message: validationErr.Message,
				Field:   validationErr.Field,
			},
		})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: "Record not found",
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.ErrorDetail{
				Code:    fallbackCode,
				Message: err.Error(),
			},
		})
	}
}

// CreateProduct creates a product with its variant graph
// @Summary Create a product
// @Description Creates a product together with its variants, locations, taxes, UOM and attribute mappings in one transaction
// @Tags products
// @Accept json
// @Produce json
// @Param product body models.ProductRequest true "Product payload"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /products [post]
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	var req models.ProductRequest
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
	product, err := h.service.CreateProduct(c.Request.Context(), actor, &req)
	if err != nil {
		serviceError(c, err, "CREATION_FAILED")
		return
	}

	if h.publisher != nil {
		h.publisher.PublishProductCreated(actor.TenantID, actor.UserID, product)
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// GetProduct returns the full aggregate view
// @Summary Get a product
// @Description Returns the product with its category, image and variant graph. One live variant yields a singular variant field, two or more yield a variants array.
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.service.GetProduct(c.Request.Context(), middleware.GetTenantID(c), id)
	if err != nil {
		serviceError(c, err, "FETCH_FAILED")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: product})
}

// UpdateProduct replaces the aggregate's children and returns the re-read view
// @Summary Update a product
// @Description Updates product scalars and recreates all variant-scoped children from the submitted payload
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body models.ProductRequest true "Product payload"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req models.ProductRequest
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
	product, err := h.service.UpdateProduct(c.Request.Context(), actor, id, &req)
	if err != nil {
		serviceError(c, err, "UPDATE_FAILED")
		return
	}

	if h.publisher != nil {
		h.publisher.PublishProductUpdated(actor.TenantID, actor.UserID, product)
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct soft-deletes a product and returns its last snapshot
// @Summary Delete a product
// @Description Soft-deletes the product and removes its mappings and variant graph
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	actor := actorFromContext(c)
	snapshot, err := h.service.DeleteProduct(c.Request.Context(), actor, id)
	if err != nil {
		serviceError(c, err, "DELETION_FAILED")
		return
	}

	if h.publisher != nil {
		h.publisher.PublishProductDeleted(actor.TenantID, actor.UserID, snapshot)
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Product deleted successfully",
		Data:    snapshot,
	})
}

// GetProducts lists products with filters and dual-mode pagination
// @Summary List products
// @Description Filters by name substring, config, category and fixed-asset flag. Omitting both page and limit returns every matching row as one page.
// @Tags products
// @Produce json
// @Param name query string false "Name substring, case-insensitive"
// @Param config query int false "Configuration category"
// @Param category_id query int false "Category filter"
// @Param isfa query bool false "Fixed-asset flag"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} models.ProductListResponse
// @Router /products [get]
func (h *ProductsHandler) GetProducts(c *gin.Context) {
	filter, ok := productFilterFromQuery(c)
	if !ok {
		return
	}
	result, err := h.service.FilterProducts(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		serviceError(c, err, "FETCH_FAILED")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetProductModal returns the reference data for the product form
// @Summary Product form reference data
// @Description Returns UOMs, categories, attributes with values and master lists in one payload
// @Tags products
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /products/modal [get]
func (h *ProductsHandler) GetProductModal(c *gin.Context) {
	modal, err := h.service.GetProductModal(c.Request.Context())
	if err != nil {
		serviceError(c, err, "FETCH_FAILED")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: modal})
}

func productFilterFromQuery(c *gin.Context) (models.ProductFilter, bool) {
	var filter models.ProductFilter
	filter.Name = c.Query("name")

	if raw := c.Query("config"); raw != "" {
		config, err := strconv.Atoi(raw)
		if err != nil {
			badQueryParam(c, "config")
			return filter, false
		}
		filter.Config = &config
	}
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badQueryParam(c, "category_id")
			return filter, false
		}
		filter.CategoryID = &categoryID
	}
	if raw := c.Query("isfa"); raw != "" {
		isFA, err := strconv.ParseBool(raw)
		if err != nil {
			badQueryParam(c, "isfa")
			return filter, false
		}
		filter.IsFixedAsset = &isFA
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			badQueryParam(c, "page")
			return filter, false
		}
		filter.Page = &page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			badQueryParam(c, "limit")
			return filter, false
		}
		filter.Limit = &limit
	}
	return filter, true
}

func badQueryParam(c *gin.Context, field string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Error: models.ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid query parameter",
			Field:   field,
		},
	})
}
