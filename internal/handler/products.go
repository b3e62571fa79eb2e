package handler

import (
	"context"
	"net/http"

	"github.com/srikumaragency/b-admin-prod-03/internal/apierror"
	"github.com/srikumaragency/b-admin-prod-03/internal/dto"
	"github.com/srikumaragency/b-admin-prod-03/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// Create godoc
// @Summary      Create a product
// @Description  Derived prices come from the pricing engine; margin and discount default to 65 and 81.
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ProductRequest true "Product"
// @Success      201  {object} dto.ProductResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/admin/products [post]
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        categoryId    query string false "Category UUID"
// @Param        subcategoryId query string false "Subcategory UUID"
// @Param        search        query string false "Name, code or brand"
// @Param        deleted       query string false "true | all"
// @Param        page          query int    false "Page (default 1)"
// @Param        limit         query int    false "Page size (default 20)"
// @Success      200  {object} dto.ProductListResponse
// @Router       /v1/admin/products [get]
func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.SoftDelete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductsHandler) Restore(c *gin.Context) {
	h.withID(c, h.svc.Restore)
}

func (h *ProductsHandler) ToggleFeatured(c *gin.Context) {
	h.withID(c, h.svc.ToggleFeatured)
}

func (h *ProductsHandler) ToggleBestSeller(c *gin.Context) {
	h.withID(c, h.svc.ToggleBestSeller)
}

func (h *ProductsHandler) ToggleActive(c *gin.Context) {
	h.withID(c, h.svc.ToggleActive)
}

func (h *ProductsHandler) withID(c *gin.Context, fn func(context.Context, uuid.UUID) (*dto.ProductResponse, error)) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := fn(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CheckCode godoc
// @Summary      Check whether a product code is free
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        code      query string true  "Product code"
// @Param        excludeId query string false "Product being edited"
// @Success      200  {object} dto.CodeAvailabilityResponse
// @Router       /v1/admin/products/check-code [get]
func (h *ProductsHandler) CheckCode(c *gin.Context) {
	var exclude *uuid.UUID
	if raw := c.Query("excludeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid excludeId"))
			return
		}
		exclude = &id
	}
	resp, err := h.svc.CheckCode(c.Request.Context(), c.Query("code"), exclude)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PreviewPricing godoc
// @Summary      Run the pricing engine without saving
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.PricingPreviewRequest true "Prices"
// @Success      200  {object} pricing.Result
// @Failure      422  {object} apierror.APIError
// @Router       /v1/admin/products/pricing-preview [post]
func (h *ProductsHandler) PreviewPricing(c *gin.Context) {
	var req dto.PricingPreviewRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.PreviewPricing(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetByCode godoc
// @Summary      Public product lookup by code (no authentication)
// @Tags         products
// @Produce      json
// @Param        code path string true "Product code"
// @Success      200  {object} dto.ProductResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/products/code/{code} [get]
func (h *ProductsHandler) GetByCode(c *gin.Context) {
	resp, err := h.svc.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
