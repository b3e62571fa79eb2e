package handler

import (
	"net/http"

	"github.com/srikumaragency/b-admin-prod-03/internal/apierror"
	"github.com/srikumaragency/b-admin-prod-03/internal/dto"
	"github.com/srikumaragency/b-admin-prod-03/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type StoreHandler struct{ svc service.StoreService }

func NewStoreHandler(svc service.StoreService) *StoreHandler { return &StoreHandler{svc: svc} }

// GetSettings godoc
// @Summary      Store settings
// @Tags         store
// @Produce      json
// @Success      200  {object} dto.StoreSettingsResponse
// @Router       /v1/store/settings [get]
func (h *StoreHandler) GetSettings(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StoreHandler) UpdateSettings(c *gin.Context) {
	var req dto.StoreSettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StoreHandler) GetPackaging(c *gin.Context) {
	resp, err := h.svc.GetPackaging(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdatePackaging godoc
// @Summary      Replace the packaging tiers
// @Description  Tiers are validated, checked for overlap and stored sorted by minAmount.
// @Tags         store
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.PackagingSettingsRequest true "Packaging settings"
// @Success      200  {object} pricing.PackagingSettings
// @Failure      400  {object} apierror.APIError
// @Router       /v1/admin/store/packaging [put]
func (h *StoreHandler) UpdatePackaging(c *gin.Context) {
	var req dto.PackagingSettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdatePackaging(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PackagingCost godoc
// @Summary      Packaging surcharge for an order value
// @Tags         store
// @Produce      json
// @Param        orderValue query number true "Order value"
// @Success      200  {object} dto.PackagingCostResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/store/packaging-cost [get]
func (h *StoreHandler) PackagingCost(c *gin.Context) {
	value, err := decimal.NewFromString(c.Query("orderValue"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("orderValue must be a number"))
		return
	}
	resp, err := h.svc.PackagingCost(c.Request.Context(), value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// States godoc
// @Summary      Indian states and union territories
// @Tags         store
// @Produce      json
// @Success      200  {array} string
// @Router       /v1/locations/states [get]
func (h *StoreHandler) States(c *gin.Context) {
	c.JSON(http.StatusOK, service.States())
}

func (h *StoreHandler) Districts(c *gin.Context) {
	c.JSON(http.StatusOK, service.Districts(c.Param("state")))
}
