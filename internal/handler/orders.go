package handler

import (
	"net/http"

	"github.com/srikumaragency/b-admin-prod-03/internal/apierror"
	"github.com/srikumaragency/b-admin-prod-03/internal/dto"
	"github.com/srikumaragency/b-admin-prod-03/internal/service"

	"github.com/gin-gonic/gin"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler { return &OrdersHandler{svc: svc} }

// ── Customer ─────────────────────────────────────────────────────────────────

// Create godoc
// @Summary      Place an order
// @Description  Prices are frozen from the catalog at this moment; packaging is added from the store tiers.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateOrderRequest true "Order"
// @Success      201  {object} dto.OrderResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/orders [post]
func (h *OrdersHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
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

// Track godoc
// @Summary      Track an order
// @Tags         orders
// @Produce      json
// @Param        orderId path  string true "Order id"
// @Param        phone   query string true "Customer mobile"
// @Success      200  {object} dto.OrderResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/orders/{orderId} [get]
func (h *OrdersHandler) Track(c *gin.Context) {
	phone, ok := requirePhone(c)
	if !ok {
		return
	}
	resp, err := h.svc.Track(c.Request.Context(), c.Param("orderId"), phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) ListByPhone(c *gin.Context) {
	resp, err := h.svc.ListByMobile(c.Request.Context(), c.Param("phone"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) UploadScreenshot(c *gin.Context) {
	phone, ok := requirePhone(c)
	if !ok {
		return
	}
	var req dto.PaymentScreenshotRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UploadScreenshot(c.Request.Context(), c.Param("orderId"), phone, req.ScreenshotRef)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Admin ────────────────────────────────────────────────────────────────────

// List godoc
// @Summary      List orders
// @Tags         admin-orders
// @Produce      json
// @Security     BearerAuth
// @Param        paymentStatus query string false "pending | paid | failed | refunded"
// @Param        orderStatus   query string false "placed | confirmed | processing | shipped | delivered | cancelled"
// @Param        search        query string false "Order id, mobile or customer name"
// @Param        sortBy        query string false "createdAt | orderId | total"
// @Param        sortOrder     query string false "asc | desc"
// @Param        page          query int    false "Page (default 1)"
// @Param        limit         query int    false "Page size (default 20)"
// @Success      200  {object} dto.OrderListResponse
// @Router       /v1/admin/orders [get]
func (h *OrdersHandler) List(c *gin.Context) {
	var filter dto.OrderFilter
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

func (h *OrdersHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdatePaymentStatus godoc
// @Summary      Review a payment
// @Description  paid requires a screenshot on file; it confirms a placed order and assigns the invoice number.
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        orderId path string true "Order id"
// @Param        body    body dto.UpdatePaymentStatusRequest true "New status"
// @Success      200  {object} dto.OrderResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/admin/orders/{orderId}/payment-status [patch]
func (h *OrdersHandler) UpdatePaymentStatus(c *gin.Context) {
	var req dto.UpdatePaymentStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdatePaymentStatus(c.Request.Context(), c.Param("orderId"), req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) UpdateOrderStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateOrderStatus(c.Request.Context(), c.Param("orderId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) UpdateTracking(c *gin.Context) {
	var req dto.TrackingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateTracking(c.Request.Context(), c.Param("orderId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) UpdateNotes(c *gin.Context) {
	var req dto.AdminNotesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateNotes(c.Request.Context(), c.Param("orderId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) AttachScreenshot(c *gin.Context) {
	var req dto.PaymentScreenshotRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AttachScreenshot(c.Request.Context(), c.Param("orderId"), req.ScreenshotRef)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// requirePhone reads the phone query parameter customers identify with.
func requirePhone(c *gin.Context) (string, bool) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, apierror.New("phone is required"))
		return "", false
	}
	return phone, true
}
