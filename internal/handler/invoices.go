package handler

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"github.com/srikumaragency/b-admin-prod-03/internal/apierror"
	"github.com/srikumaragency/b-admin-prod-03/internal/dto"
	"github.com/srikumaragency/b-admin-prod-03/internal/invoice"
	"github.com/srikumaragency/b-admin-prod-03/internal/service"

	"github.com/gin-gonic/gin"
)

type InvoicesHandler struct{ svc service.InvoiceService }

func NewInvoicesHandler(svc service.InvoiceService) *InvoicesHandler {
	return &InvoicesHandler{svc: svc}
}

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]`)

// InvoiceFilename is the download name for an order's invoice.
func InvoiceFilename(orderID string) string {
	return "invoice_" + nonAlnum.ReplaceAllString(orderID, "") + ".pdf"
}

// Generate godoc
// @Summary      Generate the invoice of a paid order
// @Description  Idempotent: an order that already has an invoice keeps its number.
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        orderId path string true "Order id"
// @Success      200  {object} dto.InvoiceSummaryResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/admin/orders/{orderId}/invoice [post]
func (h *InvoicesHandler) Generate(c *gin.Context) {
	resp, err := h.svc.Generate(c.Request.Context(), c.Param("orderId"), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GenerateAll godoc
// @Summary      Generate invoices for every paid order without one
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.BulkInvoiceResponse
// @Router       /v1/admin/invoices/bulk-generate [post]
func (h *InvoicesHandler) GenerateAll(c *gin.Context) {
	resp, err := h.svc.GenerateAll(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List generated invoices
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        search query string false "Invoice number, order id, mobile or name"
// @Param        from   query string false "YYYY-MM-DD"
// @Param        to     query string false "YYYY-MM-DD, inclusive"
// @Param        page   query int    false "Page (default 1)"
// @Param        limit  query int    false "Page size (default 20)"
// @Success      200  {object} dto.InvoiceListResponse
// @Router       /v1/admin/invoices [get]
func (h *InvoicesHandler) List(c *gin.Context) {
	var filter dto.InvoiceFilter
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

// Download godoc
// @Summary      Download an invoice (admin)
// @Tags         invoices
// @Produce      application/pdf
// @Produce      json
// @Security     BearerAuth
// @Param        orderId     path  string true  "Order id"
// @Param        format      query string false "json returns the invoice data"
// @Param        disposition query string false "download forces an attachment"
// @Success      200
// @Failure      400  {object} apierror.APIError
// @Failure      500  {object} apierror.APIError
// @Router       /v1/admin/orders/{orderId}/invoice [get]
func (h *InvoicesHandler) Download(c *gin.Context) {
	data, err := h.svc.Data(c.Request.Context(), c.Param("orderId"), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.serve(c, data)
}

// CustomerDownload godoc
// @Summary      Download an invoice (customer)
// @Tags         invoices
// @Produce      application/pdf
// @Produce      json
// @Param        orderId     path  string true  "Order id"
// @Param        phone       query string true  "Customer mobile"
// @Param        format      query string false "json returns the invoice data"
// @Param        disposition query string false "download forces an attachment"
// @Success      200
// @Failure      404  {object} apierror.APIError
// @Router       /v1/orders/{orderId}/invoice [get]
func (h *InvoicesHandler) CustomerDownload(c *gin.Context) {
	phone, ok := requirePhone(c)
	if !ok {
		return
	}
	data, err := h.svc.CustomerData(c.Request.Context(), c.Param("orderId"), phone)
	if err != nil {
		respondError(c, err)
		return
	}
	h.serve(c, data)
}

func (h *InvoicesHandler) serve(c *gin.Context, data *invoice.Data) {
	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, data)
		return
	}

	buf, err := h.svc.Render(c.Request.Context(), *data)
	if err != nil {
		if errors.Is(err, invoice.ErrRenderFailure) {
			c.JSON(http.StatusInternalServerError, apierror.Retryable("Invoice could not be generated, please try again"))
			return
		}
		respondError(c, err)
		return
	}

	disposition := "inline"
	if c.Query("disposition") == "download" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`%s; filename="%s"`, disposition, InvoiceFilename(data.OrderID)))
	c.Header("Content-Length", strconv.Itoa(len(buf)))
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Data(http.StatusOK, "application/pdf", buf)
}

// Debug godoc
// @Summary      Render an invoice and report on the result
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        orderId path string true "Order id"
// @Success      200  {object} dto.InvoiceDebugResponse
// @Router       /v1/admin/orders/{orderId}/invoice/debug [get]
func (h *InvoicesHandler) Debug(c *gin.Context) {
	resp, err := h.svc.Debug(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
