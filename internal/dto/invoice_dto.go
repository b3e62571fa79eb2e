package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceFilter struct {
	Search string     `form:"search"`
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to"   time_format:"2006-01-02"`
	Page   int        `form:"page,default=1"   validate:"min=1"`
	Limit  int        `form:"limit,default=20" validate:"min=1,max=100"`
}

type InvoiceSummaryResponse struct {
	InvoiceNumber string          `json:"invoiceNumber"`
	OrderID       string          `json:"orderId"`
	CustomerName  string          `json:"customerName"`
	Mobile        string          `json:"mobile"`
	Amount        decimal.Decimal `json:"amount"`
	GeneratedAt   time.Time       `json:"generatedAt"`
	GeneratedBy   string          `json:"generatedBy"`
}

type InvoiceListResponse struct {
	Data       []InvoiceSummaryResponse `json:"data"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
	TotalPages int                      `json:"total_pages"`
}

// BulkInvoiceResult reports one order of a bulk generation run.
type BulkInvoiceResult struct {
	OrderID       string `json:"orderId"`
	InvoiceNumber string `json:"invoiceNumber,omitempty"`
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
}

type BulkInvoiceResponse struct {
	Processed int                 `json:"processed"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Results   []BulkInvoiceResult `json:"results"`
}

type InvoiceDebugResponse struct {
	OrderID       string `json:"orderId"`
	InvoiceNumber string `json:"invoiceNumber"`
	PaymentStatus string `json:"paymentStatus"`
	HasInvoice    bool   `json:"hasInvoice"`
	ItemCount     int    `json:"itemCount"`
	PageCount     int    `json:"pageCount"`
	ItemsPerPage  int    `json:"itemsPerPage"`
	ByteSize      int    `json:"byteSize"`
	ValidHeader   bool   `json:"validHeader"`
	Valid         bool   `json:"valid"`
	Error         string `json:"error,omitempty"`
	RenderMillis  int64  `json:"renderMillis"`
}
