package dto

import (
	"time"

	"github.com/srikumaragency/b-admin-prod-03/internal/invoice"
	"github.com/srikumaragency/b-admin-prod-03/internal/model"
)

// ─── Customer requests ───────────────────────────────────────────────────────

type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"required,min=1"`
}

type AddressRequest struct {
	Street      string `json:"street"      validate:"max=200"`
	Landmark    string `json:"landmark"    validate:"max=200"`
	NearestTown string `json:"nearestTown" validate:"max=100"`
	District    string `json:"district"    validate:"required,max=100"`
	State       string `json:"state"       validate:"required"`
	Pincode     string `json:"pincode"     validate:"omitempty,numeric,len=6"`
	Country     string `json:"country"`
}

type CustomerRequest struct {
	Name            string         `json:"name"            validate:"required,min=2,max=100"`
	Mobile          string         `json:"mobile"          validate:"required,min=10,max=15"`
	DeliveryContact string         `json:"deliveryContact" validate:"required,min=10,max=15"`
	CouponCode      string         `json:"couponCode"      validate:"max=50"`
	Address         AddressRequest `json:"address"         validate:"required"`
}

type CreateOrderRequest struct {
	Customer       CustomerRequest    `json:"customerDetails" validate:"required"`
	DeliveryMethod string             `json:"deliveryMethod"  validate:"omitempty,oneof=transport_office on_the_go home_delivery"`
	Items          []OrderItemRequest `json:"items"           validate:"required,min=1,dive"`
}

type PaymentScreenshotRequest struct {
	ScreenshotRef string `json:"paymentScreenshot" validate:"required,max=500"`
}

// ─── Admin requests ──────────────────────────────────────────────────────────

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=pending paid failed refunded"`
	AdminNotes    string `json:"adminNotes"    validate:"max=2000"`
}

type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"orderStatus" validate:"required,oneof=placed confirmed processing shipped delivered cancelled"`
}

type TrackingRequest struct {
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
	TrackingNumber    string     `json:"trackingNumber" validate:"max=100"`
	CourierPartner    string     `json:"courierPartner" validate:"max=100"`
}

type AdminNotesRequest struct {
	AdminNotes string `json:"adminNotes" validate:"max=2000"`
}

type OrderFilter struct {
	PaymentStatus string `form:"paymentStatus" validate:"omitempty,oneof=pending paid failed refunded"`
	OrderStatus   string `form:"orderStatus"   validate:"omitempty,oneof=placed confirmed processing shipped delivered cancelled"`
	Search        string `form:"search"`
	SortBy        string `form:"sortBy"        validate:"omitempty,oneof=createdAt orderId total"`
	SortOrder     string `form:"sortOrder"     validate:"omitempty,oneof=asc desc"`
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type OrderResponse struct {
	OrderID            string               `json:"orderId"`
	Customer           invoice.Customer     `json:"customerDetails"`
	CouponCode         string               `json:"couponCode,omitempty"`
	DeliveryMethod     string               `json:"deliveryMethod"`
	Items              []model.OrderItem    `json:"items"`
	Summary            model.OrderSummary   `json:"orderSummary"`
	PaymentStatus      string               `json:"paymentStatus"`
	OrderStatus        string               `json:"orderStatus"`
	Payment            model.PaymentDetails `json:"paymentDetails"`
	Tracking           model.TrackingInfo   `json:"trackingInfo"`
	AdminNotes         string               `json:"adminNotes,omitempty"`
	InvoiceNumber      *string              `json:"invoiceNumber"`
	InvoiceGeneratedAt *time.Time           `json:"invoiceGeneratedAt"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

type OrderListResponse struct {
	Data       []OrderResponse `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
