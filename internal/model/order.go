package model

import (
	"time"

	"github.com/srikumaragency/b-admin-prod-03/internal/invoice"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Order statuses.
const (
	OrderPlaced     = "placed"
	OrderConfirmed  = "confirmed"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Order is one customer order. Nested values are stored as jsonb: they are
// only ever read and written with the order.
type Order struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID        string           `gorm:"uniqueIndex;not null"`
	Customer       invoice.Customer `gorm:"type:jsonb;serializer:json"`
	CustomerMobile string           `gorm:"index;not null"`
	CouponCode     string
	DeliveryMethod string `gorm:"not null;default:'transport_office'"`

	Items   datatypes.JSONSlice[OrderItem] `gorm:"type:jsonb"`
	Summary OrderSummary                   `gorm:"type:jsonb;serializer:json"`

	PaymentStatus string         `gorm:"index;not null;default:'pending'"`
	OrderStatus   string         `gorm:"index;not null;default:'placed'"`
	Payment       PaymentDetails `gorm:"type:jsonb;serializer:json"`
	Tracking      TrackingInfo   `gorm:"type:jsonb;serializer:json"`
	AdminNotes    string

	InvoiceNumber      *string    `gorm:"index"`
	InvoiceGeneratedAt *time.Time `gorm:"index"`
	InvoiceGeneratedBy string

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// OrderItem freezes the product as it was when the order was placed.
type OrderItem struct {
	ProductID  uuid.UUID       `json:"productId"`
	Snapshot   ProductSnapshot `json:"productSnapshot"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	OfferPrice decimal.Decimal `json:"offerPrice"`
}

type ProductSnapshot struct {
	ProductCode             string           `json:"productCode"`
	Name                    string           `json:"name"`
	Description             string           `json:"description"`
	CategoryID              uuid.UUID        `json:"categoryId"`
	SubcategoryID           uuid.UUID        `json:"subcategoryId"`
	BrandName               string           `json:"brandName"`
	BasePrice               decimal.Decimal  `json:"basePrice"`
	ProfitMarginPercentage  decimal.Decimal  `json:"profitMarginPercentage"`
	DiscountPercentage      *decimal.Decimal `json:"discountPercentage"`
	CalculatedOriginalPrice decimal.Decimal  `json:"calculatedOriginalPrice"`
}

type OrderSummary struct {
	TotalItems         int             `json:"totalItems"`
	TotalPrice         decimal.Decimal `json:"totalPrice"`
	TotalOfferPrice    decimal.Decimal `json:"totalOfferPrice"`
	TotalSavings       decimal.Decimal `json:"totalSavings"`
	PackagingPrice     decimal.Decimal `json:"packagingPrice"`
	TotalWithPackaging decimal.Decimal `json:"totalWithPackaging"`
	TotalProfit        decimal.Decimal `json:"totalProfit"`
}

type PaymentDetails struct {
	UpiID                string          `json:"upiId"`
	PaidAmount           decimal.Decimal `json:"paidAmount"`
	PaymentScreenshot    string          `json:"paymentScreenshot,omitempty"`
	ScreenshotUploadedAt *time.Time      `json:"screenshotUploadedAt,omitempty"`
	PaymentDate          *time.Time      `json:"paymentDate,omitempty"`
	AdminReviewedAt      *time.Time      `json:"adminReviewedAt,omitempty"`
	AdminReviewedBy      string          `json:"adminReviewedBy,omitempty"`
}

type TrackingInfo struct {
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
	TrackingNumber    string     `json:"trackingNumber,omitempty"`
	CourierPartner    string     `json:"courierPartner,omitempty"`
}

// HasInvoice reports whether an invoice number has been assigned.
func (o *Order) HasInvoice() bool {
	return o.InvoiceNumber != nil && *o.InvoiceNumber != ""
}
