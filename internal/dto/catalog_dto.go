package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Categories ──────────────────────────────────────────────────────────────

type CategoryRequest struct {
	Name        string `json:"name"        validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsActive    *bool  `json:"isActive"`
}

type SubcategoryRequest struct {
	Name        string `json:"name"        validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsActive    *bool  `json:"isActive"`
}

type SubcategoryResponse struct {
	ID          string `json:"id"`
	CategoryID  string `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

type CategoryResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	IsActive      bool                  `json:"isActive"`
	Subcategories []SubcategoryResponse `json:"subcategories"`
}

// ─── Products ────────────────────────────────────────────────────────────────

// ProductRequest is used for both create and update; update replaces every
// field. Margin and discount fall back to 65 and 81 when omitted.
type ProductRequest struct {
	ProductCode            string           `json:"productCode"            validate:"required,max=30"`
	Name                   string           `json:"name"                   validate:"required,min=2,max=150"`
	Description            string           `json:"description"            validate:"max=2000"`
	CategoryID             string           `json:"categoryId"             validate:"required,uuid"`
	SubcategoryID          string           `json:"subcategoryId"          validate:"required,uuid"`
	BrandName              string           `json:"brandName"              validate:"max=100"`
	YoutubeLink            string           `json:"youtubeLink"            validate:"omitempty,url"`
	CaseQuantity           string           `json:"caseQuantity"           validate:"max=50"`
	ReceivedCase           int              `json:"receivedCase"           validate:"min=0"`
	TotalAvailableQuantity *int             `json:"totalAvailableQuantity" validate:"omitempty,min=0"`
	MaxQuantityPerCustomer *int             `json:"maxQuantityPerCustomer" validate:"omitempty,min=1"`
	BasePrice              decimal.Decimal  `json:"basePrice"`
	ProfitMarginPercentage *decimal.Decimal `json:"profitMarginPercentage"`
	DiscountPercentage     *decimal.Decimal `json:"discountPercentage"`
	IsActive               *bool            `json:"isActive"`
	IsFeatured             bool             `json:"isFeatured"`
	IsBestSeller           bool             `json:"isBestSeller"`
}

// PricingPreviewRequest runs the pricing engine without saving anything.
type PricingPreviewRequest struct {
	BasePrice              decimal.Decimal  `json:"basePrice"`
	ProfitMarginPercentage *decimal.Decimal `json:"profitMarginPercentage"`
	DiscountPercentage     *decimal.Decimal `json:"discountPercentage"`
}

type ProductFilter struct {
	CategoryID    string `form:"categoryId"    validate:"omitempty,uuid"`
	SubcategoryID string `form:"subcategoryId" validate:"omitempty,uuid"`
	Search        string `form:"search"`
	// Deleted: "true" lists only soft-deleted products, "all" everything.
	Deleted string `form:"deleted"`
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type ProductResponse struct {
	ID                      string          `json:"id"`
	ProductCode             string          `json:"productCode"`
	Name                    string          `json:"name"`
	Description             string          `json:"description"`
	CategoryID              string          `json:"categoryId"`
	SubcategoryID           string          `json:"subcategoryId"`
	BrandName               string          `json:"brandName"`
	YoutubeLink             string          `json:"youtubeLink"`
	CaseQuantity            string          `json:"caseQuantity"`
	ReceivedCase            int             `json:"receivedCase"`
	TotalAvailableQuantity  int             `json:"totalAvailableQuantity"`
	MaxQuantityPerCustomer  *int            `json:"maxQuantityPerCustomer"`
	BasePrice               decimal.Decimal `json:"basePrice"`
	ProfitMarginPercentage  decimal.Decimal `json:"profitMarginPercentage"`
	DiscountPercentage      decimal.Decimal `json:"discountPercentage"`
	ProfitMarginPrice       decimal.Decimal `json:"profitMarginPrice"`
	CalculatedOriginalPrice decimal.Decimal `json:"calculatedOriginalPrice"`
	OfferPrice              decimal.Decimal `json:"offerPrice"`
	IsActive                bool            `json:"isActive"`
	IsFeatured              bool            `json:"isFeatured"`
	IsBestSeller            bool            `json:"isBestSeller"`
	IsDeleted               bool            `json:"isDeleted"`
	DeletedAt               *time.Time      `json:"deletedAt,omitempty"`
	CreatedAt               time.Time       `json:"createdAt"`
	UpdatedAt               time.Time       `json:"updatedAt"`
}

type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

type CodeAvailabilityResponse struct {
	ProductCode string `json:"productCode"`
	Available   bool   `json:"available"`
}
