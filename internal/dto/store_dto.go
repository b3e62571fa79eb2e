package dto

import (
	"github.com/srikumaragency/b-admin-prod-03/internal/pricing"

	"github.com/shopspring/decimal"
)

type StoreSettingsRequest struct {
	MinimumOrderValue decimal.Decimal `json:"minimumOrderValue" validate:"gt=0"`
	ContactEmail      string          `json:"contactEmail"      validate:"omitempty,email"`
	ContactPhone      string          `json:"contactPhone"`
	UpiID             string          `json:"upiId"             validate:"max=100"`
	PromotionalOffer  string          `json:"promotionalOffer"  validate:"max=200"`
}

type StoreSettingsResponse struct {
	MinimumOrderValue decimal.Decimal           `json:"minimumOrderValue"`
	ContactEmail      string                    `json:"contactEmail"`
	ContactPhone      string                    `json:"contactPhone"`
	UpiID             string                    `json:"upiId"`
	PromotionalOffer  string                    `json:"promotionalOffer"`
	Packaging         pricing.PackagingSettings `json:"packagingSettings"`
}

type PackagingSettingsRequest struct {
	IsActive bool           `json:"isActive"`
	Tiers    []pricing.Tier `json:"tiers"`
}

type PackagingCostResponse struct {
	OrderValue      decimal.Decimal `json:"orderValue"`
	PackagingCost   decimal.Decimal `json:"packagingCost"`
	PackagingActive bool            `json:"packagingActive"`
}
