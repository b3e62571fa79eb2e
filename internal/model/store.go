package model

import (
	"time"

	"github.com/srikumaragency/b-admin-prod-03/internal/pricing"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// StoreSettingsID is the primary key of the single settings row.
const StoreSettingsID = 1

// StoreSettings is the storefront configuration. There is exactly one row.
type StoreSettings struct {
	ID                uint            `gorm:"primaryKey"`
	MinimumOrderValue decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ContactEmail      string
	ContactPhone      string
	UpiID             string
	PromotionalOffer  string `gorm:"type:varchar(200)"`

	PackagingActive bool                              `gorm:"not null;default:false"`
	PackagingTiers  datatypes.JSONSlice[pricing.Tier] `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (StoreSettings) TableName() string { return "store_settings" }

// DefaultStoreSettings is what the first read creates.
func DefaultStoreSettings() StoreSettings {
	return StoreSettings{
		ID:                StoreSettingsID,
		MinimumOrderValue: decimal.NewFromInt(1000),
		PackagingTiers:    []pricing.Tier{},
	}
}

// Packaging adapts the stored columns for the packaging engine.
func (s StoreSettings) Packaging() pricing.PackagingSettings {
	return pricing.PackagingSettings{IsActive: s.PackagingActive, Tiers: s.PackagingTiers}
}
