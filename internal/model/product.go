package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. The four derived price columns are always
// written together from pricing.Compute; nothing else touches them.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductCode   string    `gorm:"uniqueIndex;not null"`
	Name          string    `gorm:"index;not null"`
	Description   string
	CategoryID    uuid.UUID `gorm:"type:uuid;index;not null"`
	SubcategoryID uuid.UUID `gorm:"type:uuid;index;not null"`
	BrandName     string
	YoutubeLink   string

	// CaseQuantity is free text such as "10 boxes"; its first integer is the
	// units per case.
	CaseQuantity           string
	ReceivedCase           int `gorm:"not null;default:0"`
	TotalAvailableQuantity int `gorm:"not null;default:0"`
	MaxQuantityPerCustomer *int

	BasePrice               decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ProfitMarginPercentage  decimal.Decimal `gorm:"type:decimal(7,2);not null"`
	DiscountPercentage      decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	ProfitMarginPrice       decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CalculatedOriginalPrice decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	OfferPrice              decimal.Decimal `gorm:"type:decimal(14,4);not null"`

	IsActive     bool `gorm:"not null;default:true;index"`
	IsFeatured   bool `gorm:"not null;default:false"`
	IsBestSeller bool `gorm:"not null;default:false"`
	IsDeleted    bool `gorm:"not null;default:false;index"`
	DeletedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
