package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is the top level of the catalog tree.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description string
	IsActive    bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Subcategories []Subcategory `gorm:"foreignKey:CategoryID"`
}

// Subcategory names are unique within their category.
type Subcategory struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subcategory_name"`
	Name        string    `gorm:"not null;uniqueIndex:idx_subcategory_name"`
	Description string
	IsActive    bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
