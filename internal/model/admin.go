package model

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a back-office account. Rol is always "admin" today; the column
// exists so the JWT role check has something to read.
type Admin struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null;default:'admin'"`
	Branch       string
	IsActive     bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Admin) TableName() string { return "admins" }
