package model

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is a back-office operator account.
// Role: "admin" (full access) | "staff" (orders/inventory boards).
type AdminUser struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'staff'"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
