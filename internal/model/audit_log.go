package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records destructive or state-changing admin actions. The source
// system hard-deleted orders with no trace; this table is the paper trail.
// Rows are append-only.
type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Actor     string    `gorm:"not null"` // admin username, or "system"
	Action    string    `gorm:"not null"` // e.g. "order.delete", "order.cancel"
	Entity    string    `gorm:"not null"`
	EntityID  string    `gorm:"not null;index"`
	Detail    string
	CreatedAt time.Time `gorm:"index"`
}
