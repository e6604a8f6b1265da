package model

import (
	"time"

	"github.com/google/uuid"
)

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRejected = "rejected"
)

// Payment methods.
const (
	MethodGCash = "gcash"
	MethodCOD   = "cod"
)

// Payment is one payment attempt against an order. An order may accumulate
// several attempts; the latest row by CreatedAt is the authoritative status.
type Payment struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Method          string    `gorm:"type:varchar(20);not null"`
	AmountCents     int64     `gorm:"not null"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending'"`
	ReferenceNumber string    // GCash transaction id
	ProofURL        string    // opaque — uploaded proof image
	PaidAt          *time.Time
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}
