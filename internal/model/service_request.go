package model

import (
	"time"

	"github.com/google/uuid"
)

// Service request kinds — manually fulfilled by an operator.
const (
	RequestPrinting     = "printing"
	RequestGCashCashIn  = "gcash_cash_in"
	RequestGCashCashOut = "gcash_cash_out"
	RequestDelivery     = "delivery"
)

// Service request statuses.
const (
	RequestPending    = "pending"
	RequestProcessing = "processing"
	RequestCompleted  = "completed"
	RequestRejected   = "rejected"
)

// ServiceRequest is a row on one of the manual-fulfillment boards (printing,
// GCash cash-in/out, off-campus delivery). No invariants beyond CRUD — the
// operator drives the status by hand.
type ServiceRequest struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind         string    `gorm:"type:varchar(20);not null;index"`
	CustomerName string    `gorm:"not null"`
	Contact      string    `gorm:"not null"`
	Details      string
	AmountCents  int64  `gorm:"not null;default:0"`
	Status       string `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
