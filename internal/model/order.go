package model

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. Forward-only; "cancelled" is reachable from any
// non-terminal state. "completed" and "cancelled" are terminal.
const (
	OrderPending        = "pending"
	OrderConfirmed      = "confirmed"
	OrderPreparing      = "preparing"
	OrderReady          = "ready"
	OrderOutForDelivery = "out_for_delivery"
	OrderCompleted      = "completed"
	OrderCancelled      = "cancelled"
)

// Fulfillment modes.
const (
	FulfillmentPickup   = "pickup"
	FulfillmentDelivery = "delivery"
)

// Order is a placed customer order. TotalCents = SubtotalCents +
// DeliveryFeeCents, and SubtotalCents must equal the sum of its items'
// LineTotalCents — both are standing invariants checked by the reports.
type Order struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderCode        string    `gorm:"uniqueIndex;not null"`
	CustomerName     string    `gorm:"not null"`
	Contact          string    `gorm:"not null"`
	Fulfillment      string    `gorm:"type:varchar(20);not null"` // pickup | delivery
	PickupLocation   string
	DeliveryLocation string
	PaymentMethod    string `gorm:"type:varchar(20);not null"` // gcash | cod
	SubtotalCents    int64  `gorm:"not null"`
	DeliveryFeeCents int64  `gorm:"not null;default:0"`
	TotalCents       int64  `gorm:"not null"`
	Status           string `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time

	Items    []OrderItem `gorm:"foreignKey:OrderID"`
	Payments []Payment   `gorm:"foreignKey:OrderID"`
}

// OrderItem is one order line. Name and category are snapshotted at order
// time so later product edits do not rewrite history. UnitCostCents is the
// FIFO-weighted cost derived from the item's lot allocations, not the live
// product default cost.
type OrderItem struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;index"`
	NameSnapshot     string    `gorm:"not null"`
	CategorySnapshot string    `gorm:"not null"`
	Qty              int       `gorm:"not null"`
	UnitPriceCents   int64     `gorm:"not null"`
	UnitCostCents    int64     `gorm:"not null"`
	LineTotalCents   int64     `gorm:"not null"`

	Allocations []OrderItemAllocation `gorm:"foreignKey:OrderItemID"`
}

// OrderItemAllocation records which lot (and at what cost) backed part of an
// order item. FIFO may split one item across several lots. A nil LotID flags
// the default-cost fallback used for products that were never received
// through the ledger.
type OrderItemAllocation struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderItemID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	LotID         *uuid.UUID `gorm:"type:uuid;index"`
	Qty           int        `gorm:"not null"`
	UnitCostCents int64      `gorm:"not null"`
	CreatedAt     time.Time
}

func (OrderItemAllocation) TableName() string { return "order_item_allocations" }
