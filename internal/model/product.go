package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable catalog item. All money fields are integer centavos.
//
// StockQty is a cached aggregate: it must always equal the sum of
// QtyRemaining across the product's inventory lots. Only the ledger
// (batch receipt) and the settlement engine (FIFO allocation, cancellation)
// mutate it, plus explicit manual admin corrections.
type Product struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"index;not null"`
	Category string    `gorm:"not null;default:'Uncategorized'"`
	// PriceCents is the selling price captured onto order items at order time.
	PriceCents int64 `gorm:"not null"`
	// CostCents is the default cost, used by the allocator only when the
	// product has never been received through the ledger.
	CostCents int64  `gorm:"not null;default:0"`
	StockQty  int    `gorm:"not null;default:0"`
	IsActive  bool   `gorm:"not null;default:true"`
	PhotoURL  string // opaque — file storage is external
	CreatedAt time.Time
	UpdatedAt time.Time
}
