package model

import (
	"time"

	"github.com/google/uuid"
)

// InventoryBatch is one stock-receiving event grouping lots across products.
// Batches are immutable once created — there is no update or delete path.
type InventoryBatch struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BatchCode string    `gorm:"uniqueIndex;not null"`
	Note      string    // supplier / receipt reference, free text
	CreatedAt time.Time

	Lots []InventoryLot `gorm:"foreignKey:BatchID"`
}

func (InventoryBatch) TableName() string { return "inventory_batches" }

// InventoryLot is a cost-and-quantity slice of one product's stock from one
// batch. QtyRemaining is monotonically non-increasing and bounded by
// 0 <= QtyRemaining <= QtyReceived; UnitCostCents is fixed at receipt time
// and is the FIFO cost basis. Consumption order is (created_at, id) ascending.
type InventoryLot struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	BatchID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index"`
	QtyReceived   int       `gorm:"not null"`
	QtyRemaining  int       `gorm:"not null"`
	UnitCostCents int64     `gorm:"not null"`
	CreatedAt     time.Time `gorm:"index"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
