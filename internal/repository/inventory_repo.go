package repository

import (
	"context"

	"campuskart/internal/dto"
	"campuskart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryRepository is the data access contract for the batch ledger and
// its cost lots.
type InventoryRepository interface {
	CreateBatchTx(tx *gorm.DB, b *model.InventoryBatch) error
	FindBatchByID(ctx context.Context, id uuid.UUID) (*model.InventoryBatch, error)
	ListBatches(ctx context.Context, filter dto.BatchFilter) ([]model.InventoryBatch, int64, error)

	// OpenLotsTx returns the product's lots with remaining quantity, oldest
	// received first, row-locked on backends that support it. This is the
	// FIFO consumption order.
	OpenLotsTx(tx *gorm.DB, productID uuid.UUID) ([]model.InventoryLot, error)
	CountLotsTx(tx *gorm.DB, productID uuid.UUID) (int64, error)
	// AddLotRemainingTx adjusts qty_remaining by delta (negative = consume).
	AddLotRemainingTx(tx *gorm.DB, id uuid.UUID, delta int) error

	// SumRemaining reports the lot-side of the stock invariant for a product.
	SumRemaining(ctx context.Context, productID uuid.UUID) (int, error)

	DB() *gorm.DB
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) CreateBatchTx(tx *gorm.DB, b *model.InventoryBatch) error {
	// Creates the batch row and its lots in one insert graph.
	return tx.Create(b).Error
}

func (r *inventoryRepo) FindBatchByID(ctx context.Context, id uuid.UUID) (*model.InventoryBatch, error) {
	var b model.InventoryBatch
	err := r.db.WithContext(ctx).Preload("Lots.Product").First(&b, "id = ?", id).Error
	return &b, err
}

func (r *inventoryRepo) ListBatches(ctx context.Context, filter dto.BatchFilter) ([]model.InventoryBatch, int64, error) {
	var batches []model.InventoryBatch
	var total int64

	q := r.db.WithContext(ctx).Model(&model.InventoryBatch{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Lots.Product").
		Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&batches).Error
	return batches, total, err
}

func (r *inventoryRepo) OpenLotsTx(tx *gorm.DB, productID uuid.UUID) ([]model.InventoryLot, error) {
	var lots []model.InventoryLot
	err := lockForUpdate(tx).
		Where("product_id = ? AND qty_remaining > 0", productID).
		Order("created_at ASC, id ASC").
		Find(&lots).Error
	return lots, err
}

func (r *inventoryRepo) CountLotsTx(tx *gorm.DB, productID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Model(&model.InventoryLot{}).Where("product_id = ?", productID).Count(&n).Error
	return n, err
}

func (r *inventoryRepo) AddLotRemainingTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.InventoryLot{}).
		Where("id = ?", id).
		Update("qty_remaining", gorm.Expr("qty_remaining + ?", delta)).Error
}

func (r *inventoryRepo) SumRemaining(ctx context.Context, productID uuid.UUID) (int, error) {
	var sum *int
	err := r.db.WithContext(ctx).Model(&model.InventoryLot{}).
		Where("product_id = ?", productID).
		Select("SUM(qty_remaining)").
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}

func (r *inventoryRepo) DB() *gorm.DB { return r.db }
