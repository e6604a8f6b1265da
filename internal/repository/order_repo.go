package repository

import (
	"context"
	"time"

	"campuskart/internal/dto"
	"campuskart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository is the data access contract for orders, their items,
// lot allocations and payments.
type OrderRepository interface {
	CreateTx(tx *gorm.DB, o *model.Order) error
	CreateAllocationTx(tx *gorm.DB, a *model.OrderItemAllocation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Order, error)
	FindByCode(ctx context.Context, code string) (*model.Order, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, filter dto.OrderFilter, dayStart, dayEnd *time.Time) ([]model.Order, int64, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	AllocationsByOrderTx(tx *gorm.DB, orderID uuid.UUID) ([]model.OrderItemAllocation, error)
	// DeleteTx hard-deletes the order and all dependent rows.
	DeleteTx(tx *gorm.DB, orderID uuid.UUID) error

	// Payments. Latest by created_at is the authoritative status.
	LatestPaymentTx(tx *gorm.DB, orderID uuid.UUID) (*model.Payment, error)
	UpdatePaymentTx(tx *gorm.DB, p *model.Payment) error

	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) CreateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Create(o).Error
}

func (r *orderRepo) CreateAllocationTx(tx *gorm.DB, a *model.OrderItemAllocation) error {
	return tx.Create(a).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).First(&o, "id = ?", id).Error
	return &o, err
}

func (r *orderRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := lockForUpdate(tx).Preload("Items").First(&o, "id = ?", id).Error
	return &o, err
}

func (r *orderRepo) FindByCode(ctx context.Context, code string) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).First(&o, "order_code = ?", code).Error
	return &o, err
}

func (r *orderRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Where("order_code = ?", code).Count(&n).Error
	return n > 0, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter, dayStart, dayEnd *time.Time) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Order{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if dayStart != nil && dayEnd != nil {
		q = q.Where("created_at >= ? AND created_at < ?", *dayStart, *dayEnd)
	}
	if filter.Payment != "" {
		// Status of the latest payment attempt per order.
		q = q.Where(`EXISTS (
			SELECT 1 FROM payments p
			WHERE p.order_id = orders.id AND p.status = ?
			  AND p.created_at = (SELECT MAX(p2.created_at) FROM payments p2 WHERE p2.order_id = orders.id)
		)`, filter.Payment)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Order{}).Where("id = ?", id).Update("status", status).Error
}

func (r *orderRepo) AllocationsByOrderTx(tx *gorm.DB, orderID uuid.UUID) ([]model.OrderItemAllocation, error) {
	var allocs []model.OrderItemAllocation
	err := tx.Where("order_id = ?", orderID).Find(&allocs).Error
	return allocs, err
}

func (r *orderRepo) DeleteTx(tx *gorm.DB, orderID uuid.UUID) error {
	if err := tx.Where("order_id = ?", orderID).Delete(&model.OrderItemAllocation{}).Error; err != nil {
		return err
	}
	if err := tx.Where("order_id = ?", orderID).Delete(&model.Payment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("order_id = ?", orderID).Delete(&model.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Order{}, "id = ?", orderID).Error
}

func (r *orderRepo) LatestPaymentTx(tx *gorm.DB, orderID uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	err := tx.Where("order_id = ?", orderID).
		Order("created_at DESC").
		First(&p).Error
	return &p, err
}

func (r *orderRepo) UpdatePaymentTx(tx *gorm.DB, p *model.Payment) error {
	return tx.Save(p).Error
}

func (r *orderRepo) DB() *gorm.DB { return r.db }
