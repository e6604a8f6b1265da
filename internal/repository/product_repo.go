package repository

import (
	"context"

	"campuskart/internal/dto"
	"campuskart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for the catalog.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	ListActive(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error

	// AdjustStock applies a manual admin correction outside any settlement
	// transaction.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error

	// Used inside transactions — callers must pass the tx instance.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	// DecrementStockGuardedTx subtracts qty only when stock_qty still covers
	// it, returning the number of rows updated. Zero rows means another
	// transaction won the last units.
	DecrementStockGuardedTx(tx *gorm.DB, id uuid.UUID, qty int) (int64, error)
	IncrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})

	// Active filter: "false" = inactive, "all" = everything, default active only
	switch filter.Active {
	case "false":
		q = q.Where("is_active = ?", false)
	case "all":
		// no filter
	default:
		q = q.Where("is_active = ?", true)
	}

	if filter.Name != "" {
		q = q.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) ListActive(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("category ASC, name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *productRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Update("is_active", true).Error
}

func (r *productRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock_qty", gorm.Expr("stock_qty + ?", delta)).Error
}

func (r *productRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := lockForUpdate(tx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) DecrementStockGuardedTx(tx *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock_qty >= ?", id, qty).
		Update("stock_qty", gorm.Expr("stock_qty - ?", qty))
	return res.RowsAffected, res.Error
}

func (r *productRepo) IncrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock_qty", gorm.Expr("stock_qty + ?", qty)).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
