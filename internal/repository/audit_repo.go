package repository

import (
	"context"

	"campuskart/internal/model"

	"gorm.io/gorm"
)

// AuditRepository appends to the audit trail. Entries are never updated or
// deleted.
type AuditRepository interface {
	Create(ctx context.Context, e *model.AuditLog) error
	CreateTx(tx *gorm.DB, e *model.AuditLog) error
	ListByEntity(ctx context.Context, entity, entityID string) ([]model.AuditLog, error)
}

type auditRepo struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) AuditRepository { return &auditRepo{db: db} }

func (r *auditRepo) Create(ctx context.Context, e *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *auditRepo) CreateTx(tx *gorm.DB, e *model.AuditLog) error {
	return tx.Create(e).Error
}

func (r *auditRepo) ListByEntity(ctx context.Context, entity, entityID string) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.WithContext(ctx).
		Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
