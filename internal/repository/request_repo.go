package repository

import (
	"context"

	"campuskart/internal/dto"
	"campuskart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestRepository stores the manual-fulfillment service request boards.
type RequestRepository interface {
	Create(ctx context.Context, sr *model.ServiceRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceRequest, error)
	List(ctx context.Context, filter dto.ServiceRequestFilter) ([]model.ServiceRequest, int64, error)
	Update(ctx context.Context, sr *model.ServiceRequest) error
}

type requestRepo struct{ db *gorm.DB }

func NewRequestRepository(db *gorm.DB) RequestRepository { return &requestRepo{db: db} }

func (r *requestRepo) Create(ctx context.Context, sr *model.ServiceRequest) error {
	return r.db.WithContext(ctx).Create(sr).Error
}

func (r *requestRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceRequest, error) {
	var sr model.ServiceRequest
	err := r.db.WithContext(ctx).First(&sr, "id = ?", id).Error
	return &sr, err
}

func (r *requestRepo) List(ctx context.Context, filter dto.ServiceRequestFilter) ([]model.ServiceRequest, int64, error) {
	var requests []model.ServiceRequest
	var total int64

	q := r.db.WithContext(ctx).Model(&model.ServiceRequest{})
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&requests).Error
	return requests, total, err
}

func (r *requestRepo) Update(ctx context.Context, sr *model.ServiceRequest) error {
	return r.db.WithContext(ctx).Save(sr).Error
}
