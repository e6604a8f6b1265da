package repository

import (
	"context"

	"campuskart/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository persists the admin-editable key/value settings.
type SettingRepository interface {
	GetGroup(ctx context.Context, group string) ([]model.Setting, error)
	Upsert(ctx context.Context, s *model.Setting) error
}

type settingRepo struct{ db *gorm.DB }

func NewSettingRepository(db *gorm.DB) SettingRepository { return &settingRepo{db: db} }

func (r *settingRepo) GetGroup(ctx context.Context, group string) ([]model.Setting, error) {
	var settings []model.Setting
	err := r.db.WithContext(ctx).Where("group_name = ?", group).Find(&settings).Error
	return settings, err
}

func (r *settingRepo) Upsert(ctx context.Context, s *model.Setting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "group_name", "updated_at"}),
	}).Create(s).Error
}
