package repository

import (
	"context"

	"campuskart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository is the data access contract for back-office accounts.
type UserRepository interface {
	Create(ctx context.Context, u *model.AdminUser) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AdminUser, error)
	FindByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	List(ctx context.Context) ([]model.AdminUser, error)
	Update(ctx context.Context, u *model.AdminUser) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, u *model.AdminUser) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AdminUser, error) {
	var u model.AdminUser
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	var u model.AdminUser
	err := r.db.WithContext(ctx).Where("username = ? AND is_active = ?", username, true).First(&u).Error
	return &u, err
}

func (r *userRepo) List(ctx context.Context) ([]model.AdminUser, error) {
	var users []model.AdminUser
	err := r.db.WithContext(ctx).Order("username ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, u *model.AdminUser) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.AdminUser{}).Where("id = ?", id).Update("is_active", false).Error
}
