package repository

import (
	"context"
	"time"

	"cicloharmony/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminUserRepository interface {
	Create(ctx context.Context, u *model.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*model.AdminUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.AdminUser, error)
	List(ctx context.Context) ([]model.AdminUser, error)
	Update(ctx context.Context, u *model.AdminUser) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type adminUserRepo struct{ db *gorm.DB }

func NewAdminUserRepository(db *gorm.DB) AdminUserRepository {
	return &adminUserRepo{db: db}
}

func (r *adminUserRepo) Create(ctx context.Context, u *model.AdminUser) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *adminUserRepo) FindByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	var u model.AdminUser
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?) AND active = true", email).
		First(&u).Error
	return &u, err
}

func (r *adminUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AdminUser, error) {
	var u model.AdminUser
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *adminUserRepo) List(ctx context.Context) ([]model.AdminUser, error) {
	var users []model.AdminUser
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	return users, err
}

func (r *adminUserRepo) Update(ctx context.Context, u *model.AdminUser) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *adminUserRepo) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.AdminUser{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

func (r *adminUserRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).
		Model(&model.AdminUser{}).
		Where("id = ?", id).
		Update("active", active).Error
}
