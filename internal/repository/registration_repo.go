package repository

import (
	"context"

	"cicloharmony/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(ctx context.Context, r *model.Registration) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Registration, error)
	// ListPending returns registrations of a tier that have no decision yet
	// (pending queue = "not present in history"), oldest first.
	ListPending(ctx context.Context, tier model.Tier) ([]model.Registration, error)
	SetHasMoney(ctx context.Context, id uuid.UUID, hasMoney bool) error
}

type registrationRepo struct{ db *gorm.DB }

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepo{db: db}
}

func (r *registrationRepo) Create(ctx context.Context, reg *model.Registration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *registrationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	var reg model.Registration
	err := r.db.WithContext(ctx).First(&reg, "id = ?", id).Error
	return &reg, err
}

func (r *registrationRepo) ListPending(ctx context.Context, tier model.Tier) ([]model.Registration, error) {
	var regs []model.Registration
	q := r.db.WithContext(ctx).
		Where("id NOT IN (?)", r.db.Model(&model.ActionHistory{}).Select("registration_id")).
		Order("created_at ASC")
	// Empty tier means both tiers.
	if tier != "" {
		q = q.Where("tier = ?", tier)
	}
	err := q.Find(&regs).Error
	return regs, err
}

func (r *registrationRepo) SetHasMoney(ctx context.Context, id uuid.UUID, hasMoney bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Registration{}).
		Where("id = ?", id).
		Update("has_money", hasMoney).Error
}
