package repository

import (
	"context"

	"cicloharmony/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActionHistoryRepository interface {
	Create(ctx context.Context, h *model.ActionHistory) error
	ExistsForRegistration(ctx context.Context, registrationID uuid.UUID) (bool, error)
	List(ctx context.Context, tier model.Tier, actionType string) ([]model.ActionHistory, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type actionHistoryRepo struct{ db *gorm.DB }

func NewActionHistoryRepository(db *gorm.DB) ActionHistoryRepository {
	return &actionHistoryRepo{db: db}
}

func (r *actionHistoryRepo) Create(ctx context.Context, h *model.ActionHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *actionHistoryRepo) ExistsForRegistration(ctx context.Context, registrationID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ActionHistory{}).
		Where("registration_id = ?", registrationID).
		Count(&count).Error
	return count > 0, err
}

func (r *actionHistoryRepo) List(ctx context.Context, tier model.Tier, actionType string) ([]model.ActionHistory, error) {
	q := r.db.WithContext(ctx).Model(&model.ActionHistory{}).Order("created_at DESC")
	if tier != "" {
		q = q.Where("tier = ?", tier)
	}
	if actionType != "" {
		q = q.Where("action_type = ?", actionType)
	}
	var rows []model.ActionHistory
	err := q.Find(&rows).Error
	return rows, err
}

func (r *actionHistoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.ActionHistory{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
