package repository

import (
	"context"

	"cicloharmony/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SystemSettingRepository interface {
	// IsEnabled returns the flag value; unknown keys read as false.
	IsEnabled(ctx context.Context, key string) (bool, error)
	List(ctx context.Context) ([]model.SystemSetting, error)
	Upsert(ctx context.Context, key string, enabled bool) error
}

type systemSettingRepo struct{ db *gorm.DB }

func NewSystemSettingRepository(db *gorm.DB) SystemSettingRepository {
	return &systemSettingRepo{db: db}
}

func (r *systemSettingRepo) IsEnabled(ctx context.Context, key string) (bool, error) {
	var s model.SystemSetting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&s).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.Enabled, nil
}

func (r *systemSettingRepo) List(ctx context.Context) ([]model.SystemSetting, error) {
	var rows []model.SystemSetting
	err := r.db.WithContext(ctx).Order("key ASC").Find(&rows).Error
	return rows, err
}

func (r *systemSettingRepo) Upsert(ctx context.Context, key string, enabled bool) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
		}).
		Create(&model.SystemSetting{Key: key, Enabled: enabled}).Error
}
