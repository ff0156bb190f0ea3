package repository

import (
	"context"

	"cicloharmony/internal/model"

	"gorm.io/gorm"
)

type QrSettingRepository interface {
	// FindActiveByType resolves the authoritative configuration for a flow:
	// the most recently updated active row of that type.
	FindActiveByType(ctx context.Context, qrType model.QrType) (*model.QrSetting, error)
	ListByTypes(ctx context.Context, types []model.QrType) ([]model.QrSetting, error)
	// UpsertGroup replaces the active rows of the given settings' types in a
	// single transaction: previous rows of each type are deactivated, then
	// the new rows are inserted active.
	UpsertGroup(ctx context.Context, settings []*model.QrSetting) error
}

type qrSettingRepo struct{ db *gorm.DB }

func NewQrSettingRepository(db *gorm.DB) QrSettingRepository {
	return &qrSettingRepo{db: db}
}

func (r *qrSettingRepo) FindActiveByType(ctx context.Context, qrType model.QrType) (*model.QrSetting, error) {
	var s model.QrSetting
	err := r.db.WithContext(ctx).
		Where("qr_type = ? AND active = true", qrType).
		Order("updated_at DESC").
		First(&s).Error
	return &s, err
}

func (r *qrSettingRepo) ListByTypes(ctx context.Context, types []model.QrType) ([]model.QrSetting, error) {
	var rows []model.QrSetting
	err := r.db.WithContext(ctx).
		Where("qr_type IN ?", types).
		Order("qr_type ASC, updated_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *qrSettingRepo) UpsertGroup(ctx context.Context, settings []*model.QrSetting) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range settings {
			if err := tx.Model(&model.QrSetting{}).
				Where("qr_type = ?", s.QrType).
				Update("active", false).Error; err != nil {
				return err
			}
			if err := tx.Create(s).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
