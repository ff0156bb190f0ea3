package repository

import (
	"context"

	"cicloharmony/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentPreferenceRepository interface {
	ListByCountry(ctx context.Context, country string) ([]model.PaymentPreference, error)
	Upsert(ctx context.Context, p *model.PaymentPreference) error
}

type paymentPreferenceRepo struct{ db *gorm.DB }

func NewPaymentPreferenceRepository(db *gorm.DB) PaymentPreferenceRepository {
	return &paymentPreferenceRepo{db: db}
}

func (r *paymentPreferenceRepo) ListByCountry(ctx context.Context, country string) ([]model.PaymentPreference, error) {
	var rows []model.PaymentPreference
	err := r.db.WithContext(ctx).
		Where("country = ?", country).
		Order("preferred DESC, payment_method ASC").
		Find(&rows).Error
	return rows, err
}

func (r *paymentPreferenceRepo) Upsert(ctx context.Context, p *model.PaymentPreference) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "country"}, {Name: "payment_method"}},
			DoUpdates: clause.AssignmentColumns([]string{"preferred", "updated_at"}),
		}).
		Create(p).Error
}
