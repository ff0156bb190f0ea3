package repository

import (
	"context"

	"cicloharmony/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	ListPublished(ctx context.Context) ([]model.Notification, error)
	ListAll(ctx context.Context) ([]model.Notification, error)
	Update(ctx context.Context, n *model.Notification) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Reorder persists the full resulting order atomically: ids[i] gets
	// order index i. Either every row is updated or none is.
	Reorder(ctx context.Context, ids []uuid.UUID) error
}

type notificationRepo struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var n model.Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	return &n, err
}

func (r *notificationRepo) ListPublished(ctx context.Context) ([]model.Notification, error) {
	var rows []model.Notification
	err := r.db.WithContext(ctx).
		Where("published = true").
		Order("order_index ASC").
		Find(&rows).Error
	return rows, err
}

func (r *notificationRepo) ListAll(ctx context.Context) ([]model.Notification, error) {
	var rows []model.Notification
	err := r.db.WithContext(ctx).Order("order_index ASC").Find(&rows).Error
	return rows, err
}

func (r *notificationRepo) Update(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *notificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Notification{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepo) Reorder(ctx context.Context, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			res := tx.Model(&model.Notification{}).
				Where("id = ?", id).
				Update("order_index", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}
