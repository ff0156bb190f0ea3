package service

import (
	"context"
	"time"

	"cicloharmony/internal/dto"
	"cicloharmony/internal/model"
	"cicloharmony/internal/repository"

	"github.com/google/uuid"
)

type NotificationService interface {
	// ListPublished feeds the public welcome modal, in display order.
	ListPublished(ctx context.Context) ([]dto.NotificationResponse, error)
	ListAll(ctx context.Context) ([]dto.NotificationResponse, error)
	Create(ctx context.Context, req dto.NotificationRequest) (*dto.NotificationResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.NotificationRequest) (*dto.NotificationResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Reorder persists the full resulting order atomically.
	Reorder(ctx context.Context, req dto.ReorderRequest) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) ListPublished(ctx context.Context) ([]dto.NotificationResponse, error) {
	rows, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	return toNotificationResponses(rows), nil
}

func (s *notificationService) ListAll(ctx context.Context) ([]dto.NotificationResponse, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toNotificationResponses(rows), nil
}

func (s *notificationService) Create(ctx context.Context, req dto.NotificationRequest) (*dto.NotificationResponse, error) {
	// New entries land at the end of the list.
	existing, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	n := &model.Notification{
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		Published:   req.Published,
		OrderIndex:  len(existing),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	resp := toNotificationResponse(n)
	return &resp, nil
}

func (s *notificationService) Update(ctx context.Context, id uuid.UUID, req dto.NotificationRequest) (*dto.NotificationResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	n.Title = req.Title
	n.Description = req.Description
	n.VideoURL = req.VideoURL
	n.Published = req.Published
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	resp := toNotificationResponse(n)
	return &resp, nil
}

func (s *notificationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *notificationService) Reorder(ctx context.Context, req dto.ReorderRequest) error {
	ids := make([]uuid.UUID, len(req.IDs))
	for i, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return FieldErrors{"ids": "identificador invalido: " + raw}
		}
		ids[i] = id
	}
	return s.repo.Reorder(ctx, ids)
}

func toNotificationResponses(rows []model.Notification) []dto.NotificationResponse {
	resp := make([]dto.NotificationResponse, len(rows))
	for i := range rows {
		resp[i] = toNotificationResponse(&rows[i])
	}
	return resp
}

func toNotificationResponse(n *model.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:          n.ID.String(),
		Title:       n.Title,
		Description: n.Description,
		VideoURL:    n.VideoURL,
		Published:   n.Published,
		OrderIndex:  n.OrderIndex,
		CreatedAt:   n.CreatedAt.UTC().Format(time.RFC3339),
	}
}
