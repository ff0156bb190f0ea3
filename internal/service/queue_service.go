package service

import (
	"context"
	"errors"
	"time"

	"cicloharmony/internal/dto"
	"cicloharmony/internal/model"
	"cicloharmony/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QueueService implements the admin approval queue: pending registrations
// are those without a decision; deciding appends exactly one history row and
// thereby removes the registration from the queue.
type QueueService interface {
	ListPending(ctx context.Context, tier model.Tier) ([]dto.RegistrationResponse, error)
	Decide(ctx context.Context, registrationID uuid.UUID, adminEmail string, req dto.DecisionRequest) (*dto.HistoryResponse, error)
	ListHistory(ctx context.Context, tier model.Tier, actionType string) ([]dto.HistoryResponse, error)
	// DeleteHistory is the only undo: removing the history row returns the
	// registration to the pending queue.
	DeleteHistory(ctx context.Context, id uuid.UUID) error
}

type queueService struct {
	regRepo     repository.RegistrationRepository
	historyRepo repository.ActionHistoryRepository
}

func NewQueueService(regRepo repository.RegistrationRepository, historyRepo repository.ActionHistoryRepository) QueueService {
	return &queueService{regRepo: regRepo, historyRepo: historyRepo}
}

func (s *queueService) ListPending(ctx context.Context, tier model.Tier) ([]dto.RegistrationResponse, error) {
	regs, err := s.regRepo.ListPending(ctx, tier)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RegistrationResponse, len(regs))
	for i := range regs {
		resp[i] = toRegistrationResponse(&regs[i])
	}
	return resp, nil
}

func (s *queueService) Decide(ctx context.Context, registrationID uuid.UUID, adminEmail string, req dto.DecisionRequest) (*dto.HistoryResponse, error) {
	reg, err := s.regRepo.FindByID(ctx, registrationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	processed, err := s.historyRepo.ExistsForRegistration(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if processed {
		return nil, ErrAlreadyProcessed
	}

	h := &model.ActionHistory{
		RegistrationID: reg.ID,
		Tier:           reg.Tier,
		// Snapshot at decision time — the report must survive later edits.
		Name:       reg.Name,
		Phone:      reg.Phone,
		Country:    reg.Country,
		ActionType: req.Action,
		AdminEmail: adminEmail,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.historyRepo.Create(ctx, h); err != nil {
		return nil, err
	}

	// The users2 variant additionally marks the registrant verified-paid.
	if req.SetHasMoney {
		if err := s.regRepo.SetHasMoney(ctx, reg.ID, true); err != nil {
			return nil, err
		}
	}

	return toHistoryResponse(h), nil
}

func (s *queueService) ListHistory(ctx context.Context, tier model.Tier, actionType string) ([]dto.HistoryResponse, error) {
	rows, err := s.historyRepo.List(ctx, tier, actionType)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.HistoryResponse, len(rows))
	for i := range rows {
		resp[i] = *toHistoryResponse(&rows[i])
	}
	return resp, nil
}

func (s *queueService) DeleteHistory(ctx context.Context, id uuid.UUID) error {
	return s.historyRepo.Delete(ctx, id)
}

func toRegistrationResponse(r *model.Registration) dto.RegistrationResponse {
	return dto.RegistrationResponse{
		ID:            r.ID.String(),
		Tier:          string(r.Tier),
		Name:          r.Name,
		Phone:         r.Phone,
		Country:       r.Country,
		Invitee:       r.Invitee,
		HasMoney:      r.HasMoney,
		PaymentMethod: r.PaymentMethod,
		BinanceID:     r.BinanceID,
		NequiPhone:    r.NequiPhone,
		OrderID1:      r.OrderID1,
		OrderID2:      r.OrderID2,
		MaskedCode:    r.MaskedCode,
		TicketID:      r.TicketID,
		CreatedAt:     r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toHistoryResponse(h *model.ActionHistory) *dto.HistoryResponse {
	return &dto.HistoryResponse{
		ID:             h.ID.String(),
		RegistrationID: h.RegistrationID.String(),
		Tier:           string(h.Tier),
		Name:           h.Name,
		Phone:          h.Phone,
		Country:        h.Country,
		ActionType:     h.ActionType,
		AdminEmail:     h.AdminEmail,
		CreatedAt:      h.CreatedAt.UTC().Format(time.RFC3339),
	}
}
