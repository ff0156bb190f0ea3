package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"cicloharmony/internal/dto"
	"cicloharmony/internal/model"
	"cicloharmony/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	activeQrCachePrefix = "qr:active:"
	activeQrCacheTTL    = 5 * time.Minute

	defaultCountdownMinutes = 1440
)

// defaultPriceUSD applies when the admin leaves the USD price blank.
var defaultPriceUSD = decimal.New(2500, -2) // 25.00

type SettingsService interface {
	// ActiveQr resolves the authoritative QR configuration for a flow
	// (the get_active_qr_setting lookup), cached in Redis.
	ActiveQr(ctx context.Context, qrType model.QrType) (*model.QrSetting, error)
	IsEnabled(ctx context.Context, key string) (bool, error)
	ListSystemSettings(ctx context.Context) ([]dto.SystemSettingResponse, error)
	UpsertSystemSetting(ctx context.Context, req dto.SystemSettingRequest) error
	// SaveQrGroup upserts the payer and admin-confirmation rows of one
	// tier/platform combination together.
	SaveQrGroup(ctx context.Context, req dto.QrGroupRequest) ([]dto.QrSettingResponse, error)
	ListQrSettings(ctx context.Context) ([]dto.QrSettingResponse, error)
	PreferencesByCountry(ctx context.Context, country string) ([]dto.PaymentPreferenceResponse, error)
	UpsertPreference(ctx context.Context, req dto.PaymentPreferenceRequest) error
}

type settingsService struct {
	qrRepo   repository.QrSettingRepository
	sysRepo  repository.SystemSettingRepository
	prefRepo repository.PaymentPreferenceRepository
	rdb      *redis.Client
}

func NewSettingsService(
	qrRepo repository.QrSettingRepository,
	sysRepo repository.SystemSettingRepository,
	prefRepo repository.PaymentPreferenceRepository,
	rdb *redis.Client,
) SettingsService {
	return &settingsService{qrRepo: qrRepo, sysRepo: sysRepo, prefRepo: prefRepo, rdb: rdb}
}

// ── QR settings ──────────────────────────────────────────────────────────────

func (s *settingsService) ActiveQr(ctx context.Context, qrType model.QrType) (*model.QrSetting, error) {
	cacheKey := activeQrCachePrefix + string(qrType)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var setting model.QrSetting
			if jsonErr := json.Unmarshal(cached, &setting); jsonErr == nil {
				return &setting, nil
			}
		}
	}

	setting, err := s.qrRepo.FindActiveByType(ctx, qrType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQrNotConfigured
	}
	if err != nil {
		return nil, err
	}

	// Populate cache — best effort, ignore errors
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(setting); jsonErr == nil {
			_ = s.rdb.Set(ctx, cacheKey, b, activeQrCacheTTL).Err()
		}
	}
	return setting, nil
}

func (s *settingsService) SaveQrGroup(ctx context.Context, req dto.QrGroupRequest) ([]dto.QrSettingResponse, error) {
	tier := model.Tier(req.Tier)
	primaryType := model.PrimaryQrType(tier, req.Platform)
	adminType := model.AdminQrType(tier)

	primary, err := buildQrSetting(primaryType, req.Primary)
	if err != nil {
		return nil, err
	}
	admin, err := buildQrSetting(adminType, req.Admin)
	if err != nil {
		return nil, err
	}

	// Both rows are saved together: the payer QR and its confirmation QR
	// must never drift apart.
	if err := s.qrRepo.UpsertGroup(ctx, []*model.QrSetting{primary, admin}); err != nil {
		return nil, err
	}

	s.invalidateQrCache(ctx, primaryType, adminType)

	return []dto.QrSettingResponse{toQrResponse(primary), toQrResponse(admin)}, nil
}

func (s *settingsService) ListQrSettings(ctx context.Context) ([]dto.QrSettingResponse, error) {
	types := []model.QrType{
		model.QrRegister, model.QrRegisterNequi, model.QrRegisterAdmin,
		model.QrRegister150, model.QrRegister150Nequi, model.QrRegister150Admin,
	}
	rows, err := s.qrRepo.ListByTypes(ctx, types)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.QrSettingResponse, len(rows))
	for i := range rows {
		resp[i] = toQrResponse(&rows[i])
	}
	return resp, nil
}

func (s *settingsService) invalidateQrCache(ctx context.Context, types ...model.QrType) {
	if s.rdb == nil {
		return
	}
	keys := make([]string, len(types))
	for i, t := range types {
		keys[i] = activeQrCachePrefix + string(t)
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("settings: qr cache invalidation failed")
	}
}

// buildQrSetting applies the form defaults: countdown 1440 minutes, USD
// 25.00, COP parsed by stripping thousand-separator dots.
func buildQrSetting(qrType model.QrType, in dto.QrSettingInput) (*model.QrSetting, error) {
	countdown := defaultCountdownMinutes
	if in.CountdownMinutes != nil {
		countdown = *in.CountdownMinutes
	}

	priceUSD := defaultPriceUSD
	if strings.TrimSpace(in.PriceUSD) != "" {
		parsed, err := decimal.NewFromString(strings.TrimSpace(in.PriceUSD))
		if err != nil {
			return nil, FieldErrors{"price_usd": "precio USD invalido"}
		}
		priceUSD = parsed
	}

	priceCOP := decimal.Zero
	if strings.TrimSpace(in.PriceCOP) != "" {
		parsed, err := ParseCOP(in.PriceCOP)
		if err != nil {
			return nil, FieldErrors{"price_cop": "precio COP invalido"}
		}
		priceCOP = parsed
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	return &model.QrSetting{
		QrType:           qrType,
		Code:             in.Code,
		CountdownMinutes: countdown,
		PriceUSD:         priceUSD,
		PriceCOP:         priceCOP,
		ImageURL:         in.ImageURL,
		ImageURL2:        in.ImageURL2,
		Active:           active,
	}, nil
}

// ParseCOP parses a Colombian peso amount as typed in the admin form,
// stripping thousand-separator dots ("1.234.567" → 1234567).
func ParseCOP(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ".", "")
	return decimal.NewFromString(cleaned)
}

func toQrResponse(s *model.QrSetting) dto.QrSettingResponse {
	return dto.QrSettingResponse{
		ID:               s.ID.String(),
		QrType:           string(s.QrType),
		Code:             s.Code,
		CountdownMinutes: s.CountdownMinutes,
		PriceUSD:         s.PriceUSD.StringFixed(2),
		PriceCOP:         s.PriceCOP.StringFixed(0),
		ImageURL:         s.ImageURL,
		ImageURL2:        s.ImageURL2,
		Active:           s.Active,
		UpdatedAt:        s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// ── System settings ──────────────────────────────────────────────────────────

func (s *settingsService) IsEnabled(ctx context.Context, key string) (bool, error) {
	return s.sysRepo.IsEnabled(ctx, key)
}

func (s *settingsService) ListSystemSettings(ctx context.Context) ([]dto.SystemSettingResponse, error) {
	rows, err := s.sysRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SystemSettingResponse, len(rows))
	for i, r := range rows {
		resp[i] = dto.SystemSettingResponse{Key: r.Key, Enabled: r.Enabled}
	}
	return resp, nil
}

func (s *settingsService) UpsertSystemSetting(ctx context.Context, req dto.SystemSettingRequest) error {
	return s.sysRepo.Upsert(ctx, req.Key, req.Enabled)
}

// ── Payment preferences ──────────────────────────────────────────────────────

func (s *settingsService) PreferencesByCountry(ctx context.Context, country string) ([]dto.PaymentPreferenceResponse, error) {
	if country == "" {
		return []dto.PaymentPreferenceResponse{}, nil
	}
	rows, err := s.prefRepo.ListByCountry(ctx, country)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PaymentPreferenceResponse, len(rows))
	for i, r := range rows {
		resp[i] = dto.PaymentPreferenceResponse{
			Country:       r.Country,
			PaymentMethod: r.PaymentMethod,
			Preferred:     r.Preferred,
		}
	}
	return resp, nil
}

func (s *settingsService) UpsertPreference(ctx context.Context, req dto.PaymentPreferenceRequest) error {
	return s.prefRepo.Upsert(ctx, &model.PaymentPreference{
		Country:       req.Country,
		PaymentMethod: req.PaymentMethod,
		Preferred:     req.Preferred,
	})
}
