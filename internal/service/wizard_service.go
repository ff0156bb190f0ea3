package service

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"cicloharmony/internal/config"
	"cicloharmony/internal/dto"
	"cicloharmony/internal/infra"
	"cicloharmony/internal/model"
	"cicloharmony/internal/repository"
	"cicloharmony/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	binanceIDRe = regexp.MustCompile(`^\d{9,10}$`)
	nequiRe     = regexp.MustCompile(`^\d{10}$`)
	orderIDRe   = regexp.MustCompile(`^\d{10,19}$`)
)

// EmailDispatcher enqueues async email jobs (implemented by worker.Dispatcher).
type EmailDispatcher interface {
	EnqueueEmail(ctx context.Context, payload interface{}) error
}

// WizardService drives the four-step registration funnel. Session state lives
// in Redis; the only durable artifact is the Registration row written at
// completion.
type WizardService interface {
	Start(ctx context.Context, req dto.StartWizardRequest) (*dto.StartWizardResponse, error)
	SubmitStep1(ctx context.Context, sessionID string, req dto.Step1Request) (*dto.Step1Response, error)
	SelectPlatform(ctx context.Context, sessionID string, req dto.PlatformRequest) (*dto.QrStepResponse, error)
	SubmitPrimaryOrder(ctx context.Context, sessionID, orderID string) (*dto.QrStepResponse, error)
	CompleteWithAdminOrder(ctx context.Context, sessionID, orderID string) (*dto.TicketResponse, error)
	Back(ctx context.Context, sessionID string) (*dto.WizardStateResponse, error)
	Get(ctx context.Context, sessionID string) (*dto.WizardStateResponse, error)
	Ticket(ctx context.Context, sessionID string) (*dto.TicketResponse, error)
}

type wizardService struct {
	store      repository.WizardSessionStore
	settings   SettingsService
	regRepo    repository.RegistrationRepository
	dispatcher EmailDispatcher
	cfg        *config.Config
}

func NewWizardService(
	store repository.WizardSessionStore,
	settings SettingsService,
	regRepo repository.RegistrationRepository,
	dispatcher EmailDispatcher,
	cfg *config.Config,
) WizardService {
	return &wizardService{
		store:      store,
		settings:   settings,
		regRepo:    regRepo,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

// ── Start ────────────────────────────────────────────────────────────────────

func (s *wizardService) Start(ctx context.Context, req dto.StartWizardRequest) (*dto.StartWizardResponse, error) {
	tier := model.Tier(req.Tier)

	open, err := s.settings.IsEnabled(ctx, tier.OpenFlagKey())
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, ErrTierClosed
	}

	binanceEnabled, err := s.settings.IsEnabled(ctx, model.SettingBinanceEnabled)
	if err != nil {
		return nil, err
	}
	nequiEnabled, err := s.settings.IsEnabled(ctx, model.SettingNequiEnabled)
	if err != nil {
		return nil, err
	}

	session, err := s.store.New(ctx, tier)
	if err != nil {
		return nil, err
	}

	prefs, err := s.settings.PreferencesByCountry(ctx, req.Country)
	if err != nil {
		// Preferences only bias UI ordering — never block the funnel.
		log.Warn().Err(err).Str("country", req.Country).Msg("wizard: preference lookup failed")
		prefs = []dto.PaymentPreferenceResponse{}
	}

	return &dto.StartWizardResponse{
		SessionID:      session.ID,
		Tier:           string(tier),
		BinanceEnabled: binanceEnabled,
		NequiEnabled:   nequiEnabled,
		Preferences:    prefs,
	}, nil
}

// ── Step 1: personal info ────────────────────────────────────────────────────

func (s *wizardService) SubmitStep1(ctx context.Context, sessionID string, req dto.Step1Request) (*dto.Step1Response, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed() {
		return nil, ErrSessionCompleted
	}
	if session.Step != model.StepPersonalInfo {
		return nil, ErrInvalidTransition
	}

	binanceEnabled, err := s.settings.IsEnabled(ctx, model.SettingBinanceEnabled)
	if err != nil {
		return nil, err
	}
	nequiEnabled, err := s.settings.IsEnabled(ctx, model.SettingNequiEnabled)
	if err != nil {
		return nil, err
	}

	fields := FieldErrors{}

	if !fullNameOK(req.Name) {
		fields["name"] = "el nombre debe tener 3 o 4 palabras"
	}
	if !fullNameOK(req.Invitee) {
		fields["invitee"] = "el nombre del invitador debe tener 3 o 4 palabras"
	}

	switch req.PaymentMethod {
	case model.MethodBinancePay:
		if !binanceEnabled {
			fields["payment_method"] = "metodo de pago no disponible"
		}
	case model.MethodNequi:
		if !nequiEnabled {
			fields["payment_method"] = "metodo de pago no disponible"
		}
	case model.MethodBinanceNequi:
		if !binanceEnabled || !nequiEnabled {
			fields["payment_method"] = "metodo de pago no disponible"
		}
	default:
		fields["payment_method"] = "metodo de pago invalido"
	}

	if model.MethodRequiresBinance(req.PaymentMethod) && !binanceIDRe.MatchString(req.BinanceID) {
		fields["binance_id"] = "el Binance Pay ID debe tener 9 o 10 digitos"
	}
	if model.MethodRequiresNequi(req.PaymentMethod) && !nequiRe.MatchString(req.NequiPhone) {
		fields["nequi_phone"] = "el numero Nequi debe tener 10 digitos"
	}

	if len(fields) > 0 {
		return nil, fields
	}

	session.Name = req.Name
	session.Phone = req.Phone
	session.Country = req.Country
	session.Invitee = req.Invitee
	session.HasMoney = req.HasMoney
	session.PaymentMethod = req.PaymentMethod

	// Selecting a method clears the identifiers the new method does not
	// require, so a binance→nequi switch never leaks a stale Binance ID.
	session.BinanceID = ""
	session.NequiPhone = ""
	if model.MethodRequiresBinance(req.PaymentMethod) {
		session.BinanceID = req.BinanceID
	}
	if model.MethodRequiresNequi(req.PaymentMethod) {
		session.NequiPhone = req.NequiPhone
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	platforms := make([]string, 0, 2)
	if binanceEnabled {
		platforms = append(platforms, model.PlatformBinance)
	}
	if nequiEnabled {
		platforms = append(platforms, model.PlatformNequi)
	}
	return &dto.Step1Response{Platforms: platforms}, nil
}

// ── Platform selection → step 2 ──────────────────────────────────────────────

func (s *wizardService) SelectPlatform(ctx context.Context, sessionID string, req dto.PlatformRequest) (*dto.QrStepResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed() {
		return nil, ErrSessionCompleted
	}
	// Platform selection only makes sense once step 1 passed validation.
	if session.Step != model.StepPersonalInfo || session.PaymentMethod == "" {
		return nil, ErrInvalidTransition
	}

	flagKey := model.SettingBinanceEnabled
	if req.Platform == model.PlatformNequi {
		flagKey = model.SettingNequiEnabled
	}
	enabled, err := s.settings.IsEnabled(ctx, flagKey)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, ErrPlatformNotAllowed
	}

	setting, err := s.settings.ActiveQr(ctx, model.PrimaryQrType(session.Tier, req.Platform))
	if err != nil {
		return nil, err
	}

	session.Platform = req.Platform
	session.QrCode1 = setting.Code
	session.Step = model.StepPrimaryQr
	deadline := time.Now().UTC().Add(time.Duration(setting.CountdownMinutes) * time.Minute)
	session.CountdownDeadline = &deadline

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return qrStepResponse(model.StepPrimaryQr, setting, session), nil
}

// ── Step 2: primary QR order ─────────────────────────────────────────────────

func (s *wizardService) SubmitPrimaryOrder(ctx context.Context, sessionID, orderID string) (*dto.QrStepResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed() {
		return nil, ErrSessionCompleted
	}
	if session.Step != model.StepPrimaryQr {
		return nil, ErrInvalidTransition
	}
	if !orderIDRe.MatchString(orderID) {
		return nil, FieldErrors{"order_id": "el numero de orden debe tener entre 10 y 19 digitos"}
	}

	setting, err := s.settings.ActiveQr(ctx, model.AdminQrType(session.Tier))
	if err != nil {
		return nil, err
	}

	session.OrderID1 = orderID
	session.QrCode2 = setting.Code
	session.Step = model.StepAdminQr
	deadline := time.Now().UTC().Add(time.Duration(setting.CountdownMinutes) * time.Minute)
	session.CountdownDeadline = &deadline

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return qrStepResponse(model.StepAdminQr, setting, session), nil
}

// ── Step 3: admin QR order → completion ──────────────────────────────────────

func (s *wizardService) CompleteWithAdminOrder(ctx context.Context, sessionID, orderID string) (*dto.TicketResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed() {
		return nil, ErrSessionCompleted
	}
	if session.Step != model.StepAdminQr {
		return nil, ErrInvalidTransition
	}
	if !orderIDRe.MatchString(orderID) {
		return nil, FieldErrors{"order_id": "el numero de orden debe tener entre 10 y 19 digitos"}
	}
	session.OrderID2 = orderID

	// The three ticket values are generated together, as one operation.
	code, err := generateCode()
	if err != nil {
		return nil, err
	}
	ticketID, err := generateTicketID()
	if err != nil {
		return nil, err
	}

	reg := &model.Registration{
		ID:            uuid.New(),
		Tier:          session.Tier,
		Name:          session.Name,
		Phone:         session.Phone,
		Country:       session.Country,
		Invitee:       session.Invitee,
		HasMoney:      session.HasMoney,
		PaymentMethod: session.PaymentMethod,
		OrderID1:      session.OrderID1,
		OrderID2:      session.OrderID2,
		Code:          code,
		MaskedCode:    maskCode(code),
		TicketID:      ticketID,
		QrCode1:       session.QrCode1,
		QrCode2:       session.QrCode2,
		CreatedAt:     time.Now().UTC(),
	}
	if model.MethodRequiresBinance(session.PaymentMethod) {
		id := session.BinanceID
		reg.BinanceID = &id
	}
	if model.MethodRequiresNequi(session.PaymentMethod) {
		phone := session.NequiPhone
		reg.NequiPhone = &phone
	}

	if pdfPath, pdfErr := infra.GenerateTicketPDF(reg, filepath.Join(s.cfg.StoragePath, "tickets")); pdfErr != nil {
		log.Error().Err(pdfErr).Str("ticket_id", ticketID).Msg("wizard: ticket PDF generation failed")
	} else {
		reg.TicketPDFPath = &pdfPath
	}

	// Insertion failure does not block the ticket the registrant sees: the
	// generated code is shown regardless, and the miss is surfaced only in
	// the logs. Known gap, kept deliberately.
	persisted := true
	if err := s.regRepo.Create(ctx, reg); err != nil {
		persisted = false
		log.Error().Err(err).Str("ticket_id", ticketID).Msg("wizard: registration insert failed")
	}

	if persisted {
		s.notifyAdmins(ctx, reg)
	}

	now := time.Now().UTC()
	session.Step = model.StepCompleted
	session.RegistrationID = reg.ID.String()
	session.Code = code
	session.MaskedCode = reg.MaskedCode
	session.TicketID = ticketID
	session.CompletedAt = &now
	if err := s.store.Save(ctx, session); err != nil {
		log.Error().Err(err).Str("session_id", session.ID).Msg("wizard: session save after completion failed")
	}

	return s.ticketResponse(session), nil
}

func (s *wizardService) notifyAdmins(ctx context.Context, reg *model.Registration) {
	if s.dispatcher == nil || s.cfg.AdminNotifyEmail == "" {
		return
	}
	pdfPath := ""
	if reg.TicketPDFPath != nil {
		pdfPath = *reg.TicketPDFPath
	}
	payload := worker.EmailJobPayload{
		ToEmail: s.cfg.AdminNotifyEmail,
		Subject: "Nuevo registro " + reg.TicketID,
		Body: "Registro completado:\n\n" +
			"Nombre: " + reg.Name + "\n" +
			"Pais: " + reg.Country + "\n" +
			"Nivel: " + string(reg.Tier) + "\n" +
			"Metodo: " + reg.PaymentMethod + "\n" +
			"Boleta: " + reg.TicketID + "\n",
		PDFPath: pdfPath,
	}
	if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Error().Err(err).Str("ticket_id", reg.TicketID).Msg("wizard: enqueue notification email failed")
	}
}

// ── Back / read ──────────────────────────────────────────────────────────────

func (s *wizardService) Back(ctx context.Context, sessionID string) (*dto.WizardStateResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	switch session.Step {
	case model.StepPrimaryQr:
		session.Step = model.StepPersonalInfo
	case model.StepAdminQr:
		session.Step = model.StepPrimaryQr
	default:
		return nil, ErrInvalidTransition
	}
	// Previously entered values stay intact — back never resets fields.
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.stateResponse(session), nil
}

func (s *wizardService) Get(ctx context.Context, sessionID string) (*dto.WizardStateResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.stateResponse(session), nil
}

func (s *wizardService) Ticket(ctx context.Context, sessionID string) (*dto.TicketResponse, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Completed() {
		return nil, ErrInvalidTransition
	}
	return s.ticketResponse(session), nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// fullNameOK enforces the 3-or-4 whitespace-separated words rule for the
// registrant and invitee names.
func fullNameOK(name string) bool {
	n := len(strings.Fields(name))
	return n == 3 || n == 4
}

func qrStepResponse(step int, setting *model.QrSetting, session *model.WizardSession) *dto.QrStepResponse {
	return &dto.QrStepResponse{
		Step:             step,
		QrImageURL:       setting.ImageURL,
		QrImageURL2:      setting.ImageURL2,
		Code:             setting.Code,
		PriceUSD:         setting.PriceUSD.StringFixed(2),
		PriceCOP:         setting.PriceCOP.StringFixed(0),
		CountdownSeconds: session.CountdownSeconds(time.Now().UTC()),
	}
}

func (s *wizardService) ticketResponse(session *model.WizardSession) *dto.TicketResponse {
	createdAt := ""
	if session.CompletedAt != nil {
		createdAt = session.CompletedAt.UTC().Format(time.RFC3339)
	}
	return &dto.TicketResponse{
		Code:          session.Code,
		MaskedCode:    session.MaskedCode,
		TicketID:      session.TicketID,
		Name:          session.Name,
		Tier:          string(session.Tier),
		PaymentMethod: session.PaymentMethod,
		ChatInviteURL: s.cfg.ChatInviteURL,
		CreatedAt:     createdAt,
	}
}

func (s *wizardService) stateResponse(session *model.WizardSession) *dto.WizardStateResponse {
	resp := &dto.WizardStateResponse{
		SessionID:        session.ID,
		Tier:             string(session.Tier),
		Step:             session.Step,
		Completed:        session.Completed(),
		Name:             session.Name,
		Phone:            session.Phone,
		Country:          session.Country,
		Invitee:          session.Invitee,
		HasMoney:         session.HasMoney,
		PaymentMethod:    session.PaymentMethod,
		BinanceID:        session.BinanceID,
		NequiPhone:       session.NequiPhone,
		Platform:         session.Platform,
		OrderID1:         session.OrderID1,
		OrderID2:         session.OrderID2,
		CountdownSeconds: session.CountdownSeconds(time.Now().UTC()),
	}
	if session.Completed() {
		resp.Ticket = s.ticketResponse(session)
	}
	return resp
}
