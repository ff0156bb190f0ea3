package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"cicloharmony/internal/config"
	"cicloharmony/internal/dto"
	"cicloharmony/internal/model"
	"cicloharmony/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubSessionStore is an in-memory WizardSessionStore.
type stubSessionStore struct {
	sessions map[string]*model.WizardSession
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*model.WizardSession)}
}

func (s *stubSessionStore) New(_ context.Context, tier model.Tier) (*model.WizardSession, error) {
	sess := &model.WizardSession{
		ID:   uuid.NewString(),
		Tier: tier,
		Step: model.StepPersonalInfo,
	}
	cp := *sess
	s.sessions[sess.ID] = &cp
	return sess, nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*model.WizardSession, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *stubSessionStore) Save(_ context.Context, sess *model.WizardSession) error {
	cp := *sess
	s.sessions[sess.ID] = &cp
	return nil
}

var _ repository.WizardSessionStore = (*stubSessionStore)(nil)

// stubSettings is a canned SettingsService: flags and QR settings are plain maps.
type stubSettings struct {
	flags map[string]bool
	qrs   map[model.QrType]*model.QrSetting
}

func newStubSettings() *stubSettings {
	return &stubSettings{
		flags: map[string]bool{
			model.SettingRegisterOpen:    true,
			model.SettingRegister150Open: true,
			model.SettingBinanceEnabled:  true,
			model.SettingNequiEnabled:    true,
		},
		qrs: map[model.QrType]*model.QrSetting{},
	}
}

func (s *stubSettings) withQr(qrType model.QrType, code string) *stubSettings {
	s.qrs[qrType] = &model.QrSetting{
		ID:               uuid.New(),
		QrType:           qrType,
		Code:             code,
		CountdownMinutes: 1440,
		PriceUSD:         decimal.New(2500, -2),
		PriceCOP:         decimal.NewFromInt(100000),
		ImageURL:         "https://cdn.example.com/" + code + ".png",
		Active:           true,
	}
	return s
}

func (s *stubSettings) ActiveQr(_ context.Context, qrType model.QrType) (*model.QrSetting, error) {
	qr, ok := s.qrs[qrType]
	if !ok {
		return nil, ErrQrNotConfigured
	}
	return qr, nil
}

func (s *stubSettings) IsEnabled(_ context.Context, key string) (bool, error) {
	return s.flags[key], nil
}

func (s *stubSettings) ListSystemSettings(_ context.Context) ([]dto.SystemSettingResponse, error) {
	return nil, nil
}
func (s *stubSettings) UpsertSystemSetting(_ context.Context, _ dto.SystemSettingRequest) error {
	return nil
}
func (s *stubSettings) SaveQrGroup(_ context.Context, _ dto.QrGroupRequest) ([]dto.QrSettingResponse, error) {
	return nil, nil
}
func (s *stubSettings) ListQrSettings(_ context.Context) ([]dto.QrSettingResponse, error) {
	return nil, nil
}
func (s *stubSettings) PreferencesByCountry(_ context.Context, _ string) ([]dto.PaymentPreferenceResponse, error) {
	return []dto.PaymentPreferenceResponse{}, nil
}
func (s *stubSettings) UpsertPreference(_ context.Context, _ dto.PaymentPreferenceRequest) error {
	return nil
}

var _ SettingsService = (*stubSettings)(nil)

// stubRegRepo records created registrations; failCreate simulates an insert
// outage.
type stubRegRepo struct {
	regs       []*model.Registration
	failCreate bool
}

func (r *stubRegRepo) Create(_ context.Context, reg *model.Registration) error {
	if r.failCreate {
		return errors.New("connection refused")
	}
	r.regs = append(r.regs, reg)
	return nil
}

func (r *stubRegRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Registration, error) {
	for _, reg := range r.regs {
		if reg.ID == id {
			return reg, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubRegRepo) ListPending(_ context.Context, _ model.Tier) ([]model.Registration, error) {
	return nil, nil
}

func (r *stubRegRepo) SetHasMoney(_ context.Context, _ uuid.UUID, _ bool) error { return nil }

var _ repository.RegistrationRepository = (*stubRegRepo)(nil)

// stubDispatcher records enqueued email payloads.
type stubDispatcher struct {
	payloads []interface{}
}

func (d *stubDispatcher) EnqueueEmail(_ context.Context, payload interface{}) error {
	d.payloads = append(d.payloads, payload)
	return nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

type wizardFixture struct {
	svc        WizardService
	store      *stubSessionStore
	settings   *stubSettings
	regRepo    *stubRegRepo
	dispatcher *stubDispatcher
}

func newWizardFixture(t *testing.T) *wizardFixture {
	t.Helper()
	store := newStubSessionStore()
	settings := newStubSettings().
		withQr(model.QrRegister, "QR-STD-BIN").
		withQr(model.QrRegisterNequi, "QR-STD-NEQ").
		withQr(model.QrRegisterAdmin, "QR-STD-ADM").
		withQr(model.QrRegister150, "QR-PLUS-BIN").
		withQr(model.QrRegister150Admin, "QR-PLUS-ADM")
	regRepo := &stubRegRepo{}
	dispatcher := &stubDispatcher{}
	cfg := &config.Config{
		StoragePath:      t.TempDir(),
		AdminNotifyEmail: "admins@cicloharmony.com",
		ChatInviteURL:    "https://chat.whatsapp.com/test",
	}
	return &wizardFixture{
		svc:        NewWizardService(store, settings, regRepo, dispatcher, cfg),
		store:      store,
		settings:   settings,
		regRepo:    regRepo,
		dispatcher: dispatcher,
	}
}

func validStep1() dto.Step1Request {
	return dto.Step1Request{
		Name:          "Maria Fernanda Lopez Diaz",
		Phone:         "3001234567",
		Country:       "Colombia",
		Invitee:       "Carlos Andres Perez",
		PaymentMethod: model.MethodBinancePay,
		BinanceID:     "123456789",
	}
}

// startSession runs Start and returns the session id.
func (f *wizardFixture) startSession(t *testing.T, tier string) string {
	t.Helper()
	resp, err := f.svc.Start(context.Background(), dto.StartWizardRequest{Tier: tier})
	require.NoError(t, err)
	return resp.SessionID
}

// ── Start ────────────────────────────────────────────────────────────────────

func TestStartReturnsSessionAndFlags(t *testing.T) {
	f := newWizardFixture(t)

	resp, err := f.svc.Start(context.Background(), dto.StartWizardRequest{Tier: "standard"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, "standard", resp.Tier)
	assert.True(t, resp.BinanceEnabled)
	assert.True(t, resp.NequiEnabled)
}

func TestStartRejectedWhenTierClosed(t *testing.T) {
	f := newWizardFixture(t)
	f.settings.flags[model.SettingRegister150Open] = false

	_, err := f.svc.Start(context.Background(), dto.StartWizardRequest{Tier: "plus"})
	assert.ErrorIs(t, err, ErrTierClosed)

	// The other tier stays open.
	_, err = f.svc.Start(context.Background(), dto.StartWizardRequest{Tier: "standard"})
	assert.NoError(t, err)
}

// ── Step 1 validation ────────────────────────────────────────────────────────

func TestStep1NameMustHaveThreeOrFourWords(t *testing.T) {
	f := newWizardFixture(t)

	cases := []struct {
		name string
		ok   bool
	}{
		{"Maria Lopez", false},
		{"Maria Fernanda Lopez", true},
		{"Maria Fernanda Lopez Diaz", true},
		{"Maria Fernanda De Los Rios", false},
		{"  Maria   Fernanda   Lopez  ", true}, // extra whitespace is not a word
	}
	for _, tc := range cases {
		id := f.startSession(t, "standard")
		req := validStep1()
		req.Name = tc.name
		_, err := f.svc.SubmitStep1(context.Background(), id, req)
		if tc.ok {
			assert.NoError(t, err, "name %q", tc.name)
		} else {
			fields, isFieldErr := AsFieldErrors(err)
			require.True(t, isFieldErr, "name %q", tc.name)
			assert.Contains(t, fields, "name")
		}
	}
}

func TestStep1InviteeValidatedLikeName(t *testing.T) {
	f := newWizardFixture(t)
	id := f.startSession(t, "standard")

	req := validStep1()
	req.Invitee = "Carlos"
	_, err := f.svc.SubmitStep1(context.Background(), id, req)
	fields, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "invitee")
}

func TestStep1BinanceIDFormat(t *testing.T) {
	f := newWizardFixture(t)

	cases := map[string]bool{
		"123456789":   true,  // 9 digits
		"1234567890":  true,  // 10 digits
		"12345678":    false, // too short
		"12345678901": false, // too long
		"12345678a":   false, // non-digit
	}
	for binanceID, ok := range cases {
		id := f.startSession(t, "standard")
		req := validStep1()
		req.BinanceID = binanceID
		_, err := f.svc.SubmitStep1(context.Background(), id, req)
		if ok {
			assert.NoError(t, err, "binance_id %q", binanceID)
		} else {
			fields, isFieldErr := AsFieldErrors(err)
			require.True(t, isFieldErr, "binance_id %q", binanceID)
			assert.Contains(t, fields, "binance_id")
		}
	}
}

func TestStep1NequiPhoneFormat(t *testing.T) {
	f := newWizardFixture(t)

	cases := map[string]bool{
		"3001234567":  true,
		"300123456":   false,
		"30012345678": false,
	}
	for phone, ok := range cases {
		id := f.startSession(t, "standard")
		req := validStep1()
		req.PaymentMethod = model.MethodNequi
		req.BinanceID = ""
		req.NequiPhone = phone
		_, err := f.svc.SubmitStep1(context.Background(), id, req)
		if ok {
			assert.NoError(t, err, "nequi_phone %q", phone)
		} else {
			fields, isFieldErr := AsFieldErrors(err)
			require.True(t, isFieldErr, "nequi_phone %q", phone)
			assert.Contains(t, fields, "nequi_phone")
		}
	}
}

func TestStep1CombinedMethodRequiresBothIdentifiers(t *testing.T) {
	f := newWizardFixture(t)
	id := f.startSession(t, "standard")

	req := validStep1()
	req.PaymentMethod = model.MethodBinanceNequi
	req.NequiPhone = "" // missing
	_, err := f.svc.SubmitStep1(context.Background(), id, req)
	fields, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "nequi_phone")
	assert.NotContains(t, fields, "binance_id")
}

func TestStep1DisabledMethodRejected(t *testing.T) {
	f := newWizardFixture(t)
	f.settings.flags[model.SettingNequiEnabled] = false
	id := f.startSession(t, "standard")

	req := validStep1()
	req.PaymentMethod = model.MethodNequi
	req.NequiPhone = "3001234567"
	_, err := f.svc.SubmitStep1(context.Background(), id, req)
	fields, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "payment_method")
}

func TestStep1MethodSwitchClearsStaleIdentifier(t *testing.T) {
	f := newWizardFixture(t)
	id := f.startSession(t, "standard")

	_, err := f.svc.SubmitStep1(context.Background(), id, validStep1())
	require.NoError(t, err)

	// Re-submit with nequi: the previously stored Binance ID must be gone.
	req := validStep1()
	req.PaymentMethod = model.MethodNequi
	req.BinanceID = ""
	req.NequiPhone = "3001234567"
	_, err = f.svc.SubmitStep1(context.Background(), id, req)
	require.NoError(t, err)

	state, err := f.svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, state.BinanceID)
	assert.Equal(t, "3001234567", state.NequiPhone)
}

// ── Platform selection and QR steps ──────────────────────────────────────────

func TestSelectPlatformBeforeStep1Rejected(t *testing.T) {
	f := newWizardFixture(t)
	id := f.startSession(t, "standard")

	_, err := f.svc.SelectPlatform(context.Background(), id, dto.PlatformRequest{Platform: "binance"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSelectPlatformDisabledRejected(t *testing.T) {
	f := newWizardFixture(t)
	id := f.startSession(t, "standard")
	_, err := f.svc.SubmitStep1(context.Background(), id, validStep1())
	require.NoError(t, err)

	f.settings.flags[model.SettingBinanceEnabled] = false
	_, err = f.svc.SelectPlatform(context.Background(), id, dto.PlatformRequest{Platform: "binance"})
	assert.ErrorIs(t, err, ErrPlatformNotAllowed)
}

func TestSelectPlatformResolvesTierAndPlatformQr(t *testing.T) {
	f := newWizardFixture(t)

	// Colombian registrant paying through Nequi on the standard tier.
	id := f.startSession(t, "standard")
	req := validStep1()
	req.PaymentMethod = model.MethodNequi
	req.BinanceID = ""
	req.NequiPhone = "3001234567"
	_, err := f.svc.SubmitStep1(context.Background(), id, req)
	require.NoError(t, err)

	resp, err := f.svc.SelectPlatform(context.Background(), id, dto.PlatformRequest{Platform: "nequi"})
	require.NoError(t, err)
	assert.Equal(t, model.StepPrimaryQr, resp.Step)
	assert.Equal(t, "QR-STD-NEQ", resp.Code)
	assert.Equal(t, "25.00", resp.PriceUSD)
	assert.Positive(t, resp.CountdownSeconds)
}

func TestOrderIDLengthBounds(t *testing.T) {
	f := newWizardFixture(t)
	id := f.startSession(t, "standard")
	_, err := f.svc.SubmitStep1(context.Background(), id, validStep1())
	require.NoError(t, err)
	_, err = f.svc.SelectPlatform(context.Background(), id, dto.PlatformRequest{Platform: "binance"})
	require.NoError(t, err)

	for _, orderID := range []string{"123456789", "12345678901234567890", "12345abc90"} {
		_, err := f.svc.SubmitPrimaryOrder(context.Background(), id, orderID)
		fields, ok := AsFieldErrors(err)
		require.True(t, ok, "order_id %q", orderID)
		assert.Contains(t, fields, "order_id")
	}

	resp, err := f.svc.SubmitPrimaryOrder(context.Background(), id, "1234567890")
	require.NoError(t, err)
	assert.Equal(t, model.StepAdminQr, resp.Step)
	assert.Equal(t, "QR-STD-ADM", resp.Code)
}

func TestAdminOrderBeforePrimaryRejected(t *testing.T) {
	f := newWizardFixture(t)
	id := f.startSession(t, "standard")
	_, err := f.svc.SubmitStep1(context.Background(), id, validStep1())
	require.NoError(t, err)
	_, err = f.svc.SelectPlatform(context.Background(), id, dto.PlatformRequest{Platform: "binance"})
	require.NoError(t, err)

	_, err = f.svc.CompleteWithAdminOrder(context.Background(), id, "1234567890")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// ── Completion ───────────────────────────────────────────────────────────────

// runFullFunnel drives a session from start to completion and returns the
// ticket.
func runFullFunnel(t *testing.T, f *wizardFixture) (string, *dto.TicketResponse) {
	t.Helper()
	id := f.startSession(t, "standard")
	_, err := f.svc.SubmitStep1(context.Background(), id, validStep1())
	require.NoError(t, err)
	_, err = f.svc.SelectPlatform(context.Background(), id, dto.PlatformRequest{Platform: "binance"})
	require.NoError(t, err)
	_, err = f.svc.SubmitPrimaryOrder(context.Background(), id, "1234567890")
	require.NoError(t, err)
	ticket, err := f.svc.CompleteWithAdminOrder(context.Background(), id, "9876543210987")
	require.NoError(t, err)
	return id, ticket
}

func TestCompletionGeneratesTicketArtifact(t *testing.T) {
	f := newWizardFixture(t)
	_, ticket := runFullFunnel(t, f)

	assert.Regexp(t, regexp.MustCompile(`^\d{16}$`), ticket.Code)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}\*{12}$`), ticket.MaskedCode)
	assert.Equal(t, ticket.Code[:4], ticket.MaskedCode[:4])
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{9}$`), ticket.TicketID)
	assert.Equal(t, "https://chat.whatsapp.com/test", ticket.ChatInviteURL)
}

func TestCompletionPersistsRegistrationAndNotifies(t *testing.T) {
	f := newWizardFixture(t)
	_, ticket := runFullFunnel(t, f)

	require.Len(t, f.regRepo.regs, 1)
	reg := f.regRepo.regs[0]
	assert.Equal(t, model.TierStandard, reg.Tier)
	assert.Equal(t, ticket.TicketID, reg.TicketID)
	assert.Equal(t, "1234567890", reg.OrderID1)
	assert.Equal(t, "9876543210987", reg.OrderID2)
	require.NotNil(t, reg.BinanceID)
	assert.Equal(t, "123456789", *reg.BinanceID)
	assert.Nil(t, reg.NequiPhone)
	assert.Equal(t, "QR-STD-BIN", reg.QrCode1)
	assert.Equal(t, "QR-STD-ADM", reg.QrCode2)

	require.Len(t, f.dispatcher.payloads, 1)
}

func TestCompletedSessionRejectsFurtherSubmissions(t *testing.T) {
	f := newWizardFixture(t)
	id, _ := runFullFunnel(t, f)

	_, err := f.svc.SubmitStep1(context.Background(), id, validStep1())
	assert.ErrorIs(t, err, ErrSessionCompleted)

	// The ticket stays readable.
	ticket, err := f.svc.Ticket(context.Background(), id)
	require.NoError(t, err)
	assert.NotEmpty(t, ticket.Code)
}

func TestInsertFailureStillReturnsTicket(t *testing.T) {
	f := newWizardFixture(t)
	f.regRepo.failCreate = true

	_, ticket := runFullFunnel(t, f)
	assert.Regexp(t, regexp.MustCompile(`^\d{16}$`), ticket.Code)

	// Nothing persisted, so no admin notification either.
	assert.Empty(t, f.regRepo.regs)
	assert.Empty(t, f.dispatcher.payloads)
}

// ── Back ─────────────────────────────────────────────────────────────────────

func TestBackPreservesEnteredFields(t *testing.T) {
	f := newWizardFixture(t)
	id := f.startSession(t, "standard")
	_, err := f.svc.SubmitStep1(context.Background(), id, validStep1())
	require.NoError(t, err)
	_, err = f.svc.SelectPlatform(context.Background(), id, dto.PlatformRequest{Platform: "binance"})
	require.NoError(t, err)

	state, err := f.svc.Back(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.StepPersonalInfo, state.Step)
	assert.Equal(t, "Maria Fernanda Lopez Diaz", state.Name)
	assert.Equal(t, "123456789", state.BinanceID)
}

func TestBackFromStep1Rejected(t *testing.T) {
	f := newWizardFixture(t)
	id := f.startSession(t, "standard")

	_, err := f.svc.Back(context.Background(), id)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGetUnknownSession(t *testing.T) {
	f := newWizardFixture(t)
	_, err := f.svc.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}
