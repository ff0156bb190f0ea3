package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type StartWizardRequest struct {
	Tier    string `json:"tier"    validate:"required,oneof=standard plus"`
	Country string `json:"country" validate:"omitempty,min=2,max=60"`
}

// Step1Request carries every personal-info field. Cross-field rules (word
// counts, method gating, ID formats) are enforced by the wizard service,
// which reports per-field messages instead of a single opaque error.
type Step1Request struct {
	Name          string `json:"name"           validate:"required"`
	Phone         string `json:"phone"          validate:"required"`
	Country       string `json:"country"        validate:"required"`
	Invitee       string `json:"invitee"        validate:"required"`
	HasMoney      bool   `json:"has_money"`
	PaymentMethod string `json:"payment_method" validate:"required"`
	BinanceID     string `json:"binance_id"`
	NequiPhone    string `json:"nequi_phone"`
}

type PlatformRequest struct {
	Platform string `json:"platform" validate:"required,oneof=binance nequi"`
}

type OrderRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type StartWizardResponse struct {
	SessionID      string                      `json:"session_id"`
	Tier           string                      `json:"tier"`
	BinanceEnabled bool                        `json:"binance_enabled"`
	NequiEnabled   bool                        `json:"nequi_enabled"`
	Preferences    []PaymentPreferenceResponse `json:"preferences"`
}

type Step1Response struct {
	// Platforms the registrant may choose in the selection modal, derived
	// from the chosen payment method.
	Platforms []string `json:"platforms"`
}

// QrStepResponse describes the QR payment screen for steps 2 and 3.
type QrStepResponse struct {
	Step             int     `json:"step"`
	QrImageURL       string  `json:"qr_image_url"`
	QrImageURL2      *string `json:"qr_image_url_2,omitempty"`
	Code             string  `json:"code"`
	PriceUSD         string  `json:"price_usd"`
	PriceCOP         string  `json:"price_cop"`
	CountdownSeconds int     `json:"countdown_seconds"`
}

type TicketResponse struct {
	Code          string `json:"code"`
	MaskedCode    string `json:"masked_code"`
	TicketID      string `json:"ticket_id"`
	Name          string `json:"name"`
	Tier          string `json:"tier"`
	PaymentMethod string `json:"payment_method"`
	ChatInviteURL string `json:"chat_invite_url"`
	CreatedAt     string `json:"created_at"`
}

// WizardStateResponse mirrors the full session so a reloaded client can
// resume where it left off.
type WizardStateResponse struct {
	SessionID        string  `json:"session_id"`
	Tier             string  `json:"tier"`
	Step             int     `json:"step"`
	Completed        bool    `json:"completed"`
	Name             string  `json:"name"`
	Phone            string  `json:"phone"`
	Country          string  `json:"country"`
	Invitee          string  `json:"invitee"`
	HasMoney         bool    `json:"has_money"`
	PaymentMethod    string  `json:"payment_method"`
	BinanceID        string  `json:"binance_id"`
	NequiPhone       string  `json:"nequi_phone"`
	Platform         string  `json:"platform"`
	OrderID1         string  `json:"order_id_1"`
	OrderID2         string  `json:"order_id_2"`
	CountdownSeconds int     `json:"countdown_seconds"`
	Ticket           *TicketResponse `json:"ticket,omitempty"`
}
