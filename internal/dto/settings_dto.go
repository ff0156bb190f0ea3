package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SystemSettingRequest struct {
	Key     string `json:"key"     validate:"required,min=2,max=60"`
	Enabled bool   `json:"enabled"`
}

// QrSettingInput is one half of a group save. Prices travel as strings so the
// COP value can carry thousand-separator dots ("1.234.567") exactly as typed
// in the admin form; blanks fall back to defaults (countdown 1440, USD 25.00).
type QrSettingInput struct {
	Code             string  `json:"code"              validate:"required,min=1"`
	CountdownMinutes *int    `json:"countdown_minutes" validate:"omitempty,min=1"`
	PriceUSD         string  `json:"price_usd"`
	PriceCOP         string  `json:"price_cop"`
	ImageURL         string  `json:"image_url"         validate:"required,url"`
	ImageURL2        *string `json:"image_url_2"       validate:"omitempty,url"`
	Active           *bool   `json:"active"`
}

// QrGroupRequest saves the payer QR and the admin-confirmation QR of one
// tier/platform combination together.
type QrGroupRequest struct {
	Tier     string         `json:"tier"     validate:"required,oneof=standard plus"`
	Platform string         `json:"platform" validate:"required,oneof=binance nequi"`
	Primary  QrSettingInput `json:"primary"  validate:"required"`
	Admin    QrSettingInput `json:"admin"    validate:"required"`
}

type PaymentPreferenceRequest struct {
	Country       string `json:"country"        validate:"required,min=2,max=60"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=binance_pay nequi binance_nequi"`
	Preferred     bool   `json:"preferred"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SystemSettingResponse struct {
	Key     string `json:"key"`
	Enabled bool   `json:"enabled"`
}

type QrSettingResponse struct {
	ID               string  `json:"id"`
	QrType           string  `json:"qr_type"`
	Code             string  `json:"code"`
	CountdownMinutes int     `json:"countdown_minutes"`
	PriceUSD         string  `json:"price_usd"`
	PriceCOP         string  `json:"price_cop"`
	ImageURL         string  `json:"image_url"`
	ImageURL2        *string `json:"image_url_2"`
	Active           bool    `json:"active"`
	UpdatedAt        string  `json:"updated_at"`
}

// ActiveQrResponse is the public projection of a QR configuration. The
// admin-only fields (row id, active flag, timestamps) stay out of it.
type ActiveQrResponse struct {
	QrType           string  `json:"qr_type"`
	Code             string  `json:"code"`
	CountdownMinutes int     `json:"countdown_minutes"`
	PriceUSD         string  `json:"price_usd"`
	PriceCOP         string  `json:"price_cop"`
	ImageURL         string  `json:"image_url"`
	ImageURL2        *string `json:"image_url_2"`
}

type PaymentPreferenceResponse struct {
	Country       string `json:"country"`
	PaymentMethod string `json:"payment_method"`
	Preferred     bool   `json:"preferred"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
	Kind     string `json:"kind"`
}
