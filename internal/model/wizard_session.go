package model

import "time"

// Wizard steps. Transitions are forward-only except an explicit back action
// from steps 2/3; nothing is reachable after StepCompleted besides reading
// the ticket.
const (
	StepPersonalInfo = 1
	StepPrimaryQr    = 2
	StepAdminQr      = 3
	StepCompleted    = 4
)

// WizardSession is the transient state of one registrant walking the funnel.
// It lives in Redis (not Postgres): abandoned sessions expire on TTL and the
// only durable artifact is the Registration row written at completion.
type WizardSession struct {
	ID   string `json:"id"`
	Tier Tier   `json:"tier"`
	Step int    `json:"step"`

	// Step 1 fields.
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Country       string `json:"country"`
	Invitee       string `json:"invitee"`
	HasMoney      bool   `json:"has_money"`
	PaymentMethod string `json:"payment_method"`
	BinanceID     string `json:"binance_id"`
	NequiPhone    string `json:"nequi_phone"`

	// Platform selection and QR flow state.
	Platform string `json:"platform"`
	QrCode1  string `json:"qr_code_1"`
	QrCode2  string `json:"qr_code_2"`
	OrderID1 string `json:"order_id_1"`
	OrderID2 string `json:"order_id_2"`

	// CountdownDeadline is cosmetic: the client renders a ticking timer
	// against it, but an expired deadline never blocks submission.
	CountdownDeadline *time.Time `json:"countdown_deadline,omitempty"`

	// Set at completion.
	RegistrationID string `json:"registration_id,omitempty"`
	Code           string `json:"code,omitempty"`
	MaskedCode     string `json:"masked_code,omitempty"`
	TicketID       string `json:"ticket_id,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Completed reports whether the session reached the final step.
func (s *WizardSession) Completed() bool { return s.Step == StepCompleted }

// CountdownSeconds returns the remaining cosmetic countdown, clamped at zero.
func (s *WizardSession) CountdownSeconds(now time.Time) int {
	if s.CountdownDeadline == nil {
		return 0
	}
	d := int(s.CountdownDeadline.Sub(now).Seconds())
	if d < 0 {
		return 0
	}
	return d
}
