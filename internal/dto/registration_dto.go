package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DecisionRequest struct {
	Action string `json:"action" validate:"required,oneof=approved disapproved"`
	// SetHasMoney additionally marks the registration as verified-paid
	// (the users2 variant of the original back-office).
	SetHasMoney bool `json:"set_has_money"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RegistrationResponse struct {
	ID            string  `json:"id"`
	Tier          string  `json:"tier"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Country       string  `json:"country"`
	Invitee       string  `json:"invitee"`
	HasMoney      bool    `json:"has_money"`
	PaymentMethod string  `json:"payment_method"`
	BinanceID     *string `json:"binance_id"`
	NequiPhone    *string `json:"nequi_phone"`
	OrderID1      string  `json:"order_id_1"`
	OrderID2      string  `json:"order_id_2"`
	MaskedCode    string  `json:"masked_code"`
	TicketID      string  `json:"ticket_id"`
	CreatedAt     string  `json:"created_at"`
}

type HistoryResponse struct {
	ID             string `json:"id"`
	RegistrationID string `json:"registration_id"`
	Tier           string `json:"tier"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Country        string `json:"country"`
	ActionType     string `json:"action_type"`
	AdminEmail     string `json:"admin_email"`
	CreatedAt      string `json:"created_at"`
}
