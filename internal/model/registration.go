package model

import (
	"time"

	"github.com/google/uuid"
)

// Payment methods a registrant can choose in step 1.
const (
	MethodBinancePay   = "binance_pay"
	MethodNequi        = "nequi"
	MethodBinanceNequi = "binance_nequi"
)

// MethodRequiresBinance reports whether the method needs a Binance Pay ID.
func MethodRequiresBinance(method string) bool {
	return method == MethodBinancePay || method == MethodBinanceNequi
}

// MethodRequiresNequi reports whether the method needs a Nequi phone number.
func MethodRequiresNequi(method string) bool {
	return method == MethodNequi || method == MethodBinanceNequi
}

// Registration is one completed wizard run. Rows are created exactly once at
// wizard completion and never updated by the registrant; admins only touch
// HasMoney when approving the paid variant.
//
// Invariant: BinanceID is set only for binance_pay/binance_nequi, NequiPhone
// only for nequi/binance_nequi.
type Registration struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tier    Tier      `gorm:"type:varchar(20);index;not null"`
	Name    string    `gorm:"not null"`
	Phone   string    `gorm:"not null"`
	Country string    `gorm:"not null"`
	Invitee string    `gorm:"not null"`
	// HasMoney marks the registrant as verified-paid by an admin.
	HasMoney      bool    `gorm:"not null;default:false"`
	PaymentMethod string  `gorm:"type:varchar(20);not null"`
	BinanceID     *string `gorm:"type:varchar(10)"`
	NequiPhone    *string `gorm:"type:varchar(10)"`

	// Order confirmation numbers entered on steps 2 and 3.
	OrderID1 string `gorm:"not null"`
	OrderID2 string `gorm:"not null"`

	// Generated ticket artifact.
	Code       string `gorm:"type:varchar(16);not null"`
	MaskedCode string `gorm:"type:varchar(16);not null"`
	TicketID   string `gorm:"type:varchar(9);uniqueIndex;not null"`

	// QR order identifiers resolved from the active QR settings at the time
	// the registrant walked steps 2 and 3.
	QrCode1 string `gorm:"not null"`
	QrCode2 string `gorm:"not null"`

	// TicketPDFPath points at the generated boleta on disk; nil when the
	// PDF render failed (non-fatal).
	TicketPDFPath *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
