package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentPreference biases payment-method ordering per country in the funnel
// UI. Purely cosmetic — validation never consults it.
type PaymentPreference struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Country       string    `gorm:"index:idx_pref_country_method,unique;not null"`
	PaymentMethod string    `gorm:"index:idx_pref_country_method,unique;type:varchar(20);not null"`
	Preferred     bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
