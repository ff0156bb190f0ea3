package model

import (
	"time"

	"github.com/google/uuid"
)

// Well-known feature flag keys.
const (
	SettingBinanceEnabled  = "binance_enabled"
	SettingNequiEnabled    = "nequi_enabled"
	SettingRegisterOpen    = "register_open"
	SettingRegister150Open = "register150_open"
)

// SystemSetting is a key → boolean feature flag toggling funnel visibility
// (payment methods, tier open/closed).
type SystemSetting struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Key       string    `gorm:"uniqueIndex;not null"`
	Enabled   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
