package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QrType discriminates which payment flow a QR configuration belongs to:
// tier (standard/plus) × platform (binance/nequi) × role (primary payer QR
// vs the secondary "admin" confirmation QR).
//
//	register            standard tier, Binance primary
//	register_nequi      standard tier, Nequi primary
//	register_admin      standard tier, admin confirmation
//	register150         plus tier, Binance primary
//	register150_nequi   plus tier, Nequi primary
//	register150_admin   plus tier, admin confirmation
type QrType string

const (
	QrRegister         QrType = "register"
	QrRegisterNequi    QrType = "register_nequi"
	QrRegisterAdmin    QrType = "register_admin"
	QrRegister150      QrType = "register150"
	QrRegister150Nequi QrType = "register150_nequi"
	QrRegister150Admin QrType = "register150_admin"
)

// PrimaryQrType resolves the payer-facing QR type for a tier/platform pair.
func PrimaryQrType(tier Tier, platform string) QrType {
	switch {
	case tier == TierPlus && platform == PlatformNequi:
		return QrRegister150Nequi
	case tier == TierPlus:
		return QrRegister150
	case platform == PlatformNequi:
		return QrRegisterNequi
	default:
		return QrRegister
	}
}

// AdminQrType resolves the confirmation-flow QR type for a tier.
func AdminQrType(tier Tier) QrType {
	if tier == TierPlus {
		return QrRegister150Admin
	}
	return QrRegisterAdmin
}

// Platforms offered in the platform-selection step.
const (
	PlatformBinance = "binance"
	PlatformNequi   = "nequi"
)

// QrSetting is an admin-managed payment QR configuration. Several rows may
// exist per type; the authoritative one is the most recently updated row with
// Active=true.
type QrSetting struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	QrType QrType    `gorm:"type:varchar(30);index;not null"`
	// Code is the order/wallet identifier the payer attaches to the transfer.
	Code             string          `gorm:"not null"`
	CountdownMinutes int             `gorm:"not null;default:1440"`
	PriceUSD         decimal.Decimal `gorm:"type:decimal(10,2)"`
	PriceCOP         decimal.Decimal `gorm:"type:decimal(14,2)"`
	ImageURL         string          `gorm:"not null"`
	ImageURL2        *string
	Active           bool `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time `gorm:"index"`
}
