package model

// Tier identifies the two registration price points. The funnel tracks them
// separately (own QR settings, own open/closed flag) but they share one
// schema and one code path.
type Tier string

const (
	// TierStandard is the $25 USD registration.
	TierStandard Tier = "standard"
	// TierPlus is the $150 USD registration.
	TierPlus Tier = "plus"
)

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return t == TierStandard || t == TierPlus
}

// OpenFlagKey returns the SystemSetting key that gates this tier's funnel.
func (t Tier) OpenFlagKey() string {
	if t == TierPlus {
		return SettingRegister150Open
	}
	return SettingRegisterOpen
}
