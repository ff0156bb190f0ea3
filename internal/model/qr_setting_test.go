package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryQrTypeMapping(t *testing.T) {
	cases := []struct {
		tier     Tier
		platform string
		want     QrType
	}{
		{TierStandard, PlatformBinance, QrRegister},
		{TierStandard, PlatformNequi, QrRegisterNequi},
		{TierPlus, PlatformBinance, QrRegister150},
		{TierPlus, PlatformNequi, QrRegister150Nequi},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PrimaryQrType(tc.tier, tc.platform), "%s/%s", tc.tier, tc.platform)
	}
}

func TestAdminQrTypeMapping(t *testing.T) {
	assert.Equal(t, QrRegisterAdmin, AdminQrType(TierStandard))
	assert.Equal(t, QrRegister150Admin, AdminQrType(TierPlus))
}

func TestTierOpenFlagKey(t *testing.T) {
	assert.Equal(t, SettingRegisterOpen, TierStandard.OpenFlagKey())
	assert.Equal(t, SettingRegister150Open, TierPlus.OpenFlagKey())
}

func TestMethodIdentifierRequirements(t *testing.T) {
	assert.True(t, MethodRequiresBinance(MethodBinancePay))
	assert.True(t, MethodRequiresBinance(MethodBinanceNequi))
	assert.False(t, MethodRequiresBinance(MethodNequi))

	assert.True(t, MethodRequiresNequi(MethodNequi))
	assert.True(t, MethodRequiresNequi(MethodBinanceNequi))
	assert.False(t, MethodRequiresNequi(MethodBinancePay))
}
