package infra

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cicloharmony/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTicketPDF(t *testing.T) {
	dir := t.TempDir()
	reg := &model.Registration{
		ID:            uuid.New(),
		Tier:          model.TierStandard,
		Name:          "Maria Fernanda Lopez",
		Country:       "Colombia",
		Invitee:       "Carlos Andres Perez",
		PaymentMethod: model.MethodBinancePay,
		Code:          "1234567890123456",
		MaskedCode:    "1234************",
		TicketID:      "A1B2C3D4E",
		CreatedAt:     time.Now(),
	}

	path, err := GenerateTicketPDF(reg, filepath.Join(dir, "tickets"))
	require.NoError(t, err)
	assert.Equal(t, "boleta_A1B2C3D4E.pdf", filepath.Base(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	// The boleta must never contain the full code, only the masked form.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), reg.Code)
}
