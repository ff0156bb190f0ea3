package infra

// pdf.go — boleta (ticket) generation using go-pdf/fpdf.
// A7-size card with the masked code, ticket ID, tier and payment details.
// The full 16-digit code is deliberately NOT printed: the PDF travels by
// email, the full code only ever appears in the registrant's completed view.

import (
	"fmt"
	"os"
	"path/filepath"

	"cicloharmony/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateTicketPDF renders the boleta for a completed registration.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateTicketPDF(reg *model.Registration, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("boleta_%s.pdf", reg.TicketID)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — ticket-card size
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "Ciclo Harmony", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Boleta de Registro", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Ticket info ──────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, reg.TicketID, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, reg.MaskedCode, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Registrant ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	rows := [][2]string{
		{"Nombre", reg.Name},
		{"Pais", reg.Country},
		{"Invitado por", reg.Invitee},
		{"Nivel", string(reg.Tier)},
		{"Metodo de pago", reg.PaymentMethod},
		{"Fecha", reg.CreatedAt.Format("02/01/2006 15:04")},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 7)
		pdf.CellFormat(24, 4, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(contentW-24, 4, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "I", 6)
	pdf.MultiCell(contentW, 3.5,
		"Conserve esta boleta. El codigo completo se muestra una unica vez al finalizar el registro.",
		"", "C", false)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
