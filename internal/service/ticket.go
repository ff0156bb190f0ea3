package service

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// Ticket artifact shapes. The three values are generated together as one
// atomic client-visible operation at wizard completion.
const (
	codeLength     = 16
	maskKeepDigits = 4
	ticketIDLength = 9

	ticketIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// generateCode returns codeLength independently random decimal digits.
func generateCode() (string, error) {
	return randomFromCharset("0123456789", codeLength)
}

// maskCode keeps the first maskKeepDigits characters and masks the rest,
// preserving total length.
func maskCode(code string) string {
	if len(code) <= maskKeepDigits {
		return code
	}
	return code[:maskKeepDigits] + strings.Repeat("*", len(code)-maskKeepDigits)
}

// generateTicketID returns ticketIDLength characters drawn uniformly from
// [A-Z0-9].
func generateTicketID() (string, error) {
	return randomFromCharset(ticketIDCharset, ticketIDLength)
}

func randomFromCharset(charset string, n int) (string, error) {
	max := big.NewInt(int64(len(charset)))
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(charset[idx.Int64()])
	}
	return b.String(), nil
}
