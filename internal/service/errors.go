package service

import "errors"

// Sentinel errors shared by handlers to pick status codes.
var (
	ErrTierClosed         = errors.New("el registro esta cerrado")
	ErrInvalidTransition  = errors.New("paso no disponible")
	ErrSessionCompleted   = errors.New("el registro ya fue completado")
	ErrPlatformNotAllowed = errors.New("plataforma no disponible")
	ErrQrNotConfigured    = errors.New("configuracion de pago no disponible")
	ErrAlreadyProcessed   = errors.New("el registro ya fue procesado")
)

// FieldErrors carries per-field validation messages so forms can highlight
// each offending input inline. It satisfies error to travel through the
// normal return path.
type FieldErrors map[string]string

func (e FieldErrors) Error() string { return "error de validacion" }

// AsFieldErrors unwraps a FieldErrors from err, if present.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
