// Package apierror defines the error envelopes every 4xx/5xx response uses.
// Handlers never serialize raw errors: whatever a service or the DB layer
// returned stays in the logs, and the client sees one of these two shapes.
package apierror

// APIError is the single-message envelope: {"detail": "..."}.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries per-field messages so the funnel forms can
// highlight the offending inputs inline.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
