package worker

// email_worker.go
// Processes email jobs from QueueEmail: registration notices sent to the
// back-office inbox, with the boleta PDF attached when available. Sends go
// through the SMTP circuit breaker so a downed relay fast-fails instead of
// stalling the pool.

import (
	"context"
	"encoding/json"

	"cicloharmony/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

// EmailWorker processes email jobs from QueueEmail.
type EmailWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
}

// NewEmailWorker creates an EmailWorker with the provided SMTP mailer.
func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb}
}

// Process sends one notification email. A non-nil return means the pool
// should retry (and eventually DLQ) the job.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Malformed payloads are not retryable.
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return nil
	}

	err := w.cb.Execute(func() error {
		return w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: send failed")
		return err
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: notification sent")
	return nil
}
