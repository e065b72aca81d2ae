package worker

// email_worker.go
// Processes email jobs from QueueEmail: sends PDF receipts via SMTP.

import (
	"context"
	"encoding/json"

	"estoquepos/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends an email with the PDF receipt as attachment.
// SMTP is an external hop, so the send goes through withRetry.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return
	}

	err := withRetry(ctx, 3, func(attempt int) error {
		sendErr := w.mailer.SendRecibo(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
		if sendErr != nil {
			log.Warn().
				Err(sendErr).
				Int("attempt", attempt+1).
				Str("to", payload.ToEmail).
				Msg("email_worker: send attempt failed")
		}
		return sendErr
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: recibo sent")
}
