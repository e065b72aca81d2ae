package worker

// recibo_worker.go
// Processes receipt jobs from QueueRecibo: renders the thermal-format PDF
// for a committed operation and optionally enqueues an email job.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"estoquepos/internal/infra"
	"estoquepos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReciboJobPayload is the job envelope sent to QueueRecibo.
type ReciboJobPayload struct {
	OperacaoID   string  `json:"operacao_id"`
	ClienteEmail *string `json:"cliente_email,omitempty"`
}

type ReciboWorker struct {
	operacaoRepo   repository.OperacaoRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewReciboWorker(operacaoRepo repository.OperacaoRepository, dispatcher *Dispatcher, pdfStoragePath string) *ReciboWorker {
	return &ReciboWorker{
		operacaoRepo:   operacaoRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single receipt job:
//  1. Parse ReciboJobPayload from the job envelope
//  2. Fetch the operation (with itens+pagamentos) from DB
//  3. Render the PDF receipt
//  4. Optionally enqueue the email job
func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recibo_worker: invalid payload")
		return
	}

	operacaoID, err := uuid.Parse(payload.OperacaoID)
	if err != nil {
		log.Error().Str("operacao_id", payload.OperacaoID).Msg("recibo_worker: invalid operacao_id")
		return
	}

	operacao, err := w.operacaoRepo.FindByID(ctx, operacaoID)
	if err != nil {
		log.Error().Err(err).Str("operacao_id", payload.OperacaoID).Msg("recibo_worker: operacao not found")
		return
	}

	pdfPath, pdfErr := infra.GenerateReciboPDF(operacao, w.pdfStoragePath)
	if pdfErr != nil {
		log.Error().Err(pdfErr).Str("operacao_id", payload.OperacaoID).Msg("recibo_worker: PDF generation failed")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("operacao_id", payload.OperacaoID).Msg("recibo_worker: PDF generated")

	if payload.ClienteEmail != nil && *payload.ClienteEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.ClienteEmail,
			Subject: "Recibo da sua compra",
			Body:    fmt.Sprintf("Segue em anexo o recibo da sua compra.\nTotal: R$ %s", operacao.Total.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.ClienteEmail).Msg("recibo_worker: failed to enqueue email")
		}
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
