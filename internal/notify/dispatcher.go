// Package notify converts domain events into outbound notification units and
// appends them to the outbox queue. The defining property of the dispatcher
// is channel separation: the sender who originally submitted a document gets
// the rejection notice, while administrators get a separate audit-style copy
// under an admin_log correlation key.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	adminModels "docpanel/internal/admins/models"
	"docpanel/internal/notify/models"
	"docpanel/internal/notify/queue"
	"docpanel/pkg/requestcontext"
)

// AdminLogPrefix marks administrator audit copies of a deletion.
const AdminLogPrefix = "admin_log_"

const requesterRejectedTemplate = "❌ *Documento no encontrado*\n\n" +
	"La %s con CURP/código: *%s* no fue encontrada en los registros.\n\n" +
	"Por favor verifica los datos e intenta nuevamente."

const adminDeletionTemplate = "🗑️ *CURP eliminada del panel*\n\n" +
	"Identificador: %s\n" +
	"Remitente original: %s\n" +
	"Razón: Documento no encontrado\n\n" +
	"El usuario ha sido notificado."

// Metrics is the slice of the metrics registry the dispatcher emits to.
type Metrics interface {
	IncrementEnqueued(channel string)
}

// Dispatcher builds notification units and enqueues them.
type Dispatcher struct {
	queue   queue.Queue
	metrics Metrics
	logger  *slog.Logger
}

func NewDispatcher(q queue.Queue, metrics Metrics, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{queue: q, metrics: metrics, logger: logger}
}

// NotifyRequester enqueues the rejection notice for the sender that
// originally submitted the document. The recipient is never the acting
// administrator.
func (d *Dispatcher) NotifyRequester(ctx context.Context, identifier, recipient, documentType string) (*models.Message, error) {
	msg := &models.Message{
		ID:            uuid.New(),
		Recipient:     recipient,
		Body:          fmt.Sprintf(requesterRejectedTemplate, documentType, identifier),
		CorrelationID: identifier,
		CreatedAt:     requestcontext.Now(ctx),
	}
	if err := d.queue.Enqueue(ctx, msg); err != nil {
		return nil, fmt.Errorf("enqueue requester notification: %w", err)
	}

	d.incr("requester")
	d.logger.InfoContext(ctx, "requester notification enqueued",
		"request_id", requestcontext.RequestID(ctx),
		"recipient", recipient,
		"correlation_id", identifier,
	)
	return msg, nil
}

// NotifyAdminsOfDeletion enqueues one audit copy per administrator, in
// listing order. Fan-out is strictly sequential and each emission is
// independent: a failed enqueue is logged and the remaining administrators
// are still notified.
func (d *Dispatcher) NotifyAdminsOfDeletion(ctx context.Context, identifier, originalRecipient string, admins []adminModels.Administrator) []models.Message {
	body := fmt.Sprintf(adminDeletionTemplate, identifier, originalRecipient)
	correlationID := AdminLogPrefix + identifier

	emitted := make([]models.Message, 0, len(admins))
	for _, admin := range admins {
		msg := &models.Message{
			ID:            uuid.New(),
			Recipient:     admin.SenderID,
			Body:          body,
			CorrelationID: correlationID,
			CreatedAt:     requestcontext.Now(ctx),
		}
		if err := d.queue.Enqueue(ctx, msg); err != nil {
			d.logger.ErrorContext(ctx, "failed to enqueue admin notification",
				"request_id", requestcontext.RequestID(ctx),
				"recipient", admin.SenderID,
				"correlation_id", correlationID,
				"error", err.Error(),
			)
			continue
		}
		d.incr("admin_log")
		emitted = append(emitted, *msg)
	}

	if len(emitted) > 0 {
		d.logger.InfoContext(ctx, "admin deletion log enqueued",
			"request_id", requestcontext.RequestID(ctx),
			"correlation_id", correlationID,
			"admins_notified", len(emitted),
		)
	}
	return emitted
}

func (d *Dispatcher) incr(channel string) {
	if d.metrics != nil {
		d.metrics.IncrementEnqueued(channel)
	}
}
