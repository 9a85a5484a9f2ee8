// Package worker drains the notification outbox into the external messaging
// transport. Delivery is at-least-once: a message is marked relayed only
// after the broker acknowledges it, so a crash between produce and mark can
// re-send, and consumers dedupe on (identificador, destinatario).
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"docpanel/internal/notify/models"
	"docpanel/internal/notify/queue"
)

const batchSize = 32

// Metrics is the slice of the metrics registry the worker emits to.
type Metrics interface {
	IncrementRelayed()
}

// Worker periodically publishes pending outbox messages to Kafka.
type Worker struct {
	queue    queue.Queue
	client   *kgo.Client
	topic    string
	interval time.Duration
	metrics  Metrics
	logger   *slog.Logger
}

func New(q queue.Queue, client *kgo.Client, topic string, interval time.Duration, metrics Metrics, logger *slog.Logger) *Worker {
	return &Worker{
		queue:    q,
		client:   client,
		topic:    topic,
		interval: interval,
		metrics:  metrics,
		logger:   logger,
	}
}

// Run drains the outbox until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.drain(ctx); err != nil {
				w.logger.ErrorContext(ctx, "outbox drain failed", "error", err.Error())
			}
		}
	}
}

func (w *Worker) drain(ctx context.Context) error {
	for {
		batch, err := w.queue.NextBatch(ctx, batchSize)
		if err != nil {
			return fmt.Errorf("next batch: %w", err)
		}
		if len(batch) == 0 {
			return nil
		}
		for _, msg := range batch {
			if err := w.relay(ctx, msg); err != nil {
				// Keep the message unrelayed; it will be retried on
				// the next tick.
				w.logger.ErrorContext(ctx, "relay failed",
					"seq", msg.Seq,
					"recipient", msg.Recipient,
					"error", err.Error(),
				)
				return nil
			}
		}
		if len(batch) < batchSize {
			return nil
		}
	}
}

func (w *Worker) relay(ctx context.Context, msg models.Message) error {
	payload, err := json.Marshal(msg.Wire())
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	record := &kgo.Record{
		Topic: w.topic,
		Key:   []byte(msg.Recipient),
		Value: payload,
	}
	if err := w.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce notification: %w", err)
	}

	if err := w.queue.MarkRelayed(ctx, msg.Seq); err != nil {
		return fmt.Errorf("mark relayed: %w", err)
	}
	if w.metrics != nil {
		w.metrics.IncrementRelayed()
	}
	return nil
}
