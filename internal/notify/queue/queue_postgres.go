package queue

import (
	"context"
	"database/sql"
	"fmt"

	"docpanel/internal/notify/models"
	"docpanel/pkg/requestcontext"
)

// Postgres is the durable outbox. The bigserial seq gives a monotonic order;
// the unique index on (identificador, destinatario) makes enqueue idempotent
// so a retried delete cannot double-notify anyone.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (q *Postgres) Enqueue(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO notificaciones_salientes (
			id, destinatario, mensaje, identificador, fecha_creacion, procesado
		)
		VALUES ($1, $2, $3, $4, $5, false)
		ON CONFLICT (identificador, destinatario) DO NOTHING
		RETURNING seq
	`
	err := q.db.QueryRowContext(ctx, query,
		msg.ID,
		msg.Recipient,
		msg.Body,
		msg.CorrelationID,
		msg.CreatedAt,
	).Scan(&msg.Seq)
	if err != nil {
		if err == sql.ErrNoRows {
			// Conflict: the unit already exists, which is fine.
			return nil
		}
		return fmt.Errorf("enqueue notification: %w", err)
	}
	return nil
}

func (q *Postgres) NextBatch(ctx context.Context, limit int) ([]models.Message, error) {
	query := `
		SELECT seq, id, destinatario, mensaje, identificador, fecha_creacion
		FROM notificaciones_salientes
		WHERE publicado_en IS NULL
		ORDER BY seq
		LIMIT $1
	`
	rows, err := q.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query notification outbox: %w", err)
	}
	defer rows.Close()

	var out []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.Seq, &msg.ID, &msg.Recipient, &msg.Body, &msg.CorrelationID, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notification outbox: %w", err)
	}
	return out, nil
}

func (q *Postgres) MarkRelayed(ctx context.Context, seq int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE notificaciones_salientes SET publicado_en = $1 WHERE seq = $2`,
		requestcontext.Now(ctx), seq)
	if err != nil {
		return fmt.Errorf("mark notification relayed: %w", err)
	}
	return nil
}
