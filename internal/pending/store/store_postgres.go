package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"docpanel/internal/pending/models"
	"docpanel/pkg/platform/sentinel"
)

// Postgres persists pending identifiers in the identificador_remitente table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const pendingColumns = `identificador, remitente_id, tipo_acta, solicita_marco,
	solicita_folio, es_grupo_auto_marco, intentos, fecha_solicitud`

func (s *Postgres) Add(ctx context.Context, record *models.PendingIdentifier) error {
	query := `
		INSERT INTO identificador_remitente (` + pendingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		record.Identifier,
		record.SenderID,
		record.DocumentType,
		record.WantsFraming,
		record.WantsFolio,
		record.GroupAutoFraming,
		record.AttemptCount,
		record.RequestedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert pending identifier: %w", err)
	}
	return nil
}

func (s *Postgres) List(ctx context.Context) ([]models.PendingIdentifier, error) {
	query := `
		SELECT ` + pendingColumns + `
		FROM identificador_remitente
		ORDER BY fecha_solicitud, identificador
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query pending identifiers: %w", err)
	}
	defer rows.Close()

	var out []models.PendingIdentifier
	for rows.Next() {
		record, err := scanPending(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pending identifier: %w", err)
		}
		out = append(out, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending identifiers: %w", err)
	}
	return out, nil
}

func (s *Postgres) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM identificador_remitente`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending identifiers: %w", err)
	}
	return count, nil
}

func (s *Postgres) Remove(ctx context.Context, identifier string) (*models.PendingIdentifier, error) {
	query := `
		DELETE FROM identificador_remitente
		WHERE identificador = $1
		RETURNING ` + pendingColumns
	record, err := scanPending(s.db.QueryRowContext(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("delete pending identifier: %w", err)
	}
	return record, nil
}

func (s *Postgres) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM identificador_remitente WHERE fecha_solicitud < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweep pending identifiers: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sweep pending identifiers rows: %w", err)
	}
	return int(affected), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPending(row rowScanner) (*models.PendingIdentifier, error) {
	var record models.PendingIdentifier
	err := row.Scan(
		&record.Identifier,
		&record.SenderID,
		&record.DocumentType,
		&record.WantsFraming,
		&record.WantsFolio,
		&record.GroupAutoFraming,
		&record.AttemptCount,
		&record.RequestedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
