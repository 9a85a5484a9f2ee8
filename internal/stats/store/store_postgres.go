package store

import (
	"context"
	"database/sql"
	"fmt"

	"docpanel/internal/stats/models"
)

// Postgres reads counters from the contadores table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Totals(ctx context.Context) (models.Totals, error) {
	query := `
		SELECT COALESCE(SUM(total_documentos), 0), COUNT(*)
		FROM contadores
	`
	var totals models.Totals
	if err := s.db.QueryRowContext(ctx, query).Scan(&totals.Documents, &totals.Senders); err != nil {
		return models.Totals{}, fmt.Errorf("query counter totals: %w", err)
	}
	return totals, nil
}

func (s *Postgres) Top(ctx context.Context, limit int) ([]models.SenderCount, error) {
	query := `
		SELECT remitente_id, nombre_remitente, total_documentos
		FROM contadores
		ORDER BY total_documentos DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query top senders: %w", err)
	}
	defer rows.Close()

	var counts []models.SenderCount
	for rows.Next() {
		var (
			count models.SenderCount
			name  sql.NullString
		)
		if err := rows.Scan(&count.SenderID, &name, &count.Documents); err != nil {
			return nil, fmt.Errorf("scan sender count: %w", err)
		}
		count.Name = name.String
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sender counts: %w", err)
	}
	return counts, nil
}
