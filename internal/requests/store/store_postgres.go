package store

import (
	"context"
	"database/sql"
	"fmt"

	"docpanel/internal/requests/models"
)

// Postgres reads the solicitudes table joined against active authorizations.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) PendingUnauthorized(ctx context.Context) ([]models.PendingSender, error) {
	// One row per sender (latest request wins), newest request first.
	query := `
		SELECT remitente_id, nombre_remitente
		FROM (
			SELECT DISTINCT ON (s.remitente_id)
				s.remitente_id, s.nombre_remitente, s.fecha_solicitud
			FROM solicitudes s
			LEFT JOIN autorizaciones a
				ON s.remitente_id = a.remitente_id AND a.autorizado = true
			WHERE a.remitente_id IS NULL
			ORDER BY s.remitente_id, s.fecha_solicitud DESC
		) pendientes
		ORDER BY fecha_solicitud DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query pending senders: %w", err)
	}
	defer rows.Close()

	var senders []models.PendingSender
	for rows.Next() {
		var (
			sender models.PendingSender
			name   sql.NullString
		)
		if err := rows.Scan(&sender.SenderID, &name); err != nil {
			return nil, fmt.Errorf("scan pending sender: %w", err)
		}
		sender.Name = name.String
		senders = append(senders, sender)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending senders: %w", err)
	}
	return senders, nil
}
