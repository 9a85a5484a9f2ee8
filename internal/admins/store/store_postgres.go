package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"docpanel/internal/admins/models"
	"docpanel/internal/domain"
	"docpanel/pkg/platform/sentinel"
)

// Postgres persists administrators in the administradores table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Get(ctx context.Context, senderID string) (*models.Administrator, error) {
	query := `
		SELECT remitente_id, nombre, tipo_remitente, agregado_por, fecha_creacion
		FROM administradores
		WHERE remitente_id = $1
	`
	admin, err := scanAdmin(s.db.QueryRowContext(ctx, query, senderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get administrator: %w", err)
	}
	return admin, nil
}

func (s *Postgres) List(ctx context.Context) ([]models.Administrator, error) {
	query := `
		SELECT remitente_id, nombre, tipo_remitente, agregado_por, fecha_creacion
		FROM administradores
		ORDER BY fecha_creacion, remitente_id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query administrators: %w", err)
	}
	defer rows.Close()

	var admins []models.Administrator
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("scan administrator: %w", err)
		}
		admins = append(admins, *admin)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate administrators: %w", err)
	}
	return admins, nil
}

func (s *Postgres) Add(ctx context.Context, admin *models.Administrator) error {
	query := `
		INSERT INTO administradores (remitente_id, nombre, tipo_remitente, agregado_por, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		admin.SenderID,
		admin.Name,
		string(admin.Kind),
		admin.AddedBy,
		admin.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert administrator: %w", err)
	}
	return nil
}

func (s *Postgres) Remove(ctx context.Context, senderID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM administradores WHERE remitente_id = $1`, senderID)
	if err != nil {
		return fmt.Errorf("delete administrator: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete administrator rows: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdmin(row rowScanner) (*models.Administrator, error) {
	var (
		admin models.Administrator
		kind  string
	)
	if err := row.Scan(&admin.SenderID, &admin.Name, &kind, &admin.AddedBy, &admin.CreatedAt); err != nil {
		return nil, err
	}
	admin.Kind = domain.SenderKind(kind)
	return &admin, nil
}
