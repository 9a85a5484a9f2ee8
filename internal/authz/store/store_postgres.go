package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"docpanel/internal/authz/models"
	"docpanel/internal/domain"
	"docpanel/pkg/platform/sentinel"
)

// Postgres persists authorizations in the autorizaciones table. Optional
// columns are mapped through sql.Null* once, here, instead of being defaulted
// at every consumer.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Find(ctx context.Context, senderID string) (*models.Authorization, error) {
	query := `
		SELECT remitente_id, tipo_remitente, autorizado, fecha_autorizacion,
		       enmarcado_automatico, subir_api_automatico, configurado_por, fecha_configuracion
		FROM autorizaciones
		WHERE remitente_id = $1
	`
	auth, err := scanAuthorization(s.db.QueryRowContext(ctx, query, senderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find authorization: %w", err)
	}
	return auth, nil
}

func (s *Postgres) Save(ctx context.Context, auth *models.Authorization) error {
	query := `
		INSERT INTO autorizaciones (
			remitente_id, tipo_remitente, autorizado, fecha_autorizacion,
			enmarcado_automatico, subir_api_automatico, configurado_por, fecha_configuracion
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (remitente_id) DO UPDATE SET
			tipo_remitente = EXCLUDED.tipo_remitente,
			autorizado = EXCLUDED.autorizado,
			fecha_autorizacion = EXCLUDED.fecha_autorizacion,
			enmarcado_automatico = EXCLUDED.enmarcado_automatico,
			subir_api_automatico = EXCLUDED.subir_api_automatico,
			configurado_por = EXCLUDED.configurado_por,
			fecha_configuracion = EXCLUDED.fecha_configuracion
	`
	var configuredBy sql.NullString
	if auth.ConfiguredBy != "" {
		configuredBy = sql.NullString{String: auth.ConfiguredBy, Valid: true}
	}
	var configuredAt sql.NullTime
	if auth.ConfiguredAt != nil {
		configuredAt = sql.NullTime{Time: *auth.ConfiguredAt, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		auth.SenderID,
		string(auth.Kind),
		auth.Authorized,
		auth.AuthorizedAt,
		auth.AutoFraming,
		auth.AutoAPIUpload,
		configuredBy,
		configuredAt,
	)
	if err != nil {
		return fmt.Errorf("save authorization: %w", err)
	}
	return nil
}

func (s *Postgres) ListAuthorized(ctx context.Context) ([]models.Authorization, error) {
	query := `
		SELECT remitente_id, tipo_remitente, autorizado, fecha_autorizacion,
		       enmarcado_automatico, subir_api_automatico, configurado_por, fecha_configuracion
		FROM autorizaciones
		WHERE autorizado = true
		ORDER BY fecha_autorizacion, remitente_id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query authorizations: %w", err)
	}
	defer rows.Close()

	var out []models.Authorization
	for rows.Next() {
		auth, err := scanAuthorization(rows)
		if err != nil {
			return nil, fmt.Errorf("scan authorization: %w", err)
		}
		out = append(out, *auth)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate authorizations: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuthorization(row rowScanner) (*models.Authorization, error) {
	var (
		auth         models.Authorization
		kind         string
		configuredBy sql.NullString
		configuredAt sql.NullTime
	)
	err := row.Scan(
		&auth.SenderID,
		&kind,
		&auth.Authorized,
		&auth.AuthorizedAt,
		&auth.AutoFraming,
		&auth.AutoAPIUpload,
		&configuredBy,
		&configuredAt,
	)
	if err != nil {
		return nil, err
	}
	auth.Kind = domain.SenderKind(kind)
	if configuredBy.Valid {
		auth.ConfiguredBy = configuredBy.String
	}
	if configuredAt.Valid {
		t := configuredAt.Time
		auth.ConfiguredAt = &t
	}
	return &auth, nil
}
