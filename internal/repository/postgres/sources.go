package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/ignite/adblend/internal/domain"
)

// SourceRepo persists connected data sources.
type SourceRepo struct{ db *sql.DB }

// NewSourceRepo creates a Postgres-backed data-source repository.
func NewSourceRepo(db *sql.DB) *SourceRepo { return &SourceRepo{db: db} }

const sourceColumns = `id, client_id, platform_id, name, status,
	COALESCE(last_sync_at, 'epoch'::timestamptz), created_at`

func (r *SourceRepo) Get(ctx context.Context, id string) (*domain.DataSource, error) {
	s := &domain.DataSource{}
	err := r.db.QueryRowContext(ctx, `
		SELECT `+sourceColumns+`
		FROM data_sources
		WHERE id = $1
	`, id).Scan(&s.ID, &s.ClientID, &s.PlatformID, &s.Name, &s.Status, &s.LastSyncAt, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get source: %w", err)
	}
	return s, nil
}

func (r *SourceRepo) ListByClient(ctx context.Context, clientID string) ([]domain.DataSource, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sourceColumns+`
		FROM data_sources
		WHERE client_id = $1
		ORDER BY created_at DESC
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var out []domain.DataSource
	for rows.Next() {
		var s domain.DataSource
		if err := rows.Scan(&s.ID, &s.ClientID, &s.PlatformID, &s.Name, &s.Status, &s.LastSyncAt, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SourceRepo) Create(ctx context.Context, s *domain.DataSource) (string, error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Status == "" {
		s.Status = "connected"
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO data_sources (id, client_id, platform_id, name, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, s.ID, s.ClientID, s.PlatformID, s.Name, s.Status)
	if err != nil {
		return "", fmt.Errorf("create source: %w", err)
	}
	return s.ID, nil
}

func (r *SourceRepo) MarkSynced(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE data_sources SET last_sync_at = NOW(), status = 'connected' WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("mark source synced: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SourceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM data_sources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
