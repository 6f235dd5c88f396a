package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/ignite/adblend/internal/domain"
)

// WarehouseRepo persists warehouses. The per-platform source bindings are
// stored as a JSONB column.
type WarehouseRepo struct{ db *sql.DB }

// NewWarehouseRepo creates a Postgres-backed warehouse repository.
func NewWarehouseRepo(db *sql.DB) *WarehouseRepo { return &WarehouseRepo{db: db} }

func (r *WarehouseRepo) Get(ctx context.Context, id string) (*domain.Warehouse, error) {
	w := &domain.Warehouse{}
	var sources []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, client_id, name, sources, created_at, updated_at
		FROM warehouses
		WHERE id = $1
	`, id).Scan(&w.ID, &w.ClientID, &w.Name, &sources, &w.CreatedAt, &w.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	if len(sources) > 0 {
		if err := json.Unmarshal(sources, &w.Sources); err != nil {
			return nil, fmt.Errorf("decode warehouse sources: %w", err)
		}
	}
	return w, nil
}

func (r *WarehouseRepo) ListByClient(ctx context.Context, clientID string) ([]domain.Warehouse, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, client_id, name, sources, created_at, updated_at
		FROM warehouses
		WHERE client_id = $1
		ORDER BY created_at DESC
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var out []domain.Warehouse
	for rows.Next() {
		var w domain.Warehouse
		var sources []byte
		if err := rows.Scan(&w.ID, &w.ClientID, &w.Name, &sources, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		if len(sources) > 0 {
			if err := json.Unmarshal(sources, &w.Sources); err != nil {
				return nil, fmt.Errorf("decode warehouse sources: %w", err)
			}
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *WarehouseRepo) Create(ctx context.Context, w *domain.Warehouse) (string, error) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	sources, err := json.Marshal(w.Sources)
	if err != nil {
		return "", fmt.Errorf("encode warehouse sources: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO warehouses (id, client_id, name, sources, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`, w.ID, w.ClientID, w.Name, sources)
	if err != nil {
		return "", fmt.Errorf("create warehouse: %w", err)
	}
	return w.ID, nil
}

func (r *WarehouseRepo) Update(ctx context.Context, w *domain.Warehouse) error {
	sources, err := json.Marshal(w.Sources)
	if err != nil {
		return fmt.Errorf("encode warehouse sources: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE warehouses
		SET name = $2, sources = $3, updated_at = NOW()
		WHERE id = $1
	`, w.ID, w.Name, sources)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *WarehouseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
