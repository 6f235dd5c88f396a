package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/adblend/internal/domain"
)

// AlertRepo persists metric alerts.
type AlertRepo struct{ db *sql.DB }

// NewAlertRepo creates a Postgres-backed alert repository.
func NewAlertRepo(db *sql.DB) *AlertRepo { return &AlertRepo{db: db} }

const alertColumns = `id, client_id, warehouse_id, name, metric, operator,
	threshold, enabled, COALESCE(last_fired_at, 'epoch'::timestamptz), created_at`

func (r *AlertRepo) Get(ctx context.Context, id string) (*domain.Alert, error) {
	a := &domain.Alert{}
	err := r.db.QueryRowContext(ctx, `
		SELECT `+alertColumns+` FROM alerts WHERE id = $1
	`, id).Scan(&a.ID, &a.ClientID, &a.WarehouseID, &a.Name, &a.Metric,
		&a.Operator, &a.Threshold, &a.Enabled, &a.LastFiredAt, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

func (r *AlertRepo) ListByClient(ctx context.Context, clientID string) ([]domain.Alert, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+alertColumns+` FROM alerts
		WHERE client_id = $1
		ORDER BY created_at DESC
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var out []domain.Alert
	for rows.Next() {
		var a domain.Alert
		if err := rows.Scan(&a.ID, &a.ClientID, &a.WarehouseID, &a.Name, &a.Metric,
			&a.Operator, &a.Threshold, &a.Enabled, &a.LastFiredAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListEnabledByWarehouse returns the active alerts watching a warehouse.
func (r *AlertRepo) ListEnabledByWarehouse(ctx context.Context, warehouseID string) ([]domain.Alert, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+alertColumns+` FROM alerts
		WHERE warehouse_id = $1 AND enabled = TRUE
		ORDER BY created_at
	`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list warehouse alerts: %w", err)
	}
	defer rows.Close()

	var out []domain.Alert
	for rows.Next() {
		var a domain.Alert
		if err := rows.Scan(&a.ID, &a.ClientID, &a.WarehouseID, &a.Name, &a.Metric,
			&a.Operator, &a.Threshold, &a.Enabled, &a.LastFiredAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AlertRepo) Create(ctx context.Context, a *domain.Alert) (string, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO alerts
			(id, client_id, warehouse_id, name, metric, operator, threshold, enabled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`, a.ID, a.ClientID, a.WarehouseID, a.Name, a.Metric, a.Operator, a.Threshold, a.Enabled)
	if err != nil {
		return "", fmt.Errorf("create alert: %w", err)
	}
	return a.ID, nil
}

func (r *AlertRepo) MarkFired(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE alerts SET last_fired_at = $2 WHERE id = $1
	`, id, at)
	if err != nil {
		return fmt.Errorf("mark alert fired: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AlertRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
