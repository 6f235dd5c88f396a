package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/adblend/internal/domain"
	"github.com/lib/pq"
)

// ReportRepo persists scheduled reports.
type ReportRepo struct{ db *sql.DB }

// NewReportRepo creates a Postgres-backed report repository.
func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{db: db} }

const reportColumns = `id, client_id, warehouse_id, name, group_by, cadence,
	recipients, enabled,
	COALESCE(last_run_at, 'epoch'::timestamptz),
	COALESCE(next_run_at, 'epoch'::timestamptz),
	created_at, updated_at`

func scanReport(row interface{ Scan(...any) error }) (*domain.Report, error) {
	rep := &domain.Report{}
	err := row.Scan(
		&rep.ID, &rep.ClientID, &rep.WarehouseID, &rep.Name,
		pq.Array(&rep.GroupBy), &rep.Cadence, pq.Array(&rep.Recipients),
		&rep.Enabled, &rep.LastRunAt, &rep.NextRunAt, &rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *ReportRepo) Get(ctx context.Context, id string) (*domain.Report, error) {
	rep, err := scanReport(r.db.QueryRowContext(ctx, `
		SELECT `+reportColumns+` FROM reports WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return rep, nil
}

func (r *ReportRepo) ListByClient(ctx context.Context, clientID string) ([]domain.Report, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+reportColumns+` FROM reports
		WHERE client_id = $1
		ORDER BY created_at DESC
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []domain.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, *rep)
	}
	return out, rows.Err()
}

// ListDue returns enabled reports whose next run is at or before now.
func (r *ReportRepo) ListDue(ctx context.Context, now time.Time) ([]domain.Report, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+reportColumns+` FROM reports
		WHERE enabled = TRUE AND next_run_at IS NOT NULL AND next_run_at <= $1
		ORDER BY next_run_at
	`, now)
	if err != nil {
		return nil, fmt.Errorf("list due reports: %w", err)
	}
	defer rows.Close()

	var out []domain.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan due report: %w", err)
		}
		out = append(out, *rep)
	}
	return out, rows.Err()
}

func (r *ReportRepo) Create(ctx context.Context, rep *domain.Report) (string, error) {
	if rep.ID == "" {
		rep.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reports
			(id, client_id, warehouse_id, name, group_by, cadence, recipients,
			 enabled, next_run_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`, rep.ID, rep.ClientID, rep.WarehouseID, rep.Name,
		pq.Array(rep.GroupBy), rep.Cadence, pq.Array(rep.Recipients),
		rep.Enabled, rep.NextRunAt)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	return rep.ID, nil
}

func (r *ReportRepo) Update(ctx context.Context, rep *domain.Report) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reports
		SET name = $2, group_by = $3, cadence = $4, recipients = $5,
		    enabled = $6, updated_at = NOW()
		WHERE id = $1
	`, rep.ID, rep.Name, pq.Array(rep.GroupBy), rep.Cadence,
		pq.Array(rep.Recipients), rep.Enabled)
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkRun records a completed run and schedules the next one.
func (r *ReportRepo) MarkRun(ctx context.Context, id string, ranAt, nextRunAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reports
		SET last_run_at = $2, next_run_at = $3, updated_at = NOW()
		WHERE id = $1
	`, id, ranAt, nextRunAt)
	if err != nil {
		return fmt.Errorf("mark report run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ReportRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
