package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/ignite/adblend/internal/domain"
)

// ClientRepo persists agency clients.
type ClientRepo struct{ db *sql.DB }

// NewClientRepo creates a Postgres-backed client repository.
func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{db: db} }

func (r *ClientRepo) Get(ctx context.Context, id string) (*domain.Client, error) {
	c := &domain.Client{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(email,''), status, created_at, updated_at
		FROM clients
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *ClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(email,''), status, created_at, updated_at
		FROM clients
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var out []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ClientRepo) Create(ctx context.Context, c *domain.Client) (string, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = "active"
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`, c.ID, c.Name, c.Email, c.Status)
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}
	return c.ID, nil
}

func (r *ClientRepo) Update(ctx context.Context, c *domain.Client) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE clients
		SET name = $2, email = $3, status = $4, updated_at = NOW()
		WHERE id = $1
	`, c.ID, c.Name, c.Email, c.Status)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
