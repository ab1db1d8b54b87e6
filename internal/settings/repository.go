package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists the single settings document.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Load returns the stored document merged over the defaults. A missing row
// yields the defaults.
func (r *Repository) Load(ctx context.Context) (Settings, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM settings WHERE id = 1`).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Defaults(), nil
		}
		return Defaults(), fmt.Errorf("settings: load: %w", err)
	}
	return Merge(raw), nil
}

// Save replaces the stored document.
func (r *Repository) Save(ctx context.Context, s Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO settings (id, data, updated_at) VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`, raw)
	if err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}
