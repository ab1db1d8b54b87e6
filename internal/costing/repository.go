package costing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository provides PostgreSQL backed persistence for costing records.
// One JSONB document per quote, upsert semantics.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) Get(ctx context.Context, quoteID string) (*Data, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM costings WHERE quote_id = $1`, quoteID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("costing: get: %w", err)
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("costing: decode: %w", err)
	}
	data.QuoteID = quoteID
	return &data, nil
}

func (r *PGRepository) Upsert(ctx context.Context, d Data) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("costing: encode: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO costings (quote_id, data, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (quote_id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		d.QuoteID, raw)
	if err != nil {
		return fmt.Errorf("costing: upsert: %w", err)
	}
	return nil
}
