package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boozeclub/backoffice/internal/platform/httpx"
)

// PGRepository reads operator accounts from PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `
		SELECT username, display_name, salt, hash FROM users WHERE LOWER(username) = LOWER($1)`,
		username).Scan(&u.Username, &u.DisplayName, &u.Salt, &u.Hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("auth: user %q: %w", username, httpx.ErrNotFound)
		}
		return nil, fmt.Errorf("auth: get user: %w", err)
	}
	return &u, nil
}

// Upsert writes an operator account, replacing credentials when the username
// already exists.
func (r *PGRepository) Upsert(ctx context.Context, u User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (username, display_name, salt, hash) VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE SET display_name = EXCLUDED.display_name, salt = EXCLUDED.salt, hash = EXCLUDED.hash`,
		u.Username, u.DisplayName, u.Salt, u.Hash)
	if err != nil {
		return fmt.Errorf("auth: upsert user: %w", err)
	}
	return nil
}
