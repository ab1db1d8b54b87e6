package enquiries

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository provides PostgreSQL backed persistence for enquiries.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const enquiryColumns = `id, name, email, service, event_type, location, preferred_date, preferred_time, guests, notes, status, created_at`

func scanEnquiry(row pgx.Row) (*Enquiry, error) {
	var (
		e     Enquiry
		notes *string
	)
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Service, &e.EventType, &e.Location,
		&e.PreferredDate, &e.PreferredTime, &e.Guests, &notes, &e.Status, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	if notes != nil {
		e.Notes = *notes
	}
	return &e, nil
}

func (r *PGRepository) Get(ctx context.Context, id string) (*Enquiry, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+enquiryColumns+` FROM enquiries WHERE id = $1`, id)
	e, err := scanEnquiry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("enquiries: get: %w", err)
	}
	return e, nil
}

func (r *PGRepository) List(ctx context.Context) ([]Enquiry, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+enquiryColumns+` FROM enquiries ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("enquiries: list: %w", err)
	}
	defer rows.Close()

	var out []Enquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("enquiries: list scan: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *PGRepository) Create(ctx context.Context, e Enquiry) error {
	var notes *string
	if e.Notes != "" {
		notes = &e.Notes
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO enquiries (id, name, email, service, event_type, location, preferred_date, preferred_time, guests, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.ID, e.Name, e.Email, e.Service, e.EventType, e.Location,
		e.PreferredDate, e.PreferredTime, e.Guests, notes, e.Status, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("enquiries: create: %w", err)
	}
	return nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE enquiries SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("enquiries: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM enquiries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("enquiries: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
