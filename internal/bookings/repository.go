package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boozeclub/backoffice/internal/quotes"
)

// PGRepository provides PostgreSQL backed persistence for bookings.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

type bookingDoc struct {
	Customer quotes.Customer `json:"customer"`
	Event    quotes.Event    `json:"event"`
}

const bookingColumns = `id, quote_id, data, total, deposit_paid, payment_status, status, archived, created_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var (
		b   Booking
		raw []byte
	)
	err := row.Scan(&b.ID, &b.QuoteID, &raw, &b.Total, &b.DepositPaid,
		&b.PaymentStatus, &b.Status, &b.Archived, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	var doc bookingDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("bookings: decode: %w", err)
	}
	b.Customer = doc.Customer
	b.Event = doc.Event
	return &b, nil
}

func (r *PGRepository) Get(ctx context.Context, id string) (*Booking, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("bookings: get: %w", err)
	}
	return b, nil
}

func (r *PGRepository) GetByQuote(ctx context.Context, quoteID string) (*Booking, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE quote_id = $1`, quoteID)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("bookings: get by quote: %w", err)
	}
	return b, nil
}

func (r *PGRepository) List(ctx context.Context, includeArchived bool) ([]Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if !includeArchived {
		query += ` WHERE NOT archived`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("bookings: list: %w", err)
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("bookings: list scan: %w", err)
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *PGRepository) Create(ctx context.Context, b Booking) error {
	raw, err := json.Marshal(bookingDoc{Customer: b.Customer, Event: b.Event})
	if err != nil {
		return fmt.Errorf("bookings: encode: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO bookings (id, quote_id, data, total, deposit_paid, payment_status, status, archived, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.QuoteID, raw, b.Total, b.DepositPaid, b.PaymentStatus, b.Status, b.Archived, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("bookings: create: %w", err)
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, b Booking) error {
	raw, err := json.Marshal(bookingDoc{Customer: b.Customer, Event: b.Event})
	if err != nil {
		return fmt.Errorf("bookings: encode: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE bookings SET data = $2, total = $3, deposit_paid = $4, payment_status = $5, status = $6, archived = $7
		WHERE id = $1`,
		b.ID, raw, b.Total, b.DepositPaid, b.PaymentStatus, b.Status, b.Archived)
	if err != nil {
		return fmt.Errorf("bookings: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
