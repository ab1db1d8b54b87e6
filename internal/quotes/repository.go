package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boozeclub/backoffice/internal/pricing"
)

// PGRepository provides PostgreSQL backed persistence for quotes. The line
// list, VAT config and totals live in a JSONB document; lifecycle columns
// are relational so listings can filter without decoding.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

type quoteDoc struct {
	Customer Customer       `json:"customer"`
	Event    Event          `json:"event"`
	Lines    []pricing.Line `json:"lines"`
	VAT      pricing.VAT    `json:"vat"`
	Currency string         `json:"currency"`
	FXRate   float64        `json:"fxRate,omitempty"`
	Totals   pricing.Totals `json:"totals"`
}

func encodeDoc(q Quote) ([]byte, error) {
	return json.Marshal(quoteDoc{
		Customer: q.Customer,
		Event:    q.Event,
		Lines:    q.Lines,
		VAT:      q.VAT,
		Currency: q.Currency,
		FXRate:   q.FXRate,
		Totals:   q.Totals,
	})
}

func scanQuote(row pgx.Row) (*Quote, error) {
	var (
		q         Quote
		enquiryID *string
		raw       []byte
	)
	if err := row.Scan(&q.ID, &enquiryID, &q.Status, &raw, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, err
	}
	if enquiryID != nil {
		q.EnquiryID = *enquiryID
	}
	var doc quoteDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("quotes: decode: %w", err)
	}
	q.Customer = doc.Customer
	q.Event = doc.Event
	q.Lines = doc.Lines
	q.VAT = doc.VAT
	q.Currency = doc.Currency
	q.FXRate = doc.FXRate
	q.Totals = doc.Totals
	return &q, nil
}

const quoteColumns = `id, enquiry_id, status, data, created_at, updated_at`

func (r *PGRepository) Get(ctx context.Context, id string) (*Quote, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id)
	q, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("quotes: get: %w", err)
	}
	return q, nil
}

func (r *PGRepository) List(ctx context.Context) ([]Quote, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+quoteColumns+` FROM quotes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("quotes: list: %w", err)
	}
	defer rows.Close()

	var out []Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("quotes: list scan: %w", err)
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

func (r *PGRepository) Create(ctx context.Context, q Quote) error {
	raw, err := encodeDoc(q)
	if err != nil {
		return fmt.Errorf("quotes: encode: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO quotes (id, enquiry_id, status, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		q.ID, nullable(q.EnquiryID), q.Status, raw, q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("quotes: create: %w", err)
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, q Quote) error {
	raw, err := encodeDoc(q)
	if err != nil {
		return fmt.Errorf("quotes: encode: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE quotes SET enquiry_id = $2, status = $3, data = $4, updated_at = $5 WHERE id = $1`,
		q.ID, nullable(q.EnquiryID), q.Status, raw, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("quotes: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("quotes: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
