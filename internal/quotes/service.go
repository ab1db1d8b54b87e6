package quotes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/boozeclub/backoffice/internal/costing"
	"github.com/boozeclub/backoffice/internal/invoice"
	"github.com/boozeclub/backoffice/internal/platform/httpx"
	"github.com/boozeclub/backoffice/internal/pricing"
	"github.com/boozeclub/backoffice/internal/settings"
)

var (
	ErrNotFound        = fmt.Errorf("quotes: %w", httpx.ErrNotFound)
	ErrInvalidStatus   = fmt.Errorf("quotes: invalid status transition: %w", httpx.ErrConflict)
	ErrAlreadyAccepted = fmt.Errorf("quotes: already accepted: %w", httpx.ErrConflict)
	ErrNoBillableLines = fmt.Errorf("quotes: add at least one billable item: %w", httpx.ErrValidation)
	ErrZeroTotal       = fmt.Errorf("quotes: total must be greater than zero: %w", httpx.ErrValidation)
)

// Repository persists quotes with full-replace update semantics.
type Repository interface {
	Get(ctx context.Context, id string) (*Quote, error)
	List(ctx context.Context) ([]Quote, error)
	Create(ctx context.Context, q Quote) error
	Update(ctx context.Context, q Quote) error
	Delete(ctx context.Context, id string) error
}

// CostingSource supplies the stored costing breakdown for a quote, if one
// exists. It must not create a record as a side effect.
type CostingSource interface {
	Stored(ctx context.Context, quoteID string) (*costing.Data, error)
}

// BookingRef is the booking summary returned when acceptance creates one.
type BookingRef struct {
	ID    string  `json:"id"`
	Total float64 `json:"total"`
}

// BookingCreator creates the confirmed-event record from an accepted quote.
type BookingCreator interface {
	CreateFromQuote(ctx context.Context, q Quote, total float64) (BookingRef, error)
}

// EnquirySource updates the originating enquiry when a quote is produced
// from it.
type EnquirySource interface {
	MarkQuoted(ctx context.Context, enquiryID string) error
	MarkClosed(ctx context.Context, enquiryID string) error
}

// SettingsSource loads the business configuration.
type SettingsSource interface {
	Load(ctx context.Context) (settings.Settings, error)
}

type Service struct {
	repo      Repository
	costings  CostingSource
	bookings  BookingCreator
	enquiries EnquirySource
	settings  SettingsSource
	logger    *slog.Logger
}

func NewService(repo Repository, costings CostingSource, bookings BookingCreator, enquiries EnquirySource, cfg SettingsSource, logger *slog.Logger) *Service {
	return &Service{repo: repo, costings: costings, bookings: bookings, enquiries: enquiries, settings: cfg, logger: logger}
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

func wholeQty(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Max(0, math.Round(v))
}

// CombineCustomLines merges custom lines that describe the same item at the
// same prices, summing their quantities. Other kinds pass through in order.
func CombineCustomLines(lines []pricing.Line) []pricing.Line {
	type key struct {
		desc      string
		unitPrice float64
		ownerCost float64
	}
	index := make(map[key]int)
	out := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		if l.Kind != pricing.KindCustom {
			out = append(out, l)
			continue
		}
		l.UnitPrice = round2(l.UnitPrice)
		l.OwnerCost = round2(l.OwnerCost)
		l.Qty = wholeQty(l.Qty)
		k := key{strings.ToLower(strings.TrimSpace(l.Description)), l.UnitPrice, l.OwnerCost}
		if i, ok := index[k]; ok {
			out[i].Qty += l.Qty
			continue
		}
		index[k] = len(out)
		out = append(out, l)
	}
	return out
}

// storedCosting fetches the costing record if one exists. Absence is normal
// for a fresh quote.
func (s *Service) storedCosting(ctx context.Context, quoteID string) *costing.Data {
	data, err := s.costings.Stored(ctx, quoteID)
	if err != nil {
		if !errors.Is(err, httpx.ErrNotFound) {
			s.logger.Warn("costing lookup failed", "quoteID", quoteID, "error", err)
		}
		return nil
	}
	return data
}

// recompute replaces the quote's totals with the customer-facing invoice
// totals, which account for bundling suppression when a costing record
// contributes beverage lines.
func (s *Service) recompute(ctx context.Context, q *Quote) []invoice.Line {
	opts := invoice.Options{Costing: s.storedCosting(ctx, q.ID), IncludeInternal: false}
	lines, totals := invoice.Build(q.Lines, q.VAT, opts)
	q.Totals = totals
	return lines
}

func (s *Service) validate(lines []invoice.Line, totals pricing.Totals) error {
	if len(lines) == 0 {
		return ErrNoBillableLines
	}
	if totals.Gross <= 0 {
		return ErrZeroTotal
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req CreateQuoteRequest) (*Quote, error) {
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = cfg.Currency.Default
	}

	now := time.Now().UTC()
	q := Quote{
		ID:        uuid.NewString(),
		EnquiryID: req.EnquiryID,
		Customer:  req.Customer,
		Event:     req.Event,
		Lines:     CombineCustomLines(req.Lines),
		VAT:       req.VAT,
		Currency:  currency,
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if currency == "GBP" {
		q.FXRate = cfg.Currency.GBPRate
	}

	invoiceLines := s.recompute(ctx, &q)
	if err := s.validate(invoiceLines, q.Totals); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}

	if q.EnquiryID != "" {
		if err := s.enquiries.MarkQuoted(ctx, q.EnquiryID); err != nil {
			s.logger.Warn("mark enquiry quoted failed", "enquiryID", q.EnquiryID, "error", err)
		}
	}

	return &q, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateQuoteRequest) (*Quote, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	if existing.Status == StatusAccepted {
		return nil, fmt.Errorf("%w: accepted quotes are read-only", ErrInvalidStatus)
	}

	q := *existing
	q.Customer = req.Customer
	q.Event = req.Event
	q.Lines = CombineCustomLines(req.Lines)
	q.VAT = req.VAT
	if req.Currency != "" && req.Currency != q.Currency {
		cfg, err := s.settings.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		q.Currency = req.Currency
		q.FXRate = 0
		if req.Currency == "GBP" {
			q.FXRate = cfg.Currency.GBPRate
		}
	}
	q.UpdatedAt = time.Now().UTC()

	invoiceLines := s.recompute(ctx, &q)
	if err := s.validate(invoiceLines, q.Totals); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("update quote: %w", err)
	}
	return &q, nil
}

// UpdateStatus moves a quote along its lifecycle. Acceptance must go through
// Accept so the booking is created exactly once.
func (s *Service) UpdateStatus(ctx context.Context, id string, to Status) (*Quote, error) {
	if to == StatusAccepted {
		return nil, fmt.Errorf("%w: use accept", ErrInvalidStatus)
	}

	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	if !CanTransition(q.Status, to) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidStatus, q.Status, to)
	}

	q.Status = to
	q.UpdatedAt = time.Now().UTC()
	s.recompute(ctx, q)
	if err := s.repo.Update(ctx, *q); err != nil {
		return nil, fmt.Errorf("update quote: %w", err)
	}
	return q, nil
}

// Accept marks a sent quote accepted and creates its booking. The booking's
// total snapshot is the customer-facing invoice gross, the same figure the
// customer agreed to.
func (s *Service) Accept(ctx context.Context, id string) (*Quote, BookingRef, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, BookingRef{}, fmt.Errorf("get quote: %w", err)
	}
	if q.Status == StatusAccepted {
		return nil, BookingRef{}, ErrAlreadyAccepted
	}
	if !CanTransition(q.Status, StatusAccepted) {
		return nil, BookingRef{}, fmt.Errorf("%w: %s to %s", ErrInvalidStatus, q.Status, StatusAccepted)
	}

	q.Status = StatusAccepted
	q.UpdatedAt = time.Now().UTC()
	s.recompute(ctx, q)

	booking, err := s.bookings.CreateFromQuote(ctx, *q, q.Totals.Gross)
	if err != nil {
		return nil, BookingRef{}, fmt.Errorf("create booking: %w", err)
	}

	if err := s.repo.Update(ctx, *q); err != nil {
		return nil, BookingRef{}, fmt.Errorf("update quote: %w", err)
	}

	if q.EnquiryID != "" {
		if err := s.enquiries.MarkClosed(ctx, q.EnquiryID); err != nil {
			s.logger.Warn("close enquiry", "enquiryID", q.EnquiryID, "error", err)
		}
	}
	return q, booking, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Quote, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	// Stored totals are never trusted.
	s.recompute(ctx, q)
	return q, nil
}

func (s *Service) List(ctx context.Context) ([]Quote, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	// Stored totals are never trusted, here either.
	for i := range list {
		s.recompute(ctx, &list[i])
	}
	return list, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// InvoiceLines builds the rendered document lines for a quote in either
// view.
func (s *Service) InvoiceLines(ctx context.Context, id string, includeInternal bool) (*Quote, []invoice.Line, pricing.Totals, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, pricing.Totals{}, fmt.Errorf("get quote: %w", err)
	}
	opts := invoice.Options{Costing: s.storedCosting(ctx, id), IncludeInternal: includeInternal}
	lines, totals := invoice.Build(q.Lines, q.VAT, opts)
	if !includeInternal {
		q.Totals = totals
	}
	return q, lines, totals, nil
}

// ContextSource adapts the quote repository for the costing layer. It reads
// through the repository so it can be wired up before the quote service.
type ContextSource struct {
	repo Repository
}

func NewContextSource(repo Repository) *ContextSource {
	return &ContextSource{repo: repo}
}

func (c *ContextSource) QuoteContext(ctx context.Context, id string) (costing.QuoteContext, error) {
	q, err := c.repo.Get(ctx, id)
	if err != nil {
		return costing.QuoteContext{}, err
	}
	return costing.QuoteContext{
		ID:       q.ID,
		Lines:    q.Lines,
		VAT:      q.VAT,
		Currency: q.Currency,
		FXRate:   q.FXRate,
	}, nil
}
