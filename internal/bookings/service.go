package bookings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/boozeclub/backoffice/internal/platform/httpx"
	"github.com/boozeclub/backoffice/internal/quotes"
)

var (
	ErrNotFound      = fmt.Errorf("bookings: %w", httpx.ErrNotFound)
	ErrAlreadyExists = fmt.Errorf("bookings: quote already has a booking: %w", httpx.ErrConflict)
	ErrInvalidStatus = fmt.Errorf("bookings: invalid status transition: %w", httpx.ErrConflict)
	ErrBadDeposit    = fmt.Errorf("bookings: deposit must be positive and not exceed the total: %w", httpx.ErrValidation)
)

// Repository persists bookings.
type Repository interface {
	Get(ctx context.Context, id string) (*Booking, error)
	GetByQuote(ctx context.Context, quoteID string) (*Booking, error)
	List(ctx context.Context, includeArchived bool) ([]Booking, error)
	Create(ctx context.Context, b Booking) error
	Update(ctx context.Context, b Booking) error
}

// Notifier sends the confirmation message for a new booking. Failures are
// logged, not surfaced; the booking exists regardless.
type Notifier interface {
	BookingConfirmed(ctx context.Context, b Booking) error
}

type Service struct {
	repo     Repository
	notifier Notifier
	logger   *slog.Logger
}

func NewService(repo Repository, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// CreateFromQuote creates the booking for an accepted quote. At most one
// booking exists per quote.
func (s *Service) CreateFromQuote(ctx context.Context, q quotes.Quote, total float64) (quotes.BookingRef, error) {
	existing, err := s.repo.GetByQuote(ctx, q.ID)
	if err != nil && !errors.Is(err, httpx.ErrNotFound) {
		return quotes.BookingRef{}, fmt.Errorf("check existing booking: %w", err)
	}
	if existing != nil {
		return quotes.BookingRef{}, ErrAlreadyExists
	}

	b := Booking{
		ID:            uuid.NewString(),
		QuoteID:       q.ID,
		Customer:      q.Customer,
		Event:         q.Event,
		Total:         total,
		PaymentStatus: PaymentPending,
		Status:        StatusConfirmed,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return quotes.BookingRef{}, fmt.Errorf("create booking: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.BookingConfirmed(ctx, b); err != nil {
			s.logger.Warn("booking confirmation notify failed", "bookingID", b.ID, "error", err)
		}
	}

	return quotes.BookingRef{ID: b.ID, Total: b.Total}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Booking, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, includeArchived bool) ([]Booking, error) {
	return s.repo.List(ctx, includeArchived)
}

// RecordDeposit registers a part payment and moves the payment status
// forward. A deposit covering the full total marks the booking paid in full.
func (s *Service) RecordDeposit(ctx context.Context, id string, amount float64) (*Booking, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if amount <= 0 || b.DepositPaid+amount > b.Total {
		return nil, ErrBadDeposit
	}
	if b.PaymentStatus == PaymentPaidInFull {
		return nil, fmt.Errorf("%w: already paid in full", ErrInvalidStatus)
	}

	b.DepositPaid += amount
	if b.DepositPaid >= b.Total {
		b.PaymentStatus = PaymentPaidInFull
	} else {
		b.PaymentStatus = PaymentDepositPaid
	}

	if err := s.repo.Update(ctx, *b); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return b, nil
}

// SetPaymentStatus moves the payment status directly, for payments taken
// outside the deposit flow.
func (s *Service) SetPaymentStatus(ctx context.Context, id string, to PaymentStatus) (*Booking, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if !CanTransitionPayment(b.PaymentStatus, to) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidStatus, b.PaymentStatus, to)
	}

	b.PaymentStatus = to
	if to == PaymentPaidInFull {
		b.DepositPaid = b.Total
	}
	if err := s.repo.Update(ctx, *b); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return b, nil
}

// Complete marks a confirmed booking as delivered.
func (s *Service) Complete(ctx context.Context, id string) (*Booking, error) {
	return s.setStatus(ctx, id, StatusCompleted)
}

// Cancel marks a confirmed booking as cancelled.
func (s *Service) Cancel(ctx context.Context, id string) (*Booking, error) {
	return s.setStatus(ctx, id, StatusCancelled)
}

func (s *Service) setStatus(ctx context.Context, id string, to Status) (*Booking, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if b.Status != StatusConfirmed {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidStatus, b.Status, to)
	}

	b.Status = to
	if err := s.repo.Update(ctx, *b); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return b, nil
}

// SetArchived hides or restores a booking in listings.
func (s *Service) SetArchived(ctx context.Context, id string, archived bool) (*Booking, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	b.Archived = archived
	if err := s.repo.Update(ctx, *b); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return b, nil
}
