package bookings

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boozeclub/backoffice/internal/quotes"
)

type mockRepo struct {
	records map[string]Booking
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[string]Booking)}
}

func (m *mockRepo) Get(_ context.Context, id string) (*Booking, error) {
	b, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (m *mockRepo) GetByQuote(_ context.Context, quoteID string) (*Booking, error) {
	for _, b := range m.records {
		if b.QuoteID == quoteID {
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) List(_ context.Context, includeArchived bool) ([]Booking, error) {
	var out []Booking
	for _, b := range m.records {
		if b.Archived && !includeArchived {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *mockRepo) Create(_ context.Context, b Booking) error {
	m.records[b.ID] = b
	return nil
}

func (m *mockRepo) Update(_ context.Context, b Booking) error {
	if _, ok := m.records[b.ID]; !ok {
		return ErrNotFound
	}
	m.records[b.ID] = b
	return nil
}

type mockNotifier struct {
	confirmed []string
}

func (m *mockNotifier) BookingConfirmed(_ context.Context, b Booking) error {
	m.confirmed = append(m.confirmed, b.ID)
	return nil
}

func acceptedQuote() quotes.Quote {
	return quotes.Quote{
		ID:       "q-1",
		Customer: quotes.Customer{Name: "Aoife Byrne", Email: "aoife@example.com"},
		Event:    quotes.Event{Type: "Wedding", Location: "Belfast", Guests: 80},
		Status:   quotes.StatusAccepted,
	}
}

func newTestService() (*Service, *mockRepo, *mockNotifier) {
	repo := newMockRepo()
	notifier := &mockNotifier{}
	return NewService(repo, notifier, slog.Default()), repo, notifier
}

func TestCreateFromQuote(t *testing.T) {
	svc, repo, notifier := newTestService()

	ref, err := svc.CreateFromQuote(context.Background(), acceptedQuote(), 1045.50)
	require.NoError(t, err)

	b := repo.records[ref.ID]
	assert.Equal(t, "q-1", b.QuoteID)
	assert.Equal(t, 1045.50, b.Total)
	assert.Equal(t, PaymentPending, b.PaymentStatus)
	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, []string{ref.ID}, notifier.confirmed)
}

func TestCreateFromQuoteIsOncePerQuote(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateFromQuote(context.Background(), acceptedQuote(), 1045.50)
	require.NoError(t, err)

	_, err = svc.CreateFromQuote(context.Background(), acceptedQuote(), 1045.50)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestRecordDeposit(t *testing.T) {
	svc, _, _ := newTestService()
	ref, err := svc.CreateFromQuote(context.Background(), acceptedQuote(), 1000)
	require.NoError(t, err)

	b, err := svc.RecordDeposit(context.Background(), ref.ID, 250)
	require.NoError(t, err)
	assert.Equal(t, PaymentDepositPaid, b.PaymentStatus)
	assert.Equal(t, 250.0, b.DepositPaid)

	// A second deposit covering the remainder settles the booking.
	b, err = svc.RecordDeposit(context.Background(), ref.ID, 750)
	require.NoError(t, err)
	assert.Equal(t, PaymentPaidInFull, b.PaymentStatus)
	assert.Equal(t, 1000.0, b.DepositPaid)

	_, err = svc.RecordDeposit(context.Background(), ref.ID, 10)
	assert.Error(t, err)
}

func TestRecordDepositRejectsOverpayment(t *testing.T) {
	svc, _, _ := newTestService()
	ref, err := svc.CreateFromQuote(context.Background(), acceptedQuote(), 1000)
	require.NoError(t, err)

	_, err = svc.RecordDeposit(context.Background(), ref.ID, 1200)
	assert.ErrorIs(t, err, ErrBadDeposit)

	_, err = svc.RecordDeposit(context.Background(), ref.ID, -5)
	assert.ErrorIs(t, err, ErrBadDeposit)
}

func TestPaymentStatusOnlyMovesForward(t *testing.T) {
	svc, _, _ := newTestService()
	ref, err := svc.CreateFromQuote(context.Background(), acceptedQuote(), 1000)
	require.NoError(t, err)

	b, err := svc.SetPaymentStatus(context.Background(), ref.ID, PaymentPaidInFull)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, b.DepositPaid)

	_, err = svc.SetPaymentStatus(context.Background(), ref.ID, PaymentPending)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCompleteAndCancelRequireConfirmed(t *testing.T) {
	svc, _, _ := newTestService()
	ref, err := svc.CreateFromQuote(context.Background(), acceptedQuote(), 1000)
	require.NoError(t, err)

	b, err := svc.Complete(context.Background(), ref.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, b.Status)

	_, err = svc.Cancel(context.Background(), ref.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestArchivedBookingsHiddenFromListing(t *testing.T) {
	svc, _, _ := newTestService()
	ref, err := svc.CreateFromQuote(context.Background(), acceptedQuote(), 1000)
	require.NoError(t, err)

	_, err = svc.SetArchived(context.Background(), ref.ID, true)
	require.NoError(t, err)

	visible, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
