package jobs

import (
	"context"
	"log/slog"

	"github.com/boozeclub/backoffice/internal/bookings"
)

// Notifier queues booking confirmation emails. It satisfies the bookings
// package's notifier interface.
type Notifier struct {
	client *Client
	logger *slog.Logger
}

// NewNotifier constructs a queue-backed notifier.
func NewNotifier(client *Client, logger *slog.Logger) *Notifier {
	return &Notifier{client: client, logger: logger}
}

// BookingConfirmed enqueues the confirmation email for a new booking.
func (n *Notifier) BookingConfirmed(ctx context.Context, b bookings.Booking) error {
	if b.Customer.Email == "" {
		n.logger.Warn("booking has no customer email, skipping confirmation", slog.String("bookingID", b.ID))
		return nil
	}
	_, err := n.client.EnqueueSendEmail(ctx, BookingConfirmationEmail(b))
	return err
}
