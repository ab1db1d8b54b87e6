package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/boozeclub/backoffice/internal/bookings"
	"github.com/boozeclub/backoffice/internal/fx"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
	// TaskTypeFXRefresh re-fetches the EUR to GBP reference rate.
	TaskTypeFXRefresh = "fx:refresh"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// HandleSendEmailTask processes TaskTypeSendEmail tasks.
func HandleSendEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// Placeholder: integrate with SMTP/Mailpit in phase 2.
	fmt.Printf("[jobs] send email to %s subject=%s\n", payload.To, payload.Subject)
	return nil
}

// BookingConfirmationEmail composes the confirmation email for a freshly
// accepted booking.
func BookingConfirmationEmail(b bookings.Booking) SendEmailPayload {
	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", b.Customer.Name)
	fmt.Fprintf(&body, "Your %s on %s is confirmed.\n", b.Event.Type, b.Event.Date)
	if b.Event.Location != "" {
		fmt.Fprintf(&body, "Location: %s\n", b.Event.Location)
	}
	fmt.Fprintf(&body, "Total: €%.2f\n\n", b.Total)
	body.WriteString("Thanks,\nThe Beautiful Booze Club\n")

	return SendEmailPayload{
		To:      b.Customer.Email,
		Subject: fmt.Sprintf("Booking confirmed: %s on %s", b.Event.Type, b.Event.Date),
		Body:    body.String(),
	}
}

// NewFXRefreshTask constructs the scheduled rate refresh task.
func NewFXRefreshTask() *asynq.Task {
	return asynq.NewTask(TaskTypeFXRefresh, nil, asynq.Queue(QueueDefault))
}

// NewFXRefreshHandler returns the handler that forces a provider fetch,
// replacing whatever the cache holds.
func NewFXRefreshHandler(svc *fx.Service, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		rate, err := svc.Refresh(ctx)
		if err != nil {
			logger.Warn("fx refresh failed", slog.Any("error", err))
			return err
		}
		logger.Info("fx rate refreshed", slog.Float64("rate", rate.Rate), slog.String("source", rate.Source))
		return nil
	}
}
