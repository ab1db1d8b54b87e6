package jobs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boozeclub/backoffice/internal/bookings"
	"github.com/boozeclub/backoffice/internal/quotes"
)

func TestBookingConfirmationEmail(t *testing.T) {
	payload := BookingConfirmationEmail(bookings.Booking{
		ID:       "bk-1",
		Customer: quotes.Customer{Name: "Aoife Byrne", Email: "aoife@example.com"},
		Event:    quotes.Event{Type: "Wedding", Location: "Belfast", Date: "2026-10-10"},
		Total:    799.5,
	})

	assert.Equal(t, "aoife@example.com", payload.To)
	assert.Equal(t, "Booking confirmed: Wedding on 2026-10-10", payload.Subject)
	assert.Contains(t, payload.Body, "Location: Belfast")
	assert.Contains(t, payload.Body, "€799.50")

	task, err := NewSendEmailTask(payload)
	require.NoError(t, err)
	assert.Equal(t, TaskTypeSendEmail, task.Type())

	var decoded SendEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, payload, decoded)
}

func TestNewFXRefreshTask(t *testing.T) {
	task := NewFXRefreshTask()
	assert.Equal(t, TaskTypeFXRefresh, task.Type())
	assert.Empty(t, task.Payload())
}
