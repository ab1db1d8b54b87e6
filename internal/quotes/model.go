// Package quotes manages priced proposals: their lifecycle from draft to
// acceptance, their canonical totals, and the handoff to bookings.
package quotes

import (
	"time"

	"github.com/boozeclub/backoffice/internal/pricing"
)

// Status is a quote's lifecycle state.
type Status string

const (
	StatusDraft    Status = "Draft"
	StatusSent     Status = "Sent"
	StatusAccepted Status = "Accepted"
	StatusDeclined Status = "Declined"
	StatusExpired  Status = "Expired"
)

// transitions enumerates the allowed status moves. Acceptance is handled by
// its own operation because it creates a booking.
var transitions = map[Status][]Status{
	StatusDraft:    {StatusSent, StatusDeclined},
	StatusSent:     {StatusAccepted, StatusDeclined, StatusExpired},
	StatusDeclined: {StatusSent},
	StatusExpired:  {StatusSent},
}

// CanTransition reports whether a quote may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Customer identifies who the quote is for.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Event captures the booked occasion. Date and time stay as entered.
type Event struct {
	Type     string `json:"type"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Guests   int    `json:"guests"`
}

// Quote is a priced proposal. Totals are always the customer-facing invoice
// totals, recomputed on every write; a stored totals field is never trusted.
type Quote struct {
	ID        string         `json:"id"`
	EnquiryID string         `json:"enquiryId,omitempty"`
	Customer  Customer       `json:"customer"`
	Event     Event          `json:"event"`
	Lines     []pricing.Line `json:"lines"`
	VAT       pricing.VAT    `json:"vat"`
	Currency  string         `json:"currency"`
	FXRate    float64        `json:"fxRate,omitempty"`
	Totals    pricing.Totals `json:"totals"`
	Status    Status         `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
