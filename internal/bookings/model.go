// Package bookings tracks confirmed events from quote acceptance through
// payment and completion.
package bookings

import (
	"time"

	"github.com/boozeclub/backoffice/internal/quotes"
)

// PaymentStatus tracks how much of the booking total has been received.
type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "Pending"
	PaymentDepositPaid PaymentStatus = "DepositPaid"
	PaymentPaidInFull  PaymentStatus = "PaidInFull"
)

// Status is the booking lifecycle state.
type Status string

const (
	StatusConfirmed Status = "Confirmed"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:     {PaymentDepositPaid, PaymentPaidInFull},
	PaymentDepositPaid: {PaymentPaidInFull},
}

// CanTransitionPayment reports whether a payment status move is allowed.
// Payments only move forward.
func CanTransitionPayment(from, to PaymentStatus) bool {
	for _, allowed := range paymentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Booking is the confirmed-event record. Total is the customer-facing gross
// the quote was accepted at; it does not track later quote edits.
type Booking struct {
	ID            string          `json:"id"`
	QuoteID       string          `json:"quoteId"`
	Customer      quotes.Customer `json:"customer"`
	Event         quotes.Event    `json:"event"`
	Total         float64         `json:"total"`
	DepositPaid   float64         `json:"depositPaid,omitempty"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	Status        Status          `json:"status"`
	Archived      bool            `json:"archived,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}
