package quotes

import "github.com/boozeclub/backoffice/internal/pricing"

type CreateQuoteRequest struct {
	EnquiryID string         `json:"enquiryId,omitempty"`
	Customer  Customer       `json:"customer" validate:"required"`
	Event     Event          `json:"event" validate:"required"`
	Lines     []pricing.Line `json:"lines" validate:"required,min=1,dive"`
	VAT       pricing.VAT    `json:"vat"`
	Currency  string         `json:"currency" validate:"omitempty,oneof=EUR GBP"`
}

type UpdateQuoteRequest struct {
	Customer Customer       `json:"customer" validate:"required"`
	Event    Event          `json:"event" validate:"required"`
	Lines    []pricing.Line `json:"lines" validate:"required,min=1,dive"`
	VAT      pricing.VAT    `json:"vat"`
	Currency string         `json:"currency" validate:"omitempty,oneof=EUR GBP"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=Draft Sent Accepted Declined Expired"`
}

// AcceptResponse returns the accepted quote together with the booking that
// the acceptance created.
type AcceptResponse struct {
	Quote   *Quote     `json:"quote"`
	Booking BookingRef `json:"booking"`
}
