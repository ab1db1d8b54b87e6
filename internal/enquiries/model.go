// Package enquiries tracks incoming customer requests before they become
// quotes.
package enquiries

import "time"

// Status is the enquiry pipeline state.
type Status string

const (
	StatusNew    Status = "New"
	StatusQuoted Status = "Quoted"
	StatusClosed Status = "Closed"
)

// Enquiry is an incoming customer request.
type Enquiry struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Service       string    `json:"service"`
	EventType     string    `json:"eventType"`
	Location      string    `json:"location"`
	PreferredDate string    `json:"preferredDate"`
	PreferredTime string    `json:"preferredTime"`
	Guests        int       `json:"guests"`
	Notes         string    `json:"notes,omitempty"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}
