package enquiries

type CreateEnquiryRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Service       string `json:"service" validate:"required,oneof='Mobile Bar Hire' 'Cocktail Class' 'Boozy Brunch' 'Equipment Hire'"`
	EventType     string `json:"eventType" validate:"required"`
	Location      string `json:"location" validate:"required"`
	PreferredDate string `json:"preferredDate" validate:"required"`
	PreferredTime string `json:"preferredTime"`
	Guests        int    `json:"guests" validate:"gte=0"`
	Notes         string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=New Quoted Closed"`
}
