package bookings

type ConfirmBookingRequest struct {
	HoldID string `json:"hold_id" binding:"required,uuid"`
	// Attendee fields are validated by the service so that failures surface
	// as INVALID_ATTENDEE with a precise message.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
}
