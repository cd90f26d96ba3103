package bookings

import "time"

type BookingResponse struct {
	BookingID         string    `json:"booking_id"`
	BookingRef        string    `json:"booking_reference"`
	SlotID            string    `json:"slot_id"`
	EventID           string    `json:"event_id"`
	AttendeeFirstName string    `json:"attendee_first_name"`
	AttendeeLastName  string    `json:"attendee_last_name"`
	AttendeeEmail     string    `json:"attendee_email"`
	AttendeePhone     string    `json:"attendee_phone,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	Quantity          int       `json:"quantity"`
	SlotDate          string    `json:"slot_date"`
	SlotTime          string    `json:"slot_time"`
	ConfirmedAt       time.Time `json:"confirmed_at"`
}
