package holds

type CreateHoldRequest struct {
	SlotID string `json:"slot_id" binding:"required,uuid"`
	// Quantity is validated by the service so that zero and negative values
	// surface as INVALID_QUANTITY rather than a generic binding failure.
	Quantity        int `json:"quantity"`
	DurationMinutes int `json:"duration_minutes"`
}
