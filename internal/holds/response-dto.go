package holds

import "time"

type CreateHoldResponse struct {
	HoldID    string    `json:"hold_id"`
	SlotID    string    `json:"slot_id"`
	Quantity  int       `json:"quantity"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HoldVerification is the observational result of verify_hold. Reason is
// one of "not found", "released", "expired" when the hold is invalid.
type HoldVerification struct {
	Valid     bool       `json:"is_valid"`
	Reason    *string    `json:"reason,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type ReleaseHoldResponse struct {
	Released bool `json:"released"`
}
