package holds

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SlotHold is the two-phase reservation's intermediate state: a short-lived
// claim on capacity that either becomes a booking or is released back.
// Inactive rows are retained for audit and never re-activated.
type SlotHold struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	SlotID     uuid.UUID  `json:"slot_id" gorm:"type:uuid;index;not null"`
	SessionID  string     `json:"session_id" gorm:"size:128;not null;index"`
	UserID     *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid"`
	Quantity   int        `json:"quantity" gorm:"not null;check:quantity > 0"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	ExpiresAt  time.Time  `json:"expires_at" gorm:"not null"`
	IsActive   bool       `json:"is_active" gorm:"default:true"`
	ReleasedAt *time.Time `json:"released_at,omitempty"`
}

// IsExpired reports whether the hold's window has closed. An expired hold
// is treated as inactive everywhere, whether or not the sweep has caught it.
func (h *SlotHold) IsExpired(now time.Time) bool {
	return !h.ExpiresAt.After(now)
}

func (h *SlotHold) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name for GORM
func (SlotHold) TableName() string {
	return "slot_holds"
}
